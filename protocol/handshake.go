package protocol

import (
	"crypto/rand"

	perrors "github.com/pkg/errors"
	"github.com/zhukovaskychina/mysql-wire/wire"
)

const (
	// ProtocolVersion 握手协议版本
	ProtocolVersion byte = 10
	// ServerVersion 对外宣告的服务端版本号
	ServerVersion = "5.7.32"
	// AuthPluginName 默认认证插件
	AuthPluginName = "mysql_native_password"

	defaultCharSet      byte   = 0x21 // utf8_general_ci
	defaultServerStatus uint16 = 2    // SERVER_STATUS_AUTOCOMMIT
)

// Handshake 服务端握手包(protocol v10)。只负责报文格式，
// 认证流程本身属于连接管理层。
type Handshake struct {
	ProtocolVersion byte
	ServerVersion   string
	ConnectionId    uint32
	Seed            []byte // 挑战串前8字节
	Capabilities    uint32
	CharSet         byte
	ServerStatus    uint16
	RestOfSeed      []byte // 挑战串后12字节
	AuthPluginName  string
}

// NewHandshake 生成带随机挑战串的握手包
func NewHandshake(connectionId uint32) *Handshake {
	seed := randomSeed(20)
	return &Handshake{
		ProtocolVersion: ProtocolVersion,
		ServerVersion:   ServerVersion,
		ConnectionId:    connectionId,
		Seed:            seed[:8],
		Capabilities:    ServerCapabilities(),
		CharSet:         defaultCharSet,
		ServerStatus:    defaultServerStatus,
		RestOfSeed:      seed[8:],
		AuthPluginName:  AuthPluginName,
	}
}

// randomSeed 生成不含0字节的挑战串，挑战串在包内以NUL结尾形式存放
func randomSeed(size int) []byte {
	seed := make([]byte, size)
	rand.Read(seed)
	for i := range seed {
		seed[i] = seed[i]%94 + 33
	}
	return seed
}

// Encode 编码握手包，含报文头，序列号固定为0
func (h *Handshake) Encode() []byte {
	buf := wire.NewBuffer(64)
	buf.WriteByte(h.ProtocolVersion)
	buf.WriteWithNull([]byte(h.ServerVersion))
	buf.WriteUB4(h.ConnectionId)
	buf.WriteWithNull(h.Seed)
	buf.WriteUB2(uint16(h.Capabilities))
	buf.WriteByte(h.CharSet)
	buf.WriteUB2(h.ServerStatus)
	buf.WriteUB2(uint16(h.Capabilities >> 16))
	buf.WriteByte(0) // auth plugin data总长，不带插件能力时置0
	buf.WriteBytes(make([]byte, 10))
	buf.WriteWithNull(h.RestOfSeed)
	buf.WriteWithNull([]byte(h.AuthPluginName))
	wire.WritePacketLength(buf, 0)
	return buf.Bytes()
}

// DecodeHandshake 解码握手包体（不含报文头）
func DecodeHandshake(body []byte) (*Handshake, error) {
	buf := wire.NewBufferFrom(body)
	h := new(Handshake)

	var err error
	if h.ProtocolVersion, err = buf.ReadByte(); err != nil {
		return nil, perrors.WithStack(err)
	}
	version, err := buf.ReadWithNull()
	if err != nil {
		return nil, perrors.WithStack(err)
	}
	h.ServerVersion = string(version)
	if h.ConnectionId, err = buf.ReadUB4(); err != nil {
		return nil, perrors.WithStack(err)
	}
	if h.Seed, err = buf.ReadWithNull(); err != nil {
		return nil, perrors.WithStack(err)
	}
	capLow, err := buf.ReadUB2()
	if err != nil {
		return nil, perrors.WithStack(err)
	}
	if h.CharSet, err = buf.ReadByte(); err != nil {
		return nil, perrors.WithStack(err)
	}
	if h.ServerStatus, err = buf.ReadUB2(); err != nil {
		return nil, perrors.WithStack(err)
	}
	capHigh, err := buf.ReadUB2()
	if err != nil {
		return nil, perrors.WithStack(err)
	}
	h.Capabilities = uint32(capLow) | uint32(capHigh)<<16
	if _, err = buf.ReadBytes(11); err != nil { // auth data长度+10保留字节
		return nil, perrors.WithStack(err)
	}
	if h.RestOfSeed, err = buf.ReadWithNull(); err != nil {
		return nil, perrors.WithStack(err)
	}
	plugin, err := buf.ReadWithNull()
	if err != nil {
		return nil, perrors.WithStack(err)
	}
	h.AuthPluginName = string(plugin)
	return h, nil
}

// AuthPacket 客户端握手响应(protocol 4.1)
type AuthPacket struct {
	ClientFlag    uint32
	MaxPacketSize uint32
	CharsetIndex  byte
	User          string
	Password      []byte
	Database      string
}

// DecodeAuth 解码握手响应包体（不含报文头）
func DecodeAuth(body []byte) (*AuthPacket, error) {
	buf := wire.NewBufferFrom(body)
	ap := new(AuthPacket)

	var err error
	if ap.ClientFlag, err = buf.ReadUB4(); err != nil {
		return nil, perrors.WithStack(err)
	}
	if ap.MaxPacketSize, err = buf.ReadUB4(); err != nil {
		return nil, perrors.WithStack(err)
	}
	if ap.CharsetIndex, err = buf.ReadByte(); err != nil {
		return nil, perrors.WithStack(err)
	}
	if _, err = buf.ReadBytes(23); err != nil { // filler
		return nil, perrors.WithStack(err)
	}
	user, err := buf.ReadWithNull()
	if err != nil {
		return nil, perrors.WithStack(err)
	}
	ap.User = string(user)

	passwordLen, err := wire.ReadBinaryLength(buf)
	if err != nil {
		return nil, perrors.WithStack(err)
	}
	if passwordLen > 0 {
		if ap.Password, err = buf.ReadBytes(int(passwordLen)); err != nil {
			return nil, perrors.WithStack(err)
		}
	}
	if buf.Readable() > 0 && ap.ClientFlag&ClientConnectWithDB != 0 {
		database, err := buf.ReadWithNull()
		if err != nil {
			return nil, perrors.WithStack(err)
		}
		ap.Database = string(database)
	}
	return ap, nil
}

// EncodeAuth 编码握手响应，含报文头，序列号固定为1
func (ap *AuthPacket) EncodeAuth() []byte {
	buf := wire.NewBuffer(64)
	buf.WriteUB4(ap.ClientFlag)
	buf.WriteUB4(ap.MaxPacketSize)
	buf.WriteByte(ap.CharsetIndex)
	buf.WriteBytes(make([]byte, 23))
	buf.WriteWithNull([]byte(ap.User))
	wire.WriteLength(buf, int64(len(ap.Password)))
	buf.WriteBytes(ap.Password)
	if ap.ClientFlag&ClientConnectWithDB != 0 {
		buf.WriteWithNull([]byte(ap.Database))
	}
	wire.WritePacketLength(buf, 1)
	return buf.Bytes()
}
