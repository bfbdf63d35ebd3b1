package protocol

import (
	"bytes"
	"errors"

	perrors "github.com/pkg/errors"
	"github.com/zhukovaskychina/mysql-wire/wire"
)

var (
	ErrNotEnoughStream = errors.New("packet stream is not enough")
	ErrTooLargePackage = errors.New("package length is exceed the maximum payload length")
)

// MaxPayloadLength 3字节长度字段能表达的最大包体长度
const MaxPayloadLength = 1<<24 - 1

// Header MySQL报文头：3字节包体长度 + 1字节序列号
type Header struct {
	PacketLength uint32
	PacketId     byte
}

// Packet 一个完整的MySQL协议报文
type Packet struct {
	Header Header
	Body   []byte
}

// Marshal 编码为线上字节序列
func (p *Packet) Marshal() (*bytes.Buffer, error) {
	if len(p.Body) > MaxPayloadLength {
		return nil, perrors.Wrapf(ErrTooLargePackage, "body length %d", len(p.Body))
	}
	buf := wire.NewBuffer(4 + len(p.Body))
	buf.WriteBytes(p.Body)
	wire.WritePacketLength(buf, p.Header.PacketId)
	return bytes.NewBuffer(buf.Bytes()), nil
}

// Unmarshal 从字节流头部切出一个完整报文，返回本次消费的字节数。
// 流中还凑不齐一个完整报文时返回ErrNotEnoughStream，等下一轮读。
func (p *Packet) Unmarshal(buf *bytes.Buffer) (int, error) {
	if buf.Len() < 4 {
		return 0, ErrNotEnoughStream
	}
	b := wire.NewBufferFrom(buf.Bytes())
	length, err := b.ReadUB3()
	if err != nil {
		return 0, perrors.WithStack(err)
	}
	packetId, err := b.ReadByte()
	if err != nil {
		return 0, perrors.WithStack(err)
	}
	if b.Readable() < int(length) {
		return 0, ErrNotEnoughStream
	}
	body, err := b.ReadBytes(int(length))
	if err != nil {
		return 0, perrors.WithStack(err)
	}

	p.Header.PacketLength = length
	p.Header.PacketId = packetId
	p.Body = append([]byte(nil), body...)
	return int(length) + 4, nil
}
