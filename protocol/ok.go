package protocol

import (
	perrors "github.com/pkg/errors"
	"github.com/zhukovaskychina/mysql-wire/wire"
)

// OKPacket 服务端OK响应
type OKPacket struct {
	AffectedRows int64
	InsertId     int64
	ServerStatus uint16
	WarningCount uint16
	Message      string
}

// Encode 编码OK包，含报文头
func (p *OKPacket) Encode(sequenceId byte) ([]byte, error) {
	buf := wire.NewBuffer(32 + len(p.Message))
	buf.WriteByte(0x00)
	wire.WriteLength(buf, p.AffectedRows)
	wire.WriteLength(buf, p.InsertId)
	buf.WriteUB2(p.ServerStatus)
	buf.WriteUB2(p.WarningCount)
	if len(p.Message) > 0 {
		if err := wire.WriteLengthEncodedString(buf, p.Message, wire.UTF8); err != nil {
			return nil, perrors.WithStack(err)
		}
	}
	wire.WritePacketLength(buf, sequenceId)
	return buf.Bytes(), nil
}

// DecodeOK 解码OK包体（不含报文头）
func DecodeOK(body []byte) (*OKPacket, error) {
	buf := wire.NewBufferFrom(body)
	marker, err := buf.ReadByte()
	if err != nil {
		return nil, perrors.WithStack(err)
	}
	if marker != 0x00 {
		return nil, perrors.Errorf("not an OK packet, leading byte 0x%02X", marker)
	}

	p := new(OKPacket)
	if p.AffectedRows, err = wire.ReadBinaryLength(buf); err != nil {
		return nil, perrors.WithStack(err)
	}
	if p.InsertId, err = wire.ReadBinaryLength(buf); err != nil {
		return nil, perrors.WithStack(err)
	}
	if p.ServerStatus, err = buf.ReadUB2(); err != nil {
		return nil, perrors.WithStack(err)
	}
	if p.WarningCount, err = buf.ReadUB2(); err != nil {
		return nil, perrors.WithStack(err)
	}
	if buf.Readable() > 0 {
		if p.Message, err = wire.ReadLengthEncodedString(buf, wire.UTF8); err != nil {
			return nil, perrors.WithStack(err)
		}
	}
	return p, nil
}
