package protocol

import (
	perrors "github.com/pkg/errors"
	"github.com/zhukovaskychina/mysql-wire/wire"
)

// EOFPacket 结果集分段结束标记
type EOFPacket struct {
	WarningCount uint16
	ServerStatus uint16
}

func NewEOFPacket() *EOFPacket {
	return &EOFPacket{ServerStatus: 2}
}

// Encode 编码EOF包，含报文头
func (p *EOFPacket) Encode(sequenceId byte) []byte {
	buf := wire.NewBuffer(9)
	buf.WriteByte(0xFE)
	buf.WriteUB2(p.WarningCount)
	buf.WriteUB2(p.ServerStatus)
	wire.WritePacketLength(buf, sequenceId)
	return buf.Bytes()
}

// DecodeEOF 解码EOF包体（不含报文头）
func DecodeEOF(body []byte) (*EOFPacket, error) {
	buf := wire.NewBufferFrom(body)
	marker, err := buf.ReadByte()
	if err != nil {
		return nil, perrors.WithStack(err)
	}
	if marker != 0xFE {
		return nil, perrors.Errorf("not an EOF packet, leading byte 0x%02X", marker)
	}

	p := new(EOFPacket)
	if p.WarningCount, err = buf.ReadUB2(); err != nil {
		return nil, perrors.WithStack(err)
	}
	if p.ServerStatus, err = buf.ReadUB2(); err != nil {
		return nil, perrors.WithStack(err)
	}
	return p, nil
}
