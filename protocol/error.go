package protocol

import (
	perrors "github.com/pkg/errors"
	"github.com/zhukovaskychina/mysql-wire/wire"
)

var (
	sqlStateMarker = byte('#')

	// DefaultSQLState 未分类错误的SQLSTATE
	DefaultSQLState = "HY000"
)

// ErrorPacket 服务端错误响应
type ErrorPacket struct {
	ErrorCode uint16
	SQLState  string
	Message   string
}

func NewErrorPacket(code uint16, message string) *ErrorPacket {
	return &ErrorPacket{
		ErrorCode: code,
		SQLState:  DefaultSQLState,
		Message:   message,
	}
}

// Encode 编码错误包，含报文头
func (p *ErrorPacket) Encode(sequenceId byte) []byte {
	buf := wire.NewBuffer(16 + len(p.Message))
	buf.WriteByte(0xFF)
	buf.WriteUB2(p.ErrorCode)
	buf.WriteByte(sqlStateMarker)
	buf.WriteBytes([]byte(p.SQLState))
	buf.WriteBytes([]byte(p.Message))
	wire.WritePacketLength(buf, sequenceId)
	return buf.Bytes()
}

// DecodeError 解码错误包体（不含报文头）
func DecodeError(body []byte) (*ErrorPacket, error) {
	buf := wire.NewBufferFrom(body)
	marker, err := buf.ReadByte()
	if err != nil {
		return nil, perrors.WithStack(err)
	}
	if marker != 0xFF {
		return nil, perrors.Errorf("not an ERR packet, leading byte 0x%02X", marker)
	}

	p := new(ErrorPacket)
	if p.ErrorCode, err = buf.ReadUB2(); err != nil {
		return nil, perrors.WithStack(err)
	}
	mark, err := buf.ReadByte()
	if err != nil {
		return nil, perrors.WithStack(err)
	}
	if mark != sqlStateMarker {
		return nil, perrors.Errorf("missing sql state marker, got 0x%02X", mark)
	}
	if p.SQLState, err = wire.ReadFixedString(buf, 5, wire.UTF8); err != nil {
		return nil, perrors.WithStack(err)
	}
	if p.Message, err = wire.ReadFixedString(buf, buf.Readable(), wire.UTF8); err != nil {
		return nil, perrors.WithStack(err)
	}
	return p, nil
}
