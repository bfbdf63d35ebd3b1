package protocol

import (
	perrors "github.com/pkg/errors"
	"github.com/zhukovaskychina/mysql-wire/wire"
)

// 客户端命令类型
const (
	ComSleep  byte = 0x00
	ComQuit   byte = 0x01
	ComInitDB byte = 0x02
	ComQuery  byte = 0x03
	ComPing   byte = 0x0E
)

// Command 客户端命令报文：1字节命令类型 + 可选的文本参数
type Command struct {
	Type byte
	Arg  string
}

// ParseCommand 解析命令报文体，参数按给定字符集解码
func ParseCommand(body []byte, cs wire.Charset) (*Command, error) {
	buf := wire.NewBufferFrom(body)
	cmdType, err := buf.ReadByte()
	if err != nil {
		return nil, perrors.Wrap(err, "empty command packet")
	}
	arg, err := wire.ReadFixedString(buf, buf.Readable(), cs)
	if err != nil {
		return nil, perrors.WithStack(err)
	}
	return &Command{Type: cmdType, Arg: arg}, nil
}
