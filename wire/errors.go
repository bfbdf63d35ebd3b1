package wire

import (
	"fmt"
)

// UnknownLengthEncodingError 长度编码整数的标记字节不在协议定义的五种取值之内。
// 编码方向永远不会产生这样的字节，出现时说明读游标错位或输入已损坏。
type UnknownLengthEncodingError struct {
	Byte byte
}

func (e *UnknownLengthEncodingError) Error() string {
	return fmt.Sprintf("unknown length encoding marker 0x%02X", e.Byte)
}
