package wire

// Cursor MySQL报文编解码所依赖的最小字节游标能力集。
// 读写游标相互独立，多字节整数一律小端序。
// *Buffer 是本包自带的实现，外部传输层的缓冲区适配该接口即可复用编解码函数。
type Cursor interface {
	ReadByte() (byte, error)
	ReadBytes(n int) ([]byte, error)
	ReadUB2() (uint16, error)
	ReadLong() (int64, error)

	WriteByte(b byte) error
	WriteUB2(v uint16)
	WriteBytes(p []byte)
	WriteLong(v int64)
}

var _ Cursor = (*Buffer)(nil)
