package wire

import (
	jerrors "github.com/juju/errors"
)

// ErrBufferUnderrun 读取的字节数超过了缓冲区剩余可读字节数
var ErrBufferUnderrun = jerrors.New("buffer underrun")

// Buffer 可增长的字节缓冲区，读写游标相互独立。
// 写操作追加在写游标之后，读操作从读游标开始，两个游标互不干扰，
// 因此同一个包的生命周期内可以边写边读。
type Buffer struct {
	data    []byte
	readPos int
}

func NewBuffer(capacity int) *Buffer {
	return &Buffer{data: make([]byte, 0, capacity)}
}

// NewBufferFrom 在已有字节序列上建立缓冲区，data整体视为可读内容
func NewBufferFrom(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Readable 当前可读字节数
func (b *Buffer) Readable() int {
	return len(b.data) - b.readPos
}

// ReadPos 读游标位置
func (b *Buffer) ReadPos() int {
	return b.readPos
}

// WritePos 写游标位置
func (b *Buffer) WritePos() int {
	return len(b.data)
}

// Bytes 返回全部已写入内容，含已读部分
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Reset 清空缓冲区并复位两个游标
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.readPos = 0
}

func (b *Buffer) require(n int) error {
	if b.Readable() < n {
		return jerrors.Annotatef(ErrBufferUnderrun, "need %d bytes, %d readable", n, b.Readable())
	}
	return nil
}

func (b *Buffer) ReadByte() (byte, error) {
	if err := b.require(1); err != nil {
		return 0, err
	}
	v := b.data[b.readPos]
	b.readPos++
	return v, nil
}

func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if err := b.require(n); err != nil {
		return nil, err
	}
	v := b.data[b.readPos : b.readPos+n]
	b.readPos += n
	return v, nil
}

func (b *Buffer) ReadUB2() (uint16, error) {
	if err := b.require(2); err != nil {
		return 0, err
	}
	i := uint16(b.data[b.readPos])
	i |= uint16(b.data[b.readPos+1]) << 8
	b.readPos += 2
	return i, nil
}

func (b *Buffer) ReadUB3() (uint32, error) {
	if err := b.require(3); err != nil {
		return 0, err
	}
	i := uint32(b.data[b.readPos])
	i |= uint32(b.data[b.readPos+1]) << 8
	i |= uint32(b.data[b.readPos+2]) << 16
	b.readPos += 3
	return i, nil
}

func (b *Buffer) ReadUB4() (uint32, error) {
	if err := b.require(4); err != nil {
		return 0, err
	}
	i := uint32(b.data[b.readPos])
	i |= uint32(b.data[b.readPos+1]) << 8
	i |= uint32(b.data[b.readPos+2]) << 16
	i |= uint32(b.data[b.readPos+3]) << 24
	b.readPos += 4
	return i, nil
}

func (b *Buffer) ReadUB8() (uint64, error) {
	if err := b.require(8); err != nil {
		return 0, err
	}
	var i uint64
	for k := 0; k < 8; k++ {
		i |= uint64(b.data[b.readPos+k]) << uint(8*k)
	}
	b.readPos += 8
	return i, nil
}

// ReadLong 读取8字节小端序有符号整数
func (b *Buffer) ReadLong() (int64, error) {
	u, err := b.ReadUB8()
	if err != nil {
		return 0, err
	}
	return int64(u), nil
}

// ReadWithNull 读取NUL结尾的字节序列，不含结尾的0字节
func (b *Buffer) ReadWithNull() ([]byte, error) {
	for i := b.readPos; i < len(b.data); i++ {
		if b.data[i] == 0 {
			v := b.data[b.readPos:i]
			b.readPos = i + 1
			return v, nil
		}
	}
	return nil, jerrors.Annotatef(ErrBufferUnderrun, "unterminated c-string, %d readable", b.Readable())
}

// WriteByte 追加一个字节。错误恒为nil，签名对齐io.ByteWriter
func (b *Buffer) WriteByte(v byte) error {
	b.data = append(b.data, v)
	return nil
}

func (b *Buffer) WriteBytes(p []byte) {
	b.data = append(b.data, p...)
}

func (b *Buffer) WriteUB2(i uint16) {
	b.data = append(b.data, byte(i), byte(i>>8))
}

func (b *Buffer) WriteUB3(i uint32) {
	b.data = append(b.data, byte(i), byte(i>>8), byte(i>>16))
}

func (b *Buffer) WriteUB4(i uint32) {
	b.data = append(b.data, byte(i), byte(i>>8), byte(i>>16), byte(i>>24))
}

func (b *Buffer) WriteUB8(i uint64) {
	for k := 0; k < 8; k++ {
		b.data = append(b.data, byte(i>>uint(8*k)))
	}
}

// WriteLong 写入8字节小端序有符号整数
func (b *Buffer) WriteLong(i int64) {
	b.WriteUB8(uint64(i))
}

// WriteWithNull 写入字节序列并追加NUL结尾
func (b *Buffer) WriteWithNull(p []byte) {
	b.data = append(b.data, p...)
	b.data = append(b.data, 0)
}

// PrependPacketLength 按当前已写入内容计算包体长度，
// 在缓冲区头部加上3字节长度+1字节序列号的包头。
// 读游标同步后移，保持指向原来的字节。
func (b *Buffer) PrependPacketLength(sequenceId byte) {
	length := len(b.data)
	header := make([]byte, 4, 4+length)
	header[0] = byte(length)
	header[1] = byte(length >> 8)
	header[2] = byte(length >> 16)
	header[3] = sequenceId
	b.data = append(header, b.data...)
	b.readPos += 4
}
