package wire

import (
	"io"
	"testing"

	jerrors "github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 单字节读写的签名与标准库接口保持一致
var (
	_ io.ByteReader = (*Buffer)(nil)
	_ io.ByteWriter = (*Buffer)(nil)
)

func TestBufferReadWritePrimitives(t *testing.T) {
	buf := NewBuffer(32)
	buf.WriteByte(0x7F)
	buf.WriteUB2(0xBEEF)
	buf.WriteUB3(0xABCDEF)
	buf.WriteUB4(0xDEADBEEF)
	buf.WriteUB8(0x1122334455667788)
	buf.WriteLong(-2)

	b, err := buf.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x7F), b)

	u2, err := buf.ReadUB2()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), u2)

	u3, err := buf.ReadUB3()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xABCDEF), u3)

	u4, err := buf.ReadUB4()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u4)

	u8, err := buf.ReadUB8()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1122334455667788), u8)

	l, err := buf.ReadLong()
	require.NoError(t, err)
	assert.Equal(t, int64(-2), l)

	assert.Equal(t, 0, buf.Readable())
}

func TestBufferLittleEndianLayout(t *testing.T) {
	buf := NewBuffer(8)
	buf.WriteUB3(0x010203)
	assert.Equal(t, []byte{0x03, 0x02, 0x01}, buf.Bytes())
}

func TestBufferIndependentCursors(t *testing.T) {
	buf := NewBuffer(16)
	buf.WriteByte(1)
	buf.WriteByte(2)

	b, err := buf.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(1), b)

	// 读游标不影响写游标继续追加
	buf.WriteByte(3)
	assert.Equal(t, 3, buf.WritePos())
	assert.Equal(t, 1, buf.ReadPos())
	assert.Equal(t, 2, buf.Readable())
}

func TestBufferUnderrun(t *testing.T) {
	buf := NewBufferFrom([]byte{1, 2})

	_, err := buf.ReadUB4()
	require.Error(t, err)
	assert.Equal(t, ErrBufferUnderrun, jerrors.Cause(err))
	// 失败的读取不移动游标
	assert.Equal(t, 2, buf.Readable())

	_, err = buf.ReadBytes(3)
	require.Error(t, err)
	assert.Equal(t, ErrBufferUnderrun, jerrors.Cause(err))
}

func TestBufferReadBytesZero(t *testing.T) {
	buf := NewBufferFrom(nil)
	raw, err := buf.ReadBytes(0)
	require.NoError(t, err)
	assert.Len(t, raw, 0)
}

func TestBufferCString(t *testing.T) {
	buf := NewBuffer(16)
	buf.WriteWithNull([]byte("5.7.32"))
	buf.WriteByte(0xAA)

	v, err := buf.ReadWithNull()
	require.NoError(t, err)
	assert.Equal(t, "5.7.32", string(v))
	assert.Equal(t, 1, buf.Readable())

	buf = NewBufferFrom([]byte("no terminator"))
	_, err = buf.ReadWithNull()
	require.Error(t, err)
	assert.Equal(t, ErrBufferUnderrun, jerrors.Cause(err))
}

func TestBufferPrependPacketLength(t *testing.T) {
	buf := NewBuffer(16)
	buf.WriteBytes([]byte{0x0E})

	b, err := buf.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(0x0E), b)

	buf.PrependPacketLength(5)
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x05, 0x0E}, buf.Bytes())
	// 读游标仍指向包头之后已读完的位置
	assert.Equal(t, 0, buf.Readable())
}

func TestBufferReset(t *testing.T) {
	buf := NewBuffer(8)
	buf.WriteUB2(42)
	_, err := buf.ReadByte()
	require.NoError(t, err)

	buf.Reset()
	assert.Equal(t, 0, buf.WritePos())
	assert.Equal(t, 0, buf.ReadPos())
	assert.Equal(t, 0, buf.Readable())
}
