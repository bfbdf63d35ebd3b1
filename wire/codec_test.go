package wire

import (
	"testing"

	jerrors "github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLengthReadBinaryLengthRoundTrip(t *testing.T) {
	tests := []struct {
		value int64
		width int
	}{
		{0, 1},
		{1, 1},
		{250, 1},
		{251, 3},
		{300, 3},
		{65535, 3},
		{65536, 4},
		{8388607, 4},
		{16777216, 9},
		{1<<40 + 7, 9},
	}
	for _, tt := range tests {
		buf := NewBuffer(16)
		WriteLength(buf, tt.value)
		assert.Equal(t, tt.width, buf.WritePos(), "encoded width for %d", tt.value)

		got, err := ReadBinaryLength(buf)
		require.NoError(t, err)
		assert.Equal(t, tt.value, got)
		assert.Equal(t, 0, buf.Readable(), "no trailing bytes for %d", tt.value)
	}
}

func TestReadBinaryLengthThreeByteSignShadow(t *testing.T) {
	// 0xFD分支按带符号3字节读取，bit23置位的长度值不会忠实往返：
	// 16777215的线上形态是[FD FF FF FF]，读回的是-1而不是原值
	buf := NewBuffer(8)
	WriteLength(buf, 16777215)
	assert.Equal(t, []byte{0xFD, 0xFF, 0xFF, 0xFF}, buf.Bytes())

	got, err := ReadBinaryLength(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), got)

	// 该段内bit23为0的最大值仍然忠实往返
	buf = NewBuffer(8)
	WriteLength(buf, 0x7FFFFF)
	got, err = ReadBinaryLength(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(0x7FFFFF), got)
}

func TestWriteLengthNeverEmitsNullMarker(t *testing.T) {
	// 251落在0xFC分支，0xFB只保留给NULL
	buf := NewBuffer(4)
	WriteLength(buf, 251)
	require.Equal(t, []byte{0xFC, 0xFB, 0x00}, buf.Bytes())
}

func TestReadBinaryLengthNullSentinel(t *testing.T) {
	buf := NewBufferFrom([]byte{0xFB, 0xAA, 0xBB})
	got, err := ReadBinaryLength(buf)
	require.NoError(t, err)
	assert.Equal(t, NullLength, got)
	// NULL之后的字节不被消费
	assert.Equal(t, 2, buf.Readable())
}

func TestReadBinaryLengthUnknownMarker(t *testing.T) {
	buf := NewBufferFrom([]byte{0xFF, 0x01, 0x02})
	_, err := ReadBinaryLength(buf)
	require.Error(t, err)

	var unknown *UnknownLengthEncodingError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, byte(0xFF), unknown.Byte)
	assert.Equal(t, 2, buf.Readable())
}

func TestReadBinaryLengthUnderrun(t *testing.T) {
	buf := NewBufferFrom([]byte{0xFC, 0x01})
	_, err := ReadBinaryLength(buf)
	require.Error(t, err)
	assert.Equal(t, ErrBufferUnderrun, jerrors.Cause(err))
}

func TestReadUB3IntSignExtension(t *testing.T) {
	buf := NewBufferFrom([]byte{0xFF, 0xFF, 0xFF})
	got, err := ReadUB3Int(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), got)

	buf = NewBufferFrom([]byte{0xFF, 0xFF, 0x7F})
	got, err = ReadUB3Int(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(0x7FFFFF), got)
}

func TestWriteLongIntLittleEndianTruncation(t *testing.T) {
	buf := NewBuffer(4)
	WriteLongInt(buf, 0x01020304)
	// 高于第23位的部分被丢弃
	assert.Equal(t, []byte{0x04, 0x03, 0x02}, buf.Bytes())
}

func TestWriteLongIntSignedRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 0x7FFFFF, -0x800000, -42} {
		buf := NewBuffer(4)
		WriteLongInt(buf, v)
		got, err := ReadUB3Int(buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestReadFixedStringExactness(t *testing.T) {
	buf := NewBufferFrom([]byte("hello!"))
	got, err := ReadFixedString(buf, 5, UTF8)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, 5, buf.ReadPos())
	assert.Equal(t, 1, buf.Readable())
}

func TestReadFixedStringNegativeLength(t *testing.T) {
	buf := NewBufferFrom([]byte("abc"))
	_, err := ReadFixedString(buf, int(NullLength), UTF8)
	require.Error(t, err)
	assert.Equal(t, 3, buf.Readable())
}

func TestLengthEncodedStringRoundTrip(t *testing.T) {
	tests := []struct {
		value   string
		charset Charset
	}{
		{"", UTF8},
		{"select 1", UTF8},
		{"información", UTF8},
		{"café", Latin1},
		{"数据库连接", GBK},
	}
	for _, tt := range tests {
		buf := NewBuffer(64)
		require.NoError(t, WriteLengthEncodedString(buf, tt.value, tt.charset))

		got, err := ReadLengthEncodedString(buf, tt.charset)
		require.NoError(t, err)
		assert.Equal(t, tt.value, got)
		assert.Equal(t, 0, buf.Readable())
	}
}

func TestLengthEncodedStringTwoBytePrefix(t *testing.T) {
	value := ""
	for len(value) < 300 {
		value += "0123456789"
	}
	buf := NewBuffer(512)
	require.NoError(t, WriteLengthEncodedString(buf, value, UTF8))
	assert.Equal(t, byte(0xFC), buf.Bytes()[0])
	assert.Equal(t, len(value)+3, buf.WritePos())

	got, err := ReadLengthEncodedString(buf, UTF8)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestReadLengthEncodedStringUnderrun(t *testing.T) {
	// 前缀声明10字节，内容只有3字节
	buf := NewBufferFrom([]byte{10, 'a', 'b', 'c'})
	_, err := ReadLengthEncodedString(buf, UTF8)
	require.Error(t, err)
	assert.Equal(t, ErrBufferUnderrun, jerrors.Cause(err))
}

func TestLatin1EncodeRejectsWideRunes(t *testing.T) {
	buf := NewBuffer(16)
	err := WriteLengthEncodedString(buf, "数据", Latin1)
	require.Error(t, err)
	// 编码失败时一个字节都不落盘
	assert.Equal(t, 0, buf.WritePos())
}

func TestWritePacketLength(t *testing.T) {
	buf := NewBuffer(16)
	buf.WriteByte(0x00)
	WriteLength(buf, 3)
	WriteLength(buf, 7)
	WritePacketLength(buf, 1)

	assert.Equal(t, []byte{0x03, 0x00, 0x00, 0x01, 0x00, 0x03, 0x07}, buf.Bytes())
}
