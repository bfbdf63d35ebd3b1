package wire

import (
	jerrors "github.com/juju/errors"
)

// NullLength ReadBinaryLength对NULL列(0xFB)返回的带外哨兵值
const NullLength int64 = -1

const (
	markerNull   = 0xFB
	markerUB2    = 0xFC
	markerUB3    = 0xFD
	markerLong   = 0xFE
	maxOneByte   = 250
	maxTwoByte   = 1 << 16
	maxThreeByte = 1 << 24
)

// ReadBinaryLength 读取一个长度编码整数。
// 标记字节 <=250 时其本身即为值；0xFB 表示NULL，返回 NullLength 且不再消费字节；
// 0xFC/0xFD/0xFE 分别后跟2/3/8字节的值。其余标记字节返回 UnknownLengthEncodingError。
func ReadBinaryLength(c Cursor) (int64, error) {
	marker, err := c.ReadByte()
	if err != nil {
		return 0, jerrors.Trace(err)
	}
	switch {
	case marker <= maxOneByte:
		return int64(marker), nil
	case marker == markerNull:
		return NullLength, nil
	case marker == markerUB2:
		v, err := c.ReadUB2()
		if err != nil {
			return 0, jerrors.Trace(err)
		}
		return int64(v), nil
	case marker == markerUB3:
		v, err := ReadUB3Int(c)
		if err != nil {
			return 0, jerrors.Trace(err)
		}
		return v, nil
	case marker == markerLong:
		v, err := c.ReadLong()
		if err != nil {
			return 0, jerrors.Trace(err)
		}
		return v, nil
	default:
		return 0, &UnknownLengthEncodingError{Byte: marker}
	}
}

// WriteLength 按最小宽度写入长度编码整数。
// length 必须非负；NULL列的0xFB由协议层单独写入，这里永远不会产生。
func WriteLength(c Cursor, length int64) {
	switch {
	case length < int64(markerNull):
		c.WriteByte(byte(length))
	case length < maxTwoByte:
		c.WriteByte(markerUB2)
		c.WriteUB2(uint16(length))
	case length < maxThreeByte:
		c.WriteByte(markerUB3)
		WriteLongInt(c, length)
	default:
		c.WriteByte(markerLong)
		c.WriteLong(length)
	}
}

// ReadUB3Int 读取3字节小端序整数，第3字节最高位为符号位，置位时符号扩展为负数
func ReadUB3Int(c Cursor) (int64, error) {
	raw, err := c.ReadBytes(3)
	if err != nil {
		return 0, jerrors.Trace(err)
	}
	v := int64(raw[0]) | int64(raw[1])<<8 | int64(raw[2])<<16
	if raw[2]&0x80 != 0 {
		v |= ^int64(maxThreeByte - 1)
	}
	return v, nil
}

// WriteLongInt 写入i的低24位，小端序3字节，高位截断
func WriteLongInt(c Cursor, i int64) {
	c.WriteByte(byte(i))
	c.WriteByte(byte(i >> 8))
	c.WriteByte(byte(i >> 16))
}

// ReadFixedString 读取定长字符串并按字符集解码。
// length为负时返回错误：长度解码出的NULL哨兵(-1)必须由调用方先行识别，
// 不允许流到这里变成未定义的截断行为。
func ReadFixedString(c Cursor, length int, cs Charset) (string, error) {
	if length < 0 {
		return "", jerrors.Errorf("negative fixed string length %d", length)
	}
	raw, err := c.ReadBytes(length)
	if err != nil {
		return "", jerrors.Trace(err)
	}
	s, err := cs.Decode(raw)
	if err != nil {
		return "", jerrors.Trace(err)
	}
	return s, nil
}

// ReadLengthEncodedString 读取长度编码字符串：先读长度前缀，再读定长内容
func ReadLengthEncodedString(c Cursor, cs Charset) (string, error) {
	length, err := ReadBinaryLength(c)
	if err != nil {
		return "", jerrors.Trace(err)
	}
	return ReadFixedString(c, int(length), cs)
}

// WriteLengthEncodedString 写入长度编码字符串。
// 先完成字符集编码再落任何字节，编码失败时缓冲区保持原样。
func WriteLengthEncodedString(c Cursor, value string, cs Charset) error {
	raw, err := cs.Encode(value)
	if err != nil {
		return jerrors.Trace(err)
	}
	WriteLength(c, int64(len(raw)))
	c.WriteBytes(raw)
	return nil
}

// WritePacketLength 报文终结：给缓冲区补上3字节长度+1字节序列号的包头
func WritePacketLength(b *Buffer, sequenceId byte) {
	b.PrependPacketLength(sequenceId)
}
