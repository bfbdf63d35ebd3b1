package wire

import (
	jerrors "github.com/juju/errors"
	"github.com/piex/transcode"
)

// Charset 字符串编解码用的字符集名
type Charset string

const (
	UTF8    Charset = "UTF8"
	Latin1  Charset = "LATIN1"
	GBK     Charset = "GBK"
	GB2312  Charset = "GB2312"
	GB18030 Charset = "GB18030"
	BIG5    Charset = "BIG5"
)

// Decode 把给定字符集下的原始字节解码为Go字符串
func (cs Charset) Decode(raw []byte) (string, error) {
	switch cs {
	case UTF8, "", "UTF8MB4":
		return string(raw), nil
	case Latin1:
		runes := make([]rune, len(raw))
		for i, b := range raw {
			runes[i] = rune(b)
		}
		return string(runes), nil
	case GBK, GB2312, GB18030, BIG5:
		return transcode.FromByteArray(raw).Decode(string(cs)).ToString(), nil
	default:
		return "", jerrors.Errorf("unsupported charset %q", string(cs))
	}
}

// Encode 把Go字符串编码为给定字符集下的原始字节
func (cs Charset) Encode(value string) ([]byte, error) {
	switch cs {
	case UTF8, "", "UTF8MB4":
		return []byte(value), nil
	case Latin1:
		raw := make([]byte, 0, len(value))
		for _, r := range value {
			if r > 0xFF {
				return nil, jerrors.Errorf("rune %q not representable in latin1", r)
			}
			raw = append(raw, byte(r))
		}
		return raw, nil
	case GBK, GB2312, GB18030, BIG5:
		return transcode.FromString(value).Encode(string(cs)).ToByteArray(), nil
	default:
		return nil, jerrors.Errorf("unsupported charset %q", string(cs))
	}
}
