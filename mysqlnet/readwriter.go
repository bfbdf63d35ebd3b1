package mysqlnet

import (
	"bytes"

	"github.com/AlexStocks/getty/transport"
	jerrors "github.com/juju/errors"

	"github.com/zhukovaskychina/mysql-wire/protocol"
)

// PacketReadWriter getty编解码器，按MySQL报文边界切分字节流
type PacketReadWriter struct{}

func NewPacketReadWriter() *PacketReadWriter {
	return &PacketReadWriter{}
}

// Read 从流头部切出一个完整报文。
// 流里还不足一个报文时返回(nil, 0, nil)，getty会带着更多数据再来。
func (rw *PacketReadWriter) Read(ss getty.Session, data []byte) (interface{}, int, error) {
	pkg := new(protocol.Packet)
	n, err := pkg.Unmarshal(bytes.NewBuffer(data))
	if err != nil {
		if err == protocol.ErrNotEnoughStream {
			return nil, 0, nil
		}
		return nil, 0, jerrors.Trace(err)
	}
	return pkg, n, nil
}

// Write 把报文编码为待发送的字节序列
func (rw *PacketReadWriter) Write(ss getty.Session, pkg interface{}) ([]byte, error) {
	p, ok := pkg.(*protocol.Packet)
	if !ok {
		return nil, jerrors.Errorf("illegal pkg type %T, expect *protocol.Packet", pkg)
	}
	buf, err := p.Marshal()
	if err != nil {
		return nil, jerrors.Trace(err)
	}
	return buf.Bytes(), nil
}
