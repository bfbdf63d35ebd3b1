package mysqlnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhukovaskychina/mysql-wire/protocol"
)

func TestPacketReadWriterRead(t *testing.T) {
	rw := NewPacketReadWriter()
	pkg := &protocol.Packet{Header: protocol.Header{PacketId: 2}, Body: []byte{protocol.ComPing}}
	buf, err := pkg.Marshal()
	require.NoError(t, err)
	stream := buf.Bytes()

	got, n, err := rw.Read(nil, stream)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	out, ok := got.(*protocol.Packet)
	require.True(t, ok)
	assert.Equal(t, byte(2), out.Header.PacketId)
	assert.Equal(t, []byte{protocol.ComPing}, out.Body)
}

func TestPacketReadWriterReadPartialFrame(t *testing.T) {
	rw := NewPacketReadWriter()

	// 不足一个报文时不报错也不消费，等更多数据
	got, n, err := rw.Read(nil, []byte{0x05, 0x00, 0x00})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, n)

	got, n, err = rw.Read(nil, []byte{0x05, 0x00, 0x00, 0x00, 0x03})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, n)
}

func TestPacketReadWriterWrite(t *testing.T) {
	rw := NewPacketReadWriter()
	pkg := &protocol.Packet{Header: protocol.Header{PacketId: 1}, Body: []byte{0x00}}

	data, err := rw.Write(nil, pkg)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x01, 0x00}, data)

	_, err = rw.Write(nil, "not a packet")
	require.Error(t, err)
}
