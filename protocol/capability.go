package protocol

// 客户端/服务端能力标志位
const (
	ClientLongPassword     uint32 = 1 << 0
	ClientFoundRows        uint32 = 1 << 1
	ClientLongFlag         uint32 = 1 << 2
	ClientConnectWithDB    uint32 = 1 << 3
	ClientODBC             uint32 = 1 << 6
	ClientIgnoreSpace      uint32 = 1 << 8
	ClientProtocol41       uint32 = 1 << 9
	ClientInteractive      uint32 = 1 << 10
	ClientIgnoreSigpipe    uint32 = 1 << 12
	ClientTransactions     uint32 = 1 << 13
	ClientSecureConnection uint32 = 1 << 15
	ClientPluginAuth       uint32 = 1 << 19
)

// ServerCapabilities 握手包里宣告的服务端能力集合
func ServerCapabilities() uint32 {
	var capabilities uint32
	capabilities |= ClientLongPassword
	capabilities |= ClientFoundRows
	capabilities |= ClientLongFlag
	capabilities |= ClientConnectWithDB
	capabilities |= ClientODBC
	capabilities |= ClientIgnoreSpace
	capabilities |= ClientProtocol41
	capabilities |= ClientInteractive
	capabilities |= ClientIgnoreSigpipe
	capabilities |= ClientTransactions
	capabilities |= ClientSecureConnection
	return capabilities
}
