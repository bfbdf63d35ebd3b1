package mysqlnet

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/AlexStocks/getty/transport"
	gxnet "github.com/AlexStocks/goext/net"
	log "github.com/AlexStocks/log4go"
	gxsync "github.com/dubbogo/gost/sync"

	"github.com/zhukovaskychina/mysql-wire/conf"
)

const pprofPath = "/debug/pprof/"

// WireServer MySQL报文编解码演示服务。
// 收到的每个连接都按协议握手，之后按命令回OK/ERR。
type WireServer struct {
	cfg        *conf.Cfg
	serverList []getty.Server
	taskPool   gxsync.GenericTaskPool

	pkgHandler *PacketReadWriter
	msgHandler *MessageHandler
}

func NewWireServer(cfg *conf.Cfg) *WireServer {
	return &WireServer{
		cfg:        cfg,
		taskPool:   gxsync.NewTaskPoolSimple(0),
		pkgHandler: NewPacketReadWriter(),
		msgHandler: NewMessageHandler(cfg),
	}
}

func (srv *WireServer) Start() {
	srv.initProfiling()
	srv.initServer()

	log.Info("%s starts successfull! its version=%s, its listen ends=%s:%d",
		srv.cfg.AppName, getty.Version, srv.cfg.BindAddress, srv.cfg.Port)

	srv.initSignal()
}

func (srv *WireServer) initProfiling() {
	addr := gxnet.HostAddress(srv.cfg.BindAddress, srv.cfg.ProfilePort)
	log.Info("app profiling startup on address{%v}", addr+pprofPath)
	go func() {
		log.Info(http.ListenAndServe(addr, nil))
	}()
}

func (srv *WireServer) initServer() {
	addr := gxnet.HostAddress2(srv.cfg.BindAddress, strconv.Itoa(srv.cfg.Port))
	server := getty.NewTCPServer(getty.WithLocalAddress(addr))

	server.RunEventLoop(func(session getty.Session) error {
		var (
			ok      bool
			tcpConn *net.TCPConn
		)
		param := srv.cfg.SessionParam
		if param.CompressEncoding {
			session.SetCompressType(getty.CompressZip)
		}
		if tcpConn, ok = session.Conn().(*net.TCPConn); !ok {
			panic(fmt.Sprintf("%s, session.conn{%#v} is not tcp connection", session.Stat(), session.Conn()))
		}
		tcpConn.SetNoDelay(param.TcpNoDelay)
		tcpConn.SetKeepAlive(param.TcpKeepAlive)
		if param.TcpKeepAlive {
			tcpConn.SetKeepAlivePeriod(param.KeepAlivePeriodDuration)
		}
		tcpConn.SetReadBuffer(param.TcpRBufSize)
		tcpConn.SetWriteBuffer(param.TcpWBufSize)

		session.SetName(param.SessionName)
		session.SetMaxMsgLen(param.MaxMsgLen)
		session.SetPkgHandler(srv.pkgHandler)
		session.SetEventListener(srv.msgHandler)
		session.SetWQLen(param.PkgWQSize)
		session.SetReadTimeout(param.TcpReadTimeoutDuration)
		session.SetWriteTimeout(param.TcpWriteTimeoutDuration)
		session.SetCronPeriod(int(srv.cfg.SessionTimeoutDuration / 1e6))
		session.SetWaitTime(param.WaitTimeoutDuration)
		log.Debug("app accepts new session:%s", session.Stat())
		return nil
	})
	log.Debug("wire server bind addr{%s} ok!", addr)
	srv.serverList = append(srv.serverList, server)
}

func (srv *WireServer) Stop() {
	for _, server := range srv.serverList {
		server.Close()
	}
	if srv.taskPool != nil {
		srv.taskPool.Close()
	}
}

func (srv *WireServer) initSignal() {
	// signal.Notify的ch信道是阻塞的，需要设置缓冲
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-signals
		log.Info("get signal %s", sig.String())
		switch sig {
		case syscall.SIGHUP:
		// reload()
		default:
			go time.AfterFunc(srv.cfg.FailFastTimeoutDuration, func() {
				log.Exit("app exit now by force...")
				log.Close()
			})

			// 要么fail fast超时前完成收尾，要么被上面的超时函数强退
			srv.Stop()
			log.Exit("app exit now...")
			log.Close()
			return
		}
	}
}
