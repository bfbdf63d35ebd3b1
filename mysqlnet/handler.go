package mysqlnet

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AlexStocks/getty/transport"
	log "github.com/AlexStocks/log4go"

	"github.com/zhukovaskychina/mysql-wire/conf"
	"github.com/zhukovaskychina/mysql-wire/protocol"
	"github.com/zhukovaskychina/mysql-wire/wire"
)

var errTooManySessions = errors.New("too many MySQL sessions")

// 未走完握手流程前会话停在这个状态
type wireSession struct {
	connectionId uint32
	authed       bool
	database     string
}

// MessageHandler getty事件监听器。连接建立即下发握手包，
// 之后按命令类型应答：PING/USE回OK，QUIT断开，其余命令回ERR。
// 本包只演示编解码，不执行查询。
type MessageHandler struct {
	rwlock       sync.RWMutex
	cfg          *conf.Cfg
	sessionMap   map[getty.Session]*wireSession
	connectionId uint32
}

func NewMessageHandler(cfg *conf.Cfg) *MessageHandler {
	return &MessageHandler{
		cfg:        cfg,
		sessionMap: make(map[getty.Session]*wireSession),
	}
}

func (h *MessageHandler) OnOpen(session getty.Session) error {
	connectionId := atomic.AddUint32(&h.connectionId, 1)
	if err := h.addSession(session, connectionId); err != nil {
		return err
	}

	log.Info("got session:%s, connection id:%d", session.Stat(), connectionId)
	// 服务端先行，主动下发握手包
	return session.WriteBytes(protocol.NewHandshake(connectionId).Encode())
}

// addSession 上限检查和登记在同一把写锁内完成，并发OnOpen不会超出SessionNumber
func (h *MessageHandler) addSession(session getty.Session, connectionId uint32) error {
	h.rwlock.Lock()
	defer h.rwlock.Unlock()
	if len(h.sessionMap) >= h.cfg.SessionNumber {
		return errTooManySessions
	}
	h.sessionMap[session] = &wireSession{connectionId: connectionId}
	return nil
}

func (h *MessageHandler) OnClose(session getty.Session) {
	log.Info("session{%s} is closing......", session.Stat())
	h.removeSession(session)
}

func (h *MessageHandler) OnError(session getty.Session, err error) {
	log.Error("session{%s} got error{%v}, will be closed.", session.Stat(), err)
	h.removeSession(session)
}

func (h *MessageHandler) OnCron(session getty.Session) {
	active := session.GetActive()
	if h.cfg.SessionTimeoutDuration.Nanoseconds() < time.Since(active).Nanoseconds() {
		log.Warn("session{%s} timeout{%s}", session.Stat(), time.Since(active).String())
		session.Close()
	}
}

func (h *MessageHandler) OnMessage(session getty.Session, pkg interface{}) {
	recPkg, ok := pkg.(*protocol.Packet)
	if !ok {
		log.Error("illegal package type: %T", pkg)
		return
	}

	h.rwlock.RLock()
	ws := h.sessionMap[session]
	h.rwlock.RUnlock()
	if ws == nil {
		log.Warn("message from unknown session %s", session.Stat())
		return
	}

	if !ws.authed {
		h.onAuth(session, ws, recPkg)
		return
	}
	h.onCommand(session, ws, recPkg)
}

func (h *MessageHandler) onAuth(session getty.Session, ws *wireSession, pkg *protocol.Packet) {
	auth, err := protocol.DecodeAuth(pkg.Body)
	if err != nil {
		log.Error("decode auth packet failed: %v", err)
		h.writeError(session, pkg.Header.PacketId+1, 1043, "Bad handshake")
		session.Close()
		return
	}
	ws.authed = true
	ws.database = auth.Database
	log.Info("session %s authed as user %s, database %q", session.Stat(), auth.User, auth.Database)
	h.writeOK(session, pkg.Header.PacketId+1, "")
}

func (h *MessageHandler) onCommand(session getty.Session, ws *wireSession, pkg *protocol.Packet) {
	cmd, err := protocol.ParseCommand(pkg.Body, wire.UTF8)
	if err != nil {
		log.Error("parse command failed: %v", err)
		h.writeError(session, pkg.Header.PacketId+1, 1064, "malformed command packet")
		return
	}

	switch cmd.Type {
	case protocol.ComPing:
		h.writeOK(session, pkg.Header.PacketId+1, "")
	case protocol.ComInitDB:
		ws.database = cmd.Arg
		h.writeOK(session, pkg.Header.PacketId+1, "")
	case protocol.ComQuit:
		session.Close()
	case protocol.ComSleep:
		// 什么都不做
	default:
		h.writeError(session, pkg.Header.PacketId+1, 1047,
			"this server only speaks the wire format, command is not supported")
	}
}

func (h *MessageHandler) writeOK(session getty.Session, sequenceId byte, message string) {
	ok := &protocol.OKPacket{ServerStatus: 2, Message: message}
	data, err := ok.Encode(sequenceId)
	if err != nil {
		log.Error("encode ok packet failed: %v", err)
		return
	}
	if err = session.WriteBytes(data); err != nil {
		log.Error("write ok packet failed: %v", err)
	}
}

func (h *MessageHandler) writeError(session getty.Session, sequenceId byte, code uint16, message string) {
	data := protocol.NewErrorPacket(code, message).Encode(sequenceId)
	if err := session.WriteBytes(data); err != nil {
		log.Error("write error packet failed: %v", err)
	}
}

func (h *MessageHandler) removeSession(session getty.Session) {
	session.Close()
	h.rwlock.Lock()
	delete(h.sessionMap, session)
	h.rwlock.Unlock()
}

// SessionCount 当前在线会话数
func (h *MessageHandler) SessionCount() int {
	h.rwlock.RLock()
	defer h.rwlock.RUnlock()
	return len(h.sessionMap)
}
