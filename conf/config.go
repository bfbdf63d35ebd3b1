package conf

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/ini.v1"

	"github.com/zhukovaskychina/mysql-wire/logger"
)

var ConfigPath string

type CommandLineArgs struct {
	ConfigPath string
}

type Cfg struct {
	Raw         *ini.File
	AppName     string
	BindAddress string
	Port        int
	ProfilePort int

	SessionTimeout         string
	SessionTimeoutDuration time.Duration
	SessionNumber          int

	FailFastTimeout         string
	FailFastTimeoutDuration time.Duration

	LogError string
	LogInfos string
	LogLevel string

	SessionParam SessionParam
}

// SessionParam TCP会话参数，喂给getty的session设置
type SessionParam struct {
	CompressEncoding        bool
	TcpNoDelay              bool
	TcpKeepAlive            bool
	KeepAlivePeriodDuration time.Duration
	TcpRBufSize             int
	TcpWBufSize             int
	PkgWQSize               int
	TcpReadTimeoutDuration  time.Duration
	TcpWriteTimeoutDuration time.Duration
	WaitTimeoutDuration     time.Duration
	MaxMsgLen               int
	SessionName             string
}

func NewCfg() *Cfg {
	return &Cfg{
		Raw:                     ini.Empty(),
		AppName:                 "mysql-wire",
		BindAddress:             "127.0.0.1",
		Port:                    3308,
		ProfilePort:             10086,
		SessionNumber:           1000,
		LogError:                "logs/error.log",
		LogInfos:                "logs/mysql-wire.log",
		LogLevel:                "info",
		SessionTimeout:          "60s",
		SessionTimeoutDuration:  60 * time.Second,
		FailFastTimeout:         "5s",
		FailFastTimeoutDuration: 5 * time.Second,
		SessionParam: SessionParam{
			TcpNoDelay:              true,
			TcpKeepAlive:            true,
			KeepAlivePeriodDuration: 180 * time.Second,
			TcpRBufSize:             262144,
			TcpWBufSize:             65536,
			PkgWQSize:               1024,
			TcpReadTimeoutDuration:  time.Second,
			TcpWriteTimeoutDuration: 5 * time.Second,
			WaitTimeoutDuration:     7 * time.Second,
			MaxMsgLen:               16*1024*1024 + 4,
			SessionName:             "mysql-wire-session",
		},
	}
}

// Load 读取ini配置文件并覆盖默认值，文件缺失时直接退出
func (cfg *Cfg) Load(args *CommandLineArgs) *Cfg {
	setHomePath(args)
	iniFile, err := ini.Load(ConfigPath)
	if err != nil {
		logger.Errorf("加载配置文件 %s 失败: %v", ConfigPath, err)
		os.Exit(1)
	}
	cfg.Raw = iniFile

	cfg.parseServerCfg(cfg.Raw.Section("mysqld"))
	cfg.parseSessionCfg(cfg.Raw.Section("session"))
	cfg.parseLogsCfg(cfg.Raw.Section("logs"))
	return cfg
}

func setHomePath(args *CommandLineArgs) {
	if args.ConfigPath != "" {
		ConfigPath = args.ConfigPath
		return
	}
	home, _ := filepath.Abs(".")
	ConfigPath = filepath.Join(home, "mysql-wire.ini")
}

func (cfg *Cfg) parseServerCfg(section *ini.Section) {
	cfg.AppName = section.Key("app_name").MustString(cfg.AppName)
	cfg.BindAddress = section.Key("bind_address").MustString(cfg.BindAddress)
	cfg.Port = section.Key("port").MustInt(cfg.Port)
	cfg.ProfilePort = section.Key("profile_port").MustInt(cfg.ProfilePort)

	cfg.SessionNumber = section.Key("session_number").MustInt(cfg.SessionNumber)
	cfg.SessionTimeout = section.Key("session_timeout").MustString("60s")
	cfg.SessionTimeoutDuration = mustDuration(cfg.SessionTimeout, 60*time.Second)
	cfg.FailFastTimeout = section.Key("fail_fast_timeout").MustString("5s")
	cfg.FailFastTimeoutDuration = mustDuration(cfg.FailFastTimeout, 5*time.Second)
}

func (cfg *Cfg) parseSessionCfg(section *ini.Section) {
	p := &cfg.SessionParam
	p.CompressEncoding = section.Key("compress_encoding").MustBool(false)
	p.TcpNoDelay = section.Key("tcp_no_delay").MustBool(true)
	p.TcpKeepAlive = section.Key("tcp_keep_alive").MustBool(true)
	p.KeepAlivePeriodDuration = mustDuration(section.Key("keep_alive_period").MustString("180s"), 180*time.Second)
	p.TcpRBufSize = section.Key("tcp_r_buf_size").MustInt(p.TcpRBufSize)
	p.TcpWBufSize = section.Key("tcp_w_buf_size").MustInt(p.TcpWBufSize)
	p.PkgWQSize = section.Key("pkg_wq_size").MustInt(p.PkgWQSize)
	p.TcpReadTimeoutDuration = mustDuration(section.Key("tcp_read_timeout").MustString("1s"), time.Second)
	p.TcpWriteTimeoutDuration = mustDuration(section.Key("tcp_write_timeout").MustString("5s"), 5*time.Second)
	p.WaitTimeoutDuration = mustDuration(section.Key("wait_timeout").MustString("7s"), 7*time.Second)
	p.MaxMsgLen = section.Key("max_msg_len").MustInt(p.MaxMsgLen)
	p.SessionName = section.Key("session_name").MustString(p.SessionName)
}

func (cfg *Cfg) parseLogsCfg(section *ini.Section) {
	cfg.LogError = section.Key("log_error").MustString(cfg.LogError)
	cfg.LogInfos = section.Key("log_infos").MustString(cfg.LogInfos)
	cfg.LogLevel = section.Key("log_level").MustString(cfg.LogLevel)
}

func mustDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		logger.Warnf("非法的时长配置 %q，使用默认值 %s", value, fallback)
		return fallback
	}
	return d
}
