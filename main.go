package main

import (
	"flag"

	"github.com/zhukovaskychina/mysql-wire/conf"
	"github.com/zhukovaskychina/mysql-wire/logger"
	"github.com/zhukovaskychina/mysql-wire/mysqlnet"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "configPath", "", "配置文件路径")
	flag.Parse()

	config := conf.NewCfg()
	if configPath != "" {
		config = config.Load(&conf.CommandLineArgs{ConfigPath: configPath})
	}

	logConfig := logger.LogConfig{
		ErrorLogPath: config.LogError,
		InfoLogPath:  config.LogInfos,
		LogLevel:     config.LogLevel,
	}
	if err := logger.InitLogger(logConfig); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	logger.Infof("mysql-wire starting, listen %s:%d", config.BindAddress, config.Port)
	mysqlnet.NewWireServer(config).Start()
}
