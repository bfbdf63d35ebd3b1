package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// 连通性验证客户端：走标准驱动完成握手和PING，
// 验证服务端报文编解码和mysql客户端生态的互通性。
func main() {
	var (
		host     string
		port     int
		user     string
		password string
		database string
	)
	flag.StringVar(&host, "host", "127.0.0.1", "服务端地址")
	flag.IntVar(&port, "port", 3308, "服务端端口")
	flag.StringVar(&user, "user", "root", "用户名")
	flag.StringVar(&password, "password", "", "密码")
	flag.StringVar(&database, "database", "", "数据库名")
	flag.Parse()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?timeout=3s", user, password, host, port, database)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		fmt.Printf("打开连接失败: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetConnMaxLifetime(time.Minute)

	if err := db.Ping(); err != nil {
		fmt.Printf("无法连接到服务器 %s:%d: %v\n", host, port, err)
		os.Exit(1)
	}
	fmt.Printf("连接成功，握手与PING报文往返正常 (%s:%d)\n", host, port)
}
