package dbconn

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"laowang/mysql-replication-check/pkg/core"
)

type Config struct {
	Host           string
	Port           int
	Socket         string
	User           string
	Password       string
	ConnectTimeout time.Duration
	QueryTimeout   time.Duration
}

// DSN 指定 socket 时走 unix 连接，否则 tcp host:port
func (cfg Config) DSN() string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	if cfg.Socket != "" {
		mc.Net = "unix"
		mc.Addr = cfg.Socket
	} else {
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	}
	mc.Timeout = cfg.ConnectTimeout
	mc.ReadTimeout = cfg.QueryTimeout
	mc.WriteTimeout = cfg.QueryTimeout
	return mc.FormatDSN()
}

// NewConnection 打开并验证连接。检查只需要一条连接。
func NewConnection(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, ConvertError(err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, ConvertError(err)
	}
	return db, nil
}

// ConvertError 把驱动错误转换为 core.QueryError，其它错误原样返回
func ConvertError(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	qe := &core.QueryError{Code: me.Number, Message: me.Message}
	if me.SQLState != [5]byte{} {
		qe.State = string(me.SQLState[:])
	}
	return qe
}

// Describe 日志中使用的目标描述，不含密码
func (cfg Config) Describe() string {
	if cfg.Socket != "" {
		return fmt.Sprintf("%s@unix(%s)", cfg.User, cfg.Socket)
	}
	return fmt.Sprintf("%s@%s:%d", cfg.User, cfg.Host, cfg.Port)
}
