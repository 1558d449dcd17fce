package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"laowang/mysql-replication-check/internal/collector"
	"laowang/mysql-replication-check/internal/config"
	"laowang/mysql-replication-check/internal/exporter"
	"laowang/mysql-replication-check/internal/logger"
	"laowang/mysql-replication-check/pkg/core"
	"laowang/mysql-replication-check/pkg/dbconn"
)

// openDB 建立数据库连接，测试中替换为 sqlmock
var openDB = dbconn.NewConnection

func main() {
	os.Exit(run(context.Background(), filepath.Base(os.Args[0]), os.Args[1:], os.Stdout, os.Stderr))
}

// run 返回进程退出码；所有资源在返回前释放
func run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(name, args, stderr)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrHelp):
			return 0
		case !errors.Is(err, config.ErrUsage):
			fmt.Fprintf(stderr, "%v\n", err)
		}
		return core.SeverityUnknown.ExitCode()
	}

	if err := logger.InitLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return core.SeverityUnknown.ExitCode()
	}
	defer logger.Sync()

	res := check(ctx, cfg)
	logger.Debug("检查结论: %s %s", res.Severity, res.Message)
	return exporter.Report(exporter.New(cfg.Output, cfg.CheckName, stdout), res)
}

// check 解析凭据 -> 连接 -> 查询 -> 判定；连接在返回前关闭
func check(ctx context.Context, cfg *config.Config) core.Result {
	creds, err := config.Resolve(cfg.Source(), cfg.Host, cfg.Port, cfg.Socket)
	if err != nil {
		logger.Warn("凭据解析失败: %v", err)
		return collector.ResultFromError(err)
	}

	dbCfg := cfg.DBConfig(creds)
	logger.Info("连接数据库: %s", dbCfg.Describe())
	db, err := openDB(ctx, dbCfg)
	if err != nil {
		logger.Error("数据库连接失败: %v", err)
		return collector.ResultFromError(err)
	}

	client := dbconn.NewStatusClient(db, cfg.Statement)
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("关闭连接失败: %v", err)
		}
	}()

	return collector.NewReplicationCollector(client, cfg.Thresholds(), cfg.NotSlavePolicy).Collect(ctx)
}
