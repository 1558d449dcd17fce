package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 标准输出只留给检查结果，日志固定写 stderr
var lg = zap.NewNop().Sugar()

// InitLogger 按级别(debug/info/warn/error)和格式(console/json)初始化全局日志
func InitLogger(level, format string) error {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch strings.ToLower(format) {
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return fmt.Errorf("invalid log format %q: must be \"console\" or \"json\"", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	SetLogger(l)
	return nil
}

// SetLogger 替换全局日志，测试中可传入 zaptest.NewLogger(t)
func SetLogger(l *zap.Logger) {
	lg = l.Sugar()
}

// Sync 进程退出前刷新缓冲
func Sync() {
	_ = lg.Sync()
}

func Debug(fmtStr string, v ...interface{}) { lg.Debugf(fmtStr, v...) }
func Info(fmtStr string, v ...interface{})  { lg.Infof(fmtStr, v...) }
func Warn(fmtStr string, v ...interface{})  { lg.Warnf(fmtStr, v...) }
func Error(fmtStr string, v ...interface{}) { lg.Errorf(fmtStr, v...) }
