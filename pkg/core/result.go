package core

import "fmt"

const (
	DefaultWarnSeconds     = 900
	DefaultCriticalSeconds = 1800
)

// Thresholds 复制延迟阈值（秒）。不校验 Warn < Critical，判定时先比较 Critical。
type Thresholds struct {
	Warn     int
	Critical int
}

func DefaultThresholds() Thresholds {
	return Thresholds{Warn: DefaultWarnSeconds, Critical: DefaultCriticalSeconds}
}

// NotReplicaPolicy 目标不是从库时上报的等级
type NotReplicaPolicy = Severity

// Result 一次检查的最终结论
type Result struct {
	Severity Severity
	Message  string
	// Notes 诊断信息（字段缺失、延迟无法解析等），不影响等级
	Notes []string
	// Lag 仅在完成延迟判定时有值
	Lag *int
}

// QueryError 连接或查询失败，字段原样来自驱动
type QueryError struct {
	Code    uint16
	Message string
	State   string
}

func (e *QueryError) Error() string {
	msg := fmt.Sprintf("Error code: %d Error message: %s", e.Code, e.Message)
	if e.State != "" {
		msg += " SQLSTATE: " + e.State
	}
	return msg
}
