package core

import (
	"errors"
	"fmt"
	"strings"
)

// Severity 检查结果等级，数值即进程退出码
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityCritical
	SeverityUnknown
)

// ErrUnknownSeverity 无法识别的等级名称
var ErrUnknownSeverity = errors.New("unknown severity")

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode 监控插件约定：OK=0, WARNING=1, CRITICAL=2, UNKNOWN=3
func (s Severity) ExitCode() int {
	switch s {
	case SeverityOK, SeverityWarning, SeverityCritical:
		return int(s)
	default:
		return int(SeverityUnknown)
	}
}

// SeverityNames 可用于 --not-slave 的取值
var SeverityNames = []string{"ok", "warning", "critical", "unknown"}

// ParseSeverity 解析 ok/warning/critical/unknown（不区分大小写）
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ok":
		return SeverityOK, nil
	case "warning":
		return SeverityWarning, nil
	case "critical":
		return SeverityCritical, nil
	case "unknown":
		return SeverityUnknown, nil
	}
	return SeverityUnknown, fmt.Errorf("%w: %q, expecting one of %s",
		ErrUnknownSeverity, s, strings.Join(SeverityNames, ", "))
}
