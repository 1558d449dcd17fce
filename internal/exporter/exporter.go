package exporter

import (
	"encoding/json"
	"fmt"
	"io"

	"laowang/mysql-replication-check/internal/logger"
	"laowang/mysql-replication-check/pkg/core"
)

// Exporter 输出一次检查结论，恰好一行
type Exporter interface {
	Export(res core.Result) error
}

// New 按格式创建 exporter
func New(format, checkName string, w io.Writer) Exporter {
	if format == "json" {
		return NewJSONExporter(checkName, w)
	}
	return NewTextExporter(checkName, w)
}

// Report 输出结论并返回进程退出码；输出失败时退出码为 UNKNOWN
func Report(e Exporter, res core.Result) int {
	if err := e.Export(res); err != nil {
		logger.Error("输出检查结果失败: %v", err)
		return core.SeverityUnknown.ExitCode()
	}
	return res.Severity.ExitCode()
}

// TextExporter 监控插件格式：<name> <STATUS>: <message>
type TextExporter struct {
	name string
	w    io.Writer
}

func NewTextExporter(name string, w io.Writer) *TextExporter {
	return &TextExporter{name: name, w: w}
}

func (e *TextExporter) Export(res core.Result) error {
	line := res.Severity.String()
	if e.name != "" {
		line = e.name + " " + line
	}
	if res.Message != "" {
		line += ": " + res.Message
	}
	_, err := fmt.Fprintln(e.w, line)
	return err
}

type JSONExporter struct {
	name string
	w    io.Writer
}

func NewJSONExporter(name string, w io.Writer) *JSONExporter {
	return &JSONExporter{name: name, w: w}
}

type jsonResult struct {
	Check      string   `json:"check,omitempty"`
	Status     string   `json:"status"`
	ExitCode   int      `json:"exit_code"`
	Message    string   `json:"message"`
	Notes      []string `json:"notes,omitempty"`
	LagSeconds *int     `json:"lag_seconds,omitempty"`
}

func (e *JSONExporter) Export(res core.Result) error {
	b, err := json.Marshal(jsonResult{
		Check:      e.name,
		Status:     res.Severity.String(),
		ExitCode:   res.Severity.ExitCode(),
		Message:    res.Message,
		Notes:      res.Notes,
		LagSeconds: res.Lag,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.w, string(b))
	return err
}
