package collector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"laowang/mysql-replication-check/internal/logger"
	"laowang/mysql-replication-check/pkg/core"
)

// MsgNotSlave 查询无结果时的消息
const MsgNotSlave = "show slave status was nil. This server is not a slave."

// Evaluate 零行按 notSlave 策略上报；多行时只判定第一行
func Evaluate(rows []core.StatusRow, th core.Thresholds, notSlave core.NotReplicaPolicy) core.Result {
	if len(rows) == 0 {
		return core.Result{Severity: notSlave, Message: MsgNotSlave}
	}
	if len(rows) > 1 {
		logger.Info("复制状态返回 %d 行（多通道），仅判定第一行", len(rows))
	}
	return EvaluateRow(rows[0], th)
}

// EvaluateRow 判定顺序：线程未运行 > 延迟 >= critical > 延迟 > warn > OK
func EvaluateRow(row core.StatusRow, th core.Thresholds) core.Result {
	var notes []string
	if missing := row.MissingFields(); len(missing) > 0 {
		note := "couldn't detect replication status, missing fields: " + strings.Join(missing, ", ")
		logger.Warn("%s", note)
		notes = append(notes, note)
	}

	if !row.IsRunning() {
		return core.Result{
			Severity: core.SeverityCritical,
			Message: fmt.Sprintf("Slave not running! STATES: Slave_IO_Running=%s, Slave_SQL_Running=%s, LAST ERROR: %s",
				row.SlaveIORunning.Text(), row.SlaveSQLRunning.Text(), row.LastSQLError.Text()),
			Notes: notes,
		}
	}

	lag, ok := ParseLag(row.SecondsBehindMaster)
	if !ok {
		note := fmt.Sprintf("Seconds_Behind_Master %q is not a plain integer, using %d", row.SecondsBehindMaster.Text(), lag)
		logger.Warn("%s", note)
		notes = append(notes, note)
	}

	msg := fmt.Sprintf("replication delayed by %d", lag)
	res := core.Result{Notes: notes, Lag: &lag}
	switch {
	case lag >= th.Critical:
		res.Severity, res.Message = core.SeverityCritical, msg
	case lag > th.Warn:
		res.Severity, res.Message = core.SeverityWarning, msg
	default:
		res.Severity, res.Message = core.SeverityOK, "slave running: true, "+msg
	}
	return res
}

// ParseLag 宽松解析：跳过前导空白，取可选符号和数字前缀；缺失、NULL 或无数字时为 0，
// 超出范围时为 math.MaxInt/math.MinInt。ok 仅在整个值都是合法且不越界的整数时为 true。
func ParseLag(f *core.Field) (lag int, ok bool) {
	if f == nil || f.Null {
		return 0, false
	}
	s := strings.TrimLeft(f.Value, " \t\r\n\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// 超出 int 范围（如时钟偏差时的 18446744073709551615）取截断后的极值
		if errors.Is(err, strconv.ErrRange) {
			return n, false
		}
		return 0, false
	}
	return n, strings.TrimSpace(s[end:]) == ""
}
