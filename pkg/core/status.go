package core

import (
	"database/sql"
	"strings"
)

// SHOW SLAVE STATUS 中判定所需的六个字段
const (
	FieldSlaveIOState        = "Slave_IO_State"
	FieldSlaveIORunning      = "Slave_IO_Running"
	FieldSlaveSQLRunning     = "Slave_SQL_Running"
	FieldLastIOError         = "Last_IO_Error"
	FieldLastSQLError        = "Last_SQL_Error"
	FieldSecondsBehindMaster = "Seconds_Behind_Master"
)

// ExpectedFields 按固定顺序列出必需字段
var ExpectedFields = []string{
	FieldSlaveIOState,
	FieldSlaveIORunning,
	FieldSlaveSQLRunning,
	FieldLastIOError,
	FieldLastSQLError,
	FieldSecondsBehindMaster,
}

// SHOW REPLICA STATUS (8.0.22+) 的列名映射到旧名
var replicaAliases = map[string]string{
	"Replica_IO_State":      FieldSlaveIOState,
	"Replica_IO_Running":    FieldSlaveIORunning,
	"Replica_SQL_Running":   FieldSlaveSQLRunning,
	"Seconds_Behind_Source": FieldSecondsBehindMaster,
}

// Field 一列的取值。nil *Field 表示该列不存在，Null 表示列存在但值为 NULL。
type Field struct {
	Value string
	Null  bool
}

// Text 返回用于消息拼接的文本，NULL 视为空串
func (f *Field) Text() string {
	if f == nil || f.Null {
		return ""
	}
	return f.Value
}

// StatusRow 一行复制状态
type StatusRow struct {
	SlaveIOState        *Field
	SlaveIORunning      *Field
	SlaveSQLRunning     *Field
	LastIOError         *Field
	LastSQLError        *Field
	SecondsBehindMaster *Field
	// Extra 其余列，NULL 记为空串
	Extra map[string]string
}

// NewStatusRow 由列名与扫描结果构造一行
func NewStatusRow(cols []string, values []sql.NullString) StatusRow {
	row := StatusRow{Extra: map[string]string{}}
	for i, name := range cols {
		if i >= len(values) {
			break
		}
		f := &Field{Value: values[i].String, Null: !values[i].Valid}
		if !row.set(name, f) {
			row.Extra[name] = f.Text()
		}
	}
	return row
}

// RowFromMap 由列名到值的映射构造一行，值均视为非 NULL
func RowFromMap(m map[string]string) StatusRow {
	cols := make([]string, 0, len(m))
	values := make([]sql.NullString, 0, len(m))
	for k, v := range m {
		cols = append(cols, k)
		values = append(values, sql.NullString{String: v, Valid: true})
	}
	return NewStatusRow(cols, values)
}

func (r *StatusRow) set(name string, f *Field) bool {
	if alias, ok := replicaAliases[name]; ok {
		name = alias
	}
	switch name {
	case FieldSlaveIOState:
		r.SlaveIOState = f
	case FieldSlaveIORunning:
		r.SlaveIORunning = f
	case FieldSlaveSQLRunning:
		r.SlaveSQLRunning = f
	case FieldLastIOError:
		r.LastIOError = f
	case FieldLastSQLError:
		r.LastSQLError = f
	case FieldSecondsBehindMaster:
		r.SecondsBehindMaster = f
	default:
		return false
	}
	return true
}

// Get 按旧列名取字段
func (r StatusRow) Get(name string) *Field {
	switch name {
	case FieldSlaveIOState:
		return r.SlaveIOState
	case FieldSlaveIORunning:
		return r.SlaveIORunning
	case FieldSlaveSQLRunning:
		return r.SlaveSQLRunning
	case FieldLastIOError:
		return r.LastIOError
	case FieldLastSQLError:
		return r.LastSQLError
	case FieldSecondsBehindMaster:
		return r.SecondsBehindMaster
	}
	return nil
}

// MissingFields 返回缺失的必需字段
func (r StatusRow) MissingFields() []string {
	var missing []string
	for _, name := range ExpectedFields {
		if r.Get(name) == nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// IsRunning 两个线程的状态都包含 "Yes"（区分大小写）才算运行中
func (r StatusRow) IsRunning() bool {
	return strings.Contains(r.SlaveIORunning.Text(), "Yes") &&
		strings.Contains(r.SlaveSQLRunning.Text(), "Yes")
}
