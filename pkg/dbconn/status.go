package dbconn

import (
	"context"
	"database/sql"
	"fmt"

	"laowang/mysql-replication-check/pkg/core"
)

const (
	QuerySlaveStatus   = "SHOW SLAVE STATUS"
	QueryReplicaStatus = "SHOW REPLICA STATUS"
)

// StatementFor 将 slave/replica 映射为查询语句
func StatementFor(name string) (string, error) {
	switch name {
	case "", "slave":
		return QuerySlaveStatus, nil
	case "replica":
		return QueryReplicaStatus, nil
	}
	return "", fmt.Errorf("invalid status query %q, expecting slave or replica", name)
}

// StatusClient 执行一次复制状态查询
type StatusClient struct {
	db    *sql.DB
	query string
}

func NewStatusClient(db *sql.DB, query string) *StatusClient {
	if query == "" {
		query = QuerySlaveStatus
	}
	return &StatusClient{db: db, query: query}
}

// QueryStatus 所有列按字符串扫描，返回全部行；零行表示不是从库
func (c *StatusClient) QueryStatus(ctx context.Context) ([]core.StatusRow, error) {
	rows, err := c.db.QueryContext(ctx, c.query)
	if err != nil {
		return nil, ConvertError(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, ConvertError(err)
	}

	var result []core.StatusRow
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, ConvertError(err)
		}
		result = append(result, core.NewStatusRow(cols, values))
	}
	if err := rows.Err(); err != nil {
		return nil, ConvertError(err)
	}
	return result, nil
}

// Close 释放连接
func (c *StatusClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
