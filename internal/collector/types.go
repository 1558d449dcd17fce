package collector

import (
	"context"

	"laowang/mysql-replication-check/pkg/core"
)

// StatusQuerier 执行复制状态查询，由 dbconn.StatusClient 实现
type StatusQuerier interface {
	QueryStatus(ctx context.Context) ([]core.StatusRow, error)
}
