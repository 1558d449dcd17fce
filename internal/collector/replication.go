package collector

import (
	"context"

	"laowang/mysql-replication-check/internal/logger"
	"laowang/mysql-replication-check/pkg/core"
)

// ReplicationCollector 查询一次复制状态并给出结论
type ReplicationCollector struct {
	client     StatusQuerier
	thresholds core.Thresholds
	notSlave   core.NotReplicaPolicy
}

func NewReplicationCollector(client StatusQuerier, thresholds core.Thresholds, notSlave core.NotReplicaPolicy) *ReplicationCollector {
	return &ReplicationCollector{client: client, thresholds: thresholds, notSlave: notSlave}
}

func (c *ReplicationCollector) Name() string { return "replication" }

// Collect 查询失败一律 CRITICAL，不重试
func (c *ReplicationCollector) Collect(ctx context.Context) core.Result {
	rows, err := c.client.QueryStatus(ctx)
	if err != nil {
		logger.Error("查询复制状态失败: %v", err)
		return ResultFromError(err)
	}
	logger.Debug("复制状态返回 %d 行", len(rows))
	return Evaluate(rows, c.thresholds, c.notSlave)
}
