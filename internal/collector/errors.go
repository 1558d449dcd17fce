package collector

import (
	"errors"

	"laowang/mysql-replication-check/internal/config"
	"laowang/mysql-replication-check/pkg/core"
)

// ResultFromError 错误到等级的映射：凭据/配置问题 UNKNOWN，连接与查询错误 CRITICAL
func ResultFromError(err error) core.Result {
	if errors.Is(err, config.ErrIncompleteCredentials) {
		return core.Result{Severity: core.SeverityUnknown, Message: config.MsgIncompleteCredentials}
	}
	var cfe *config.CredentialFileError
	if errors.As(err, &cfe) {
		return core.Result{Severity: core.SeverityUnknown, Message: cfe.Error()}
	}
	var qe *core.QueryError
	if errors.As(err, &qe) {
		return core.Result{Severity: core.SeverityCritical, Message: qe.Error()}
	}
	return core.Result{Severity: core.SeverityCritical, Message: err.Error()}
}
