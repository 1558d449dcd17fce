package exporter

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laowang/mysql-replication-check/pkg/core"
)

func TestTextExporter(t *testing.T) {
	tests := []struct {
		name string
		res  core.Result
		want string
		code int
	}{
		{"ok", core.Result{Severity: core.SeverityOK, Message: "slave running: true, replication delayed by 100"},
			"CheckMysqlReplicationStatus OK: slave running: true, replication delayed by 100\n", 0},
		{"warning", core.Result{Severity: core.SeverityWarning, Message: "replication delayed by 1000"},
			"CheckMysqlReplicationStatus WARNING: replication delayed by 1000\n", 1},
		{"critical", core.Result{Severity: core.SeverityCritical, Message: "replication delayed by 2000"},
			"CheckMysqlReplicationStatus CRITICAL: replication delayed by 2000\n", 2},
		{"unknown", core.Result{Severity: core.SeverityUnknown, Message: "Must specify host, user, password"},
			"CheckMysqlReplicationStatus UNKNOWN: Must specify host, user, password\n", 3},
		{"no message", core.Result{Severity: core.SeverityOK}, "CheckMysqlReplicationStatus OK\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			code := Report(New("text", "CheckMysqlReplicationStatus", &buf), tt.res)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestJSONExporter(t *testing.T) {
	var buf bytes.Buffer
	lag := 1000
	code := Report(New("json", "repl", &buf), core.Result{
		Severity: core.SeverityWarning,
		Message:  "replication delayed by 1000",
		Notes:    []string{"couldn't detect replication status, missing fields: Last_IO_Error"},
		Lag:      &lag,
	})
	assert.Equal(t, 1, code)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "repl", got["check"])
	assert.Equal(t, "WARNING", got["status"])
	assert.Equal(t, float64(1), got["exit_code"])
	assert.Equal(t, float64(1000), got["lag_seconds"])
	assert.Len(t, got["notes"], 1)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestReportWriteFailure(t *testing.T) {
	code := Report(NewTextExporter("x", failingWriter{}), core.Result{Severity: core.SeverityOK})
	assert.Equal(t, 3, code)
}
