package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"laowang/mysql-replication-check/pkg/core"
	"laowang/mysql-replication-check/pkg/dbconn"
)

// EnvPrefix 环境变量前缀，如 MYSQL_REPL_NOT_SLAVE=warning
const EnvPrefix = "MYSQL_REPL"

// ErrHelp 用户请求了 --help
var ErrHelp = pflag.ErrHelp

// ErrUsage 命令行解析失败，错误和用法已写到输出
var ErrUsage = errors.New("usage error")

type Config struct {
	ConfigFile string `mapstructure:"config"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Socket   string `mapstructure:"socket"`
	User     string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	IniFile  string `mapstructure:"ini"`

	Warn     int    `mapstructure:"warning"`
	Critical int    `mapstructure:"critical"`
	NotSlave string `mapstructure:"not-slave"`
	Query    string `mapstructure:"query"`

	ConnectTimeout time.Duration `mapstructure:"connect-timeout"`
	QueryTimeout   time.Duration `mapstructure:"query-timeout"`

	Output    string `mapstructure:"output"`
	CheckName string `mapstructure:"check-name"`
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`

	// Validate 之后填充
	NotSlavePolicy core.NotReplicaPolicy `mapstructure:"-"`
	Statement      string                `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 3306)
	v.SetDefault("warning", core.DefaultWarnSeconds)
	v.SetDefault("critical", core.DefaultCriticalSeconds)
	v.SetDefault("not-slave", "ok")
	v.SetDefault("query", "slave")
	v.SetDefault("connect-timeout", 10*time.Second)
	v.SetDefault("query-timeout", 30*time.Second)
	v.SetDefault("output", "text")
	v.SetDefault("check-name", "CheckMysqlReplicationStatus")
	v.SetDefault("log-level", "warn")
	v.SetDefault("log-format", "console")
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false

	fs.StringP("host", "h", "", "Database host")
	fs.IntP("port", "P", 3306, "Database port")
	fs.StringP("socket", "s", "", "Socket to use")
	fs.StringP("username", "u", "", "Database username")
	fs.StringP("password", "p", "", "Database password")
	fs.StringP("ini", "i", "", "My.cnf ini file")
	fs.IntP("warning", "w", core.DefaultWarnSeconds, "Warning threshold for replication lag")
	fs.IntP("critical", "c", core.DefaultCriticalSeconds, "Critical threshold for replication lag")
	fs.StringP("not-slave", "n", "ok", "Exit method to use if not a slave ("+strings.Join(core.SeverityNames, ", ")+")")
	fs.String("query", "slave", "Status statement: slave (SHOW SLAVE STATUS) or replica (SHOW REPLICA STATUS)")
	fs.Duration("connect-timeout", 10*time.Second, "Connect timeout")
	fs.Duration("query-timeout", 30*time.Second, "Read/write timeout of the status query")
	fs.String("output", "text", "Output format: text or json")
	fs.String("check-name", "CheckMysqlReplicationStatus", "Name printed in front of the status")
	fs.String("log-level", "warn", "Log level: debug, info, warn, error")
	fs.String("log-format", "console", "Log format: console or json")
	fs.String("config", "", "Optional YAML config file")
	return fs
}

// Load 解析命令行参数，合并环境变量与配置文件，优先级：flag > env > file > default
func Load(name string, args []string, out io.Writer) (*Config, error) {
	fs := newFlagSet(name)
	fs.SetOutput(out)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	v := viper.New()
	setDefaults(v)
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查参数取值，错误属于参数解析阶段，不会发起查询
func (c *Config) Validate() error {
	policy, err := core.ParseSeverity(c.NotSlave)
	if err != nil {
		return fmt.Errorf("invalid for --not-slave: %w", err)
	}
	c.NotSlavePolicy = policy

	stmt, err := dbconn.StatementFor(c.Query)
	if err != nil {
		return err
	}
	c.Statement = stmt

	switch c.Output {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format %q, expecting text or json", c.Output)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.ConnectTimeout < 0 || c.QueryTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}

// Thresholds 延迟阈值
func (c *Config) Thresholds() core.Thresholds {
	return core.Thresholds{Warn: c.Warn, Critical: c.Critical}
}

// Source 指定了 ini 文件时优先使用文件中的用户名密码
func (c *Config) Source() CredentialSource {
	if c.IniFile != "" {
		return FromFile{Path: c.IniFile}
	}
	return Explicit{User: c.User, Password: c.Password}
}

// DBConfig 组装连接参数
func (c *Config) DBConfig(creds Credentials) dbconn.Config {
	return dbconn.Config{
		Host:           creds.Host,
		Port:           creds.Port,
		Socket:         creds.Socket,
		User:           creds.User,
		Password:       creds.Password,
		ConnectTimeout: c.ConnectTimeout,
		QueryTimeout:   c.QueryTimeout,
	}
}
