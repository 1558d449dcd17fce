package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/ini.v1"
)

// CredentialSection my.cnf 中读取用户名密码的段
const CredentialSection = "client"

// MsgIncompleteCredentials 凭据不完整时上报的 UNKNOWN 消息
const MsgIncompleteCredentials = "Must specify host, user, password"

// ErrIncompleteCredentials host/user/password 任一为空
var ErrIncompleteCredentials = errors.New("incomplete credentials")

type CredentialErrorKind int

const (
	FileNotFound CredentialErrorKind = iota
	SectionMissing
	KeyMissing
	Malformed
)

// CredentialFileError 读取 ini 凭据文件失败
type CredentialFileError struct {
	Kind    CredentialErrorKind
	Path    string
	Section string
	Key     string
	Err     error
}

func (e *CredentialFileError) Error() string {
	switch e.Kind {
	case FileNotFound:
		return fmt.Sprintf("credentials file not found: %s", e.Path)
	case SectionMissing:
		return fmt.Sprintf("section [%s] missing in %s", e.Section, e.Path)
	case KeyMissing:
		return fmt.Sprintf("key %q missing in section [%s] of %s", e.Key, e.Section, e.Path)
	default:
		return fmt.Sprintf("cannot parse credentials file %s: %v", e.Path, e.Err)
	}
}

func (e *CredentialFileError) Unwrap() error { return e.Err }

// CredentialSource 用户名密码的来源：Explicit 或 FromFile
type CredentialSource interface {
	userPassword() (user, password string, err error)
}

// Explicit 命令行直接给出的用户名密码
type Explicit struct {
	User     string
	Password string
}

func (s Explicit) userPassword() (string, string, error) {
	return s.User, s.Password, nil
}

// FromFile 从 my.cnf 的 [client] 段读取 user 和 password
type FromFile struct {
	Path string
}

func (s FromFile) userPassword() (string, string, error) {
	if _, err := os.Stat(s.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", &CredentialFileError{Kind: FileNotFound, Path: s.Path, Err: err}
		}
		return "", "", &CredentialFileError{Kind: Malformed, Path: s.Path, Err: err}
	}

	// 无值的行（skip-name-resolve、!include、提示输入的裸 password）直接跳过；
	// 双引号值整体读取，引号内的 # 不是注释
	f, err := ini.LoadSources(ini.LoadOptions{
		SkipUnrecognizableLines:   true,
		SpaceBeforeInlineComment:  true,
		UnescapeValueDoubleQuotes: true,
	}, s.Path)
	if err != nil {
		return "", "", &CredentialFileError{Kind: Malformed, Path: s.Path, Err: err}
	}

	sec, err := f.GetSection(CredentialSection)
	if err != nil {
		return "", "", &CredentialFileError{Kind: SectionMissing, Path: s.Path, Section: CredentialSection, Err: err}
	}

	values := make([]string, 2)
	for i, key := range []string{"user", "password"} {
		if !sec.HasKey(key) {
			return "", "", &CredentialFileError{Kind: KeyMissing, Path: s.Path, Section: CredentialSection, Key: key}
		}
		values[i] = sec.Key(key).String()
	}
	return values[0], values[1], nil
}

// Credentials 连接目标与凭据
type Credentials struct {
	Host     string
	User     string
	Password string
	Port     int
	Socket   string
}

// Resolve 读取凭据并校验 host/user/password 均非空
func Resolve(src CredentialSource, host string, port int, socket string) (Credentials, error) {
	user, password, err := src.userPassword()
	if err != nil {
		return Credentials{}, err
	}
	if port == 0 {
		port = 3306
	}
	creds := Credentials{Host: host, User: user, Password: password, Port: port, Socket: socket}
	if host == "" || user == "" || password == "" {
		return creds, ErrIncompleteCredentials
	}
	return creds, nil
}
