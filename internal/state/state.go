// Package state 保存 shell 进程的全部可变状态
package state

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"gofish/internal/abbr"
	"gofish/internal/complete"
	"gofish/internal/history"
)

// Clipboard 剪贴板
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// State shell 状态
// 每个进程只有一个，由 REPL 线程独占
type State struct {
	env      map[string]string
	cwd      string
	running  bool
	exitCode int

	History   *history.History
	Pager     *complete.Pager
	Abbrs     *abbr.Table
	Clipboard Clipboard

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Logger zerolog.Logger
}

// New 创建状态，环境变量从当前进程继承
func New(hist *history.History) *State {
	if hist == nil {
		hist = history.NewHistory(history.DefaultMaxSize, nil)
	}
	s := &State{
		env:     make(map[string]string),
		running: true,
		History: hist,
		Pager:   &complete.Pager{},
		Abbrs:   abbr.New(),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Logger:  zerolog.Nop(),
	}
	for _, kv := range os.Environ() {
		key, value := splitEnv(kv)
		if key != "" {
			s.env[key] = value
		}
	}
	s.RefreshCwd()
	return s
}

// splitEnv 分割 KEY=VALUE
func splitEnv(kv string) (string, string) {
	key, value, _ := strings.Cut(kv, "=")
	return key, value
}

// Getenv 获取环境变量
func (s *State) Getenv(key string) string {
	return s.env[key]
}

// LookupEnv 获取环境变量，并返回是否存在
func (s *State) LookupEnv(key string) (string, bool) {
	v, ok := s.env[key]
	return v, ok
}

// SetEnv 设置环境变量，后设置的覆盖先设置的
func (s *State) SetEnv(key, value string) {
	s.env[key] = value
}

// Unsetenv 删除环境变量
func (s *State) Unsetenv(key string) {
	delete(s.env, key)
}

// Env 返回环境变量的副本
func (s *State) Env() map[string]string {
	env := make(map[string]string, len(s.env))
	for k, v := range s.env {
		env[k] = v
	}
	return env
}

// EnvNames 返回排序后的环境变量名
func (s *State) EnvNames() []string {
	names := make([]string, 0, len(s.env))
	for k := range s.env {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Cwd 返回当前目录
func (s *State) Cwd() string {
	return s.cwd
}

// RefreshCwd 从操作系统重新读取当前目录
func (s *State) RefreshCwd() error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getwd: %w", err)
	}
	s.cwd = wd
	return nil
}

// Running 是否继续运行
func (s *State) Running() bool {
	return s.running
}

// Stop 让 REPL 在本轮结束后退出
func (s *State) Stop() {
	s.running = false
}

// ExitCode 返回上一次的退出码
func (s *State) ExitCode() int {
	return s.exitCode
}

// SetExitCode 设置退出码，并导出到 $status
func (s *State) SetExitCode(code int) {
	s.exitCode = code
	s.env["status"] = strconv.Itoa(code)
}

// Errorf 向错误输出打印带前缀的提示
func (s *State) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(s.Stderr, "gofish: "+format+"\n", args...)
}
