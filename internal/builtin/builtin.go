// Package builtin 实现内置命令
package builtin

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"gofish/internal/state"
	"gofish/pkg/platform"
)

// BuiltinFunc 内置命令函数类型
type BuiltinFunc func(s *state.State, args []string) error

// ExitStatus 内置命令要求以指定退出码结束
type ExitStatus int

func (e ExitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

var builtins map[string]BuiltinFunc

func init() {
	builtins = make(map[string]BuiltinFunc)
	builtins["exit"] = exit
	builtins["cd"] = cd
	builtins["pwd"] = pwd
	builtins["set"] = set
	builtins["export"] = export
	builtins["unset"] = unset
	builtins["abbr"] = abbr
	builtins["history"] = history
	builtins["pbcopy"] = pbcopy
	builtins["pbpaste"] = pbpaste
}

// Lookup 查找内置命令
func Lookup(name string) (BuiltinFunc, bool) {
	fn, ok := builtins[name]
	return fn, ok
}

// IsBuiltin 判断是否为内置命令
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// Names 返回排序后的内置命令名
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ignored 记录被忽略的错误用法
func ignored(s *state.State, name string, args []string) error {
	s.Logger.Debug().Str("builtin", name).Strs("args", args).Msg("malformed invocation ignored")
	return nil
}

// exit 退出shell
func exit(s *state.State, args []string) error {
	s.Stop()
	code := s.ExitCode()
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			ignored(s, "exit", args)
		} else {
			code = n
		}
	}
	return ExitStatus(code)
}

// cd 改变目录
func cd(s *state.State, args []string) error {
	var dir string
	printDir := false
	switch {
	case len(args) == 0:
		dir = s.Getenv("HOME")
		if dir == "" {
			dir = platform.HomeDir()
		}
	case args[0] == "-":
		old, ok := s.LookupEnv("OLDPWD")
		if !ok {
			return errors.New("OLDPWD not set")
		}
		dir = old
		printDir = true
	default:
		dir = platform.ExpandHome(args[0], s.Getenv("HOME"))
	}

	old := s.Cwd()
	target := platform.Resolve(old, dir)
	if err := os.Chdir(target); err != nil {
		return fmt.Errorf("%s: %w", dir, unwrapPathError(err))
	}
	if err := s.RefreshCwd(); err != nil {
		return err
	}
	s.SetEnv("OLDPWD", old)
	s.SetEnv("PWD", s.Cwd())
	if printDir {
		fmt.Fprintln(s.Stdout, s.Cwd())
	}
	return nil
}

// pwd 打印当前工作目录
func pwd(s *state.State, args []string) error {
	fmt.Fprintln(s.Stdout, s.Cwd())
	return nil
}

// set 设置或列出变量
//
//	set               列出所有变量
//	set NAME VALUE... 设置变量，多个值用空格连接
//	set -e NAME...    删除变量
func set(s *state.State, args []string) error {
	// -g -x -gx 等作用域选项没有意义，所有变量都会导出
	for len(args) > 0 && isScopeFlag(args[0]) {
		args = args[1:]
	}
	if len(args) == 0 {
		for _, name := range s.EnvNames() {
			fmt.Fprintf(s.Stdout, "%s %s\n", name, s.Getenv(name))
		}
		return nil
	}
	if args[0] == "-e" || args[0] == "--erase" {
		if len(args) == 1 {
			return ignored(s, "set", args)
		}
		for _, name := range args[1:] {
			s.Unsetenv(name)
		}
		return nil
	}
	if !validName(args[0]) {
		return ignored(s, "set", args)
	}
	s.SetEnv(args[0], strings.Join(args[1:], " "))
	return nil
}

func isScopeFlag(arg string) bool {
	switch arg {
	case "-g", "-x", "-gx", "-xg", "-U", "-l", "--global", "--export":
		return true
	}
	return false
}

// export 导出环境变量
func export(s *state.State, args []string) error {
	if len(args) == 0 {
		for _, name := range s.EnvNames() {
			fmt.Fprintf(s.Stdout, "%s=%s\n", name, s.Getenv(name))
		}
		return nil
	}
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || !validName(name) {
			ignored(s, "export", []string{arg})
			continue
		}
		s.SetEnv(name, value)
	}
	return nil
}

// unset 取消设置环境变量
func unset(s *state.State, args []string) error {
	if len(args) == 0 {
		return ignored(s, "unset", args)
	}
	for _, name := range args {
		s.Unsetenv(name)
	}
	return nil
}

// abbr 管理缩写
//
//	abbr                      列出所有缩写
//	abbr [-a] NAME EXPANSION  添加缩写
//	abbr -e NAME              删除缩写
func abbr(s *state.State, args []string) error {
	if len(args) == 0 || args[0] == "-l" || args[0] == "--list" {
		listOnly := len(args) > 0
		for _, name := range s.Abbrs.Names() {
			if listOnly {
				fmt.Fprintln(s.Stdout, name)
				continue
			}
			expansion, _ := s.Abbrs.Get(name)
			fmt.Fprintf(s.Stdout, "abbr -a %s %s\n", quote(name), quote(expansion))
		}
		return nil
	}

	switch args[0] {
	case "-e", "--erase":
		if len(args) < 2 {
			return ignored(s, "abbr", args)
		}
		for _, name := range args[1:] {
			s.Abbrs.Remove(name)
		}
		return nil
	case "-a", "--add":
		args = args[1:]
	}
	if len(args) < 2 || strings.HasPrefix(args[0], "-") {
		return ignored(s, "abbr", args)
	}
	s.Abbrs.Add(args[0], strings.Join(args[1:], " "))
	return nil
}

// history 列出或清空历史
func history(s *state.State, args []string) error {
	if len(args) == 0 {
		s.History.Print(s.Stdout)
		return nil
	}
	switch args[0] {
	case "-c", "clear", "--clear":
		return s.History.Clear()
	}
	return ignored(s, "history", args)
}

// pbcopy 把参数写入剪贴板
func pbcopy(s *state.State, args []string) error {
	if len(args) == 0 {
		return ignored(s, "pbcopy", args)
	}
	if s.Clipboard == nil {
		return errors.New("clipboard unavailable")
	}
	return s.Clipboard.Write(strings.Join(args, " "))
}

// pbpaste 打印剪贴板内容
func pbpaste(s *state.State, args []string) error {
	if s.Clipboard == nil {
		return errors.New("clipboard unavailable")
	}
	text, err := s.Clipboard.Read()
	if err != nil {
		return err
	}
	io.WriteString(s.Stdout, text)
	if !strings.HasSuffix(text, "\n") {
		io.WriteString(s.Stdout, "\n")
	}
	return nil
}

// validName 判断是否为合法的变量名
func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > 0 && c >= '0' && c <= '9') {
			continue
		}
		return false
	}
	return true
}

// quote 需要时用单引号包起来
func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\|;&<>") {
		return s
	}
	if strings.Contains(s, "'") {
		r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
		return `"` + r.Replace(s) + `"`
	}
	return "'" + s + "'"
}

// unwrapPathError 去掉 *os.PathError 里重复的操作名和路径
func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
