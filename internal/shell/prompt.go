package shell

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"gofish/internal/builtin"
	"gofish/pkg/platform"
)

// prompt 带颜色的提示符，形如 user@host ~/src [1]>
func (s *Shell) prompt() string {
	return formatPrompt(currentUser(), hostname(), s.state.Cwd(), s.state.Getenv("HOME"), s.state.ExitCode(), true)
}

// plainPrompt 不带颜色的提示符
func (s *Shell) plainPrompt() string {
	return formatPrompt(currentUser(), hostname(), s.state.Cwd(), s.state.Getenv("HOME"), s.state.ExitCode(), false)
}

func formatPrompt(username, host, cwd, home string, status int, color bool) string {
	dir := shortenHome(cwd, home)
	var b strings.Builder
	if color {
		fmt.Fprintf(&b, "%s@%s \x1b[32m%s\x1b[0m", username, host, dir)
	} else {
		fmt.Fprintf(&b, "%s@%s %s", username, host, dir)
	}
	if status != 0 {
		if color {
			fmt.Fprintf(&b, " \x1b[31m[%d]\x1b[0m", status)
		} else {
			fmt.Fprintf(&b, " [%d]", status)
		}
	}
	b.WriteString("> ")
	return b.String()
}

// shortenHome 把主目录前缀替换成 ~
func shortenHome(cwd, home string) string {
	if home == "" {
		return cwd
	}
	home = filepath.Clean(home)
	if cwd == home {
		return "~"
	}
	if rel, ok := strings.CutPrefix(cwd, home+string(filepath.Separator)); ok {
		return "~/" + filepath.ToSlash(rel)
	}
	return cwd
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

func hostname() string {
	host, err := os.Hostname()
	if err != nil {
		return "localhost"
	}
	if i := strings.IndexByte(host, '.'); i > 0 {
		host = host[:i]
	}
	return host
}

// commandExists 判断命令名能否执行，高亮器据此区分颜色
// 查找方式与执行器一致，带后缀的文件也算
func (s *Shell) commandExists(name string) bool {
	if builtin.IsBuiltin(name) {
		return true
	}
	path, cwd := s.state.Getenv("PATH"), s.state.Cwd()
	name = platform.ExpandHome(name, s.state.Getenv("HOME"))
	if _, ok := platform.LookPath(name, path, cwd); ok {
		return true
	}
	for _, sfx := range platform.ExecSuffixes() {
		look := platform.LookPath
		if sfx.Script {
			look = platform.LookScript
		}
		if _, ok := look(name+sfx.Suffix, path, cwd); ok {
			return true
		}
	}
	return false
}
