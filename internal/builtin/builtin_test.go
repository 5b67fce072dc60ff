package builtin

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gofish/internal/state"
)

func newState(t *testing.T) (*state.State, *bytes.Buffer) {
	t.Helper()
	s := state.New(nil)
	out := &bytes.Buffer{}
	s.Stdout = out
	s.Stderr = out
	return s, out
}

func run(t *testing.T, s *state.State, name string, args ...string) error {
	t.Helper()
	fn, ok := Lookup(name)
	if !ok {
		t.Fatalf("内置命令 %s 不存在", name)
	}
	return fn(s, args)
}

func realpath(t *testing.T, p string) string {
	t.Helper()
	r, err := filepath.EvalSymlinks(p)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(dir) {
		if dir, err = os.Getwd(); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			panic("testing.Chdir: " + err.Error())
		}
	})
}

func TestNames(t *testing.T) {
	want := []string{"abbr", "cd", "exit", "export", "history", "pbcopy", "pbpaste", "pwd", "set", "unset"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("内置命令表不符 (-want +got):\n%s", diff)
	}
	if IsBuiltin("ls") {
		t.Error("ls 不是内置命令")
	}
}

func TestExit(t *testing.T) {
	tests := []struct {
		args []string
		want int
	}{
		{nil, 3},
		{[]string{"0"}, 0},
		{[]string{"42"}, 42},
		{[]string{"abc"}, 3},
	}
	for _, tt := range tests {
		s, _ := newState(t)
		s.SetExitCode(3)
		err := run(t, s, "exit", tt.args...)
		var status ExitStatus
		if !errors.As(err, &status) || int(status) != tt.want {
			t.Errorf("exit %v 返回 %v, 期望退出码 %d", tt.args, err, tt.want)
		}
		if s.Running() {
			t.Errorf("exit %v 后不应继续运行", tt.args)
		}
	}
}

func TestCd(t *testing.T) {
	home := realpath(t, t.TempDir())
	start := realpath(t, t.TempDir())
	if err := os.Mkdir(filepath.Join(home, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	chdir(t, start)

	s, out := newState(t)
	s.SetEnv("HOME", home)

	if err := run(t, s, "cd"); err != nil {
		t.Fatalf("cd 失败: %v", err)
	}
	if s.Cwd() != home || s.Getenv("PWD") != home || s.Getenv("OLDPWD") != start {
		t.Errorf("cd 后 cwd=%q PWD=%q OLDPWD=%q", s.Cwd(), s.Getenv("PWD"), s.Getenv("OLDPWD"))
	}

	if err := run(t, s, "cd", "~/src"); err != nil {
		t.Fatalf("cd ~/src 失败: %v", err)
	}
	if want := filepath.Join(home, "src"); s.Cwd() != want {
		t.Errorf("cd ~/src 后 cwd=%q, 期望 %q", s.Cwd(), want)
	}

	if err := run(t, s, "cd", ".."); err != nil {
		t.Fatalf("cd .. 失败: %v", err)
	}
	if s.Cwd() != home {
		t.Errorf("cd .. 后 cwd=%q, 期望 %q", s.Cwd(), home)
	}

	out.Reset()
	if err := run(t, s, "cd", "-"); err != nil {
		t.Fatalf("cd - 失败: %v", err)
	}
	if want := filepath.Join(home, "src"); s.Cwd() != want || out.String() != want+"\n" {
		t.Errorf("cd - 后 cwd=%q 输出=%q", s.Cwd(), out.String())
	}

	if err := run(t, s, "cd", "nosuchdir"); err == nil {
		t.Error("cd 到不存在的目录应返回错误")
	}
}

func TestPwd(t *testing.T) {
	s, out := newState(t)
	if err := run(t, s, "pwd"); err != nil {
		t.Fatalf("pwd 失败: %v", err)
	}
	if out.String() != s.Cwd()+"\n" {
		t.Errorf("pwd 输出 %q", out.String())
	}
}

func TestSetExportUnset(t *testing.T) {
	s, out := newState(t)

	run(t, s, "set", "GREETING", "hello", "world")
	if got := s.Getenv("GREETING"); got != "hello world" {
		t.Errorf("set 后 GREETING = %q", got)
	}
	run(t, s, "set", "-gx", "SCOPED", "1")
	if got := s.Getenv("SCOPED"); got != "1" {
		t.Errorf("set -gx 后 SCOPED = %q", got)
	}
	run(t, s, "set", "-e", "SCOPED")
	if _, ok := s.LookupEnv("SCOPED"); ok {
		t.Error("set -e 后 SCOPED 不应存在")
	}

	run(t, s, "export", "A=1", "BROKEN", "B=x=y")
	if s.Getenv("A") != "1" || s.Getenv("B") != "x=y" {
		t.Errorf("export 后 A=%q B=%q", s.Getenv("A"), s.Getenv("B"))
	}
	if _, ok := s.LookupEnv("BROKEN"); ok {
		t.Error("没有 = 的参数应被忽略")
	}

	run(t, s, "unset", "A", "B")
	if _, ok := s.LookupEnv("A"); ok {
		t.Error("unset 后 A 不应存在")
	}

	// 错误用法静默忽略
	out.Reset()
	for _, args := range [][]string{{"set", "1BAD", "x"}, {"unset"}, {"set", "-e"}} {
		if err := run(t, s, args[0], args[1:]...); err != nil {
			t.Errorf("%v 应被忽略，返回 %v", args, err)
		}
	}
	if out.Len() != 0 {
		t.Errorf("错误用法不应有输出，得到 %q", out.String())
	}
}

func TestSetList(t *testing.T) {
	s, out := newState(t)
	for _, name := range s.EnvNames() {
		s.Unsetenv(name)
	}
	s.SetEnv("B", "2")
	s.SetEnv("A", "1")

	run(t, s, "set")
	if out.String() != "A 1\nB 2\n" {
		t.Errorf("set 输出 %q", out.String())
	}
	out.Reset()
	run(t, s, "export")
	if out.String() != "A=1\nB=2\n" {
		t.Errorf("export 输出 %q", out.String())
	}
}

func TestAbbr(t *testing.T) {
	s, out := newState(t)

	run(t, s, "abbr", "-a", "gc", "git", "commit")
	run(t, s, "abbr", "l", "ls")
	run(t, s, "abbr", "q", "echo 'hi'")
	if got, _ := s.Abbrs.Get("gc"); got != "git commit" {
		t.Errorf("gc = %q", got)
	}

	run(t, s, "abbr")
	want := "abbr -a gc 'git commit'\nabbr -a l ls\nabbr -a q \"echo 'hi'\"\n"
	if out.String() != want {
		t.Errorf("abbr 输出 %q, 期望 %q", out.String(), want)
	}

	out.Reset()
	run(t, s, "abbr", "--list")
	if out.String() != "gc\nl\nq\n" {
		t.Errorf("abbr --list 输出 %q", out.String())
	}

	run(t, s, "abbr", "-e", "l")
	if _, ok := s.Abbrs.Get("l"); ok {
		t.Error("abbr -e 后 l 不应存在")
	}

	if err := run(t, s, "abbr", "-a", "lonely"); err != nil || s.Abbrs.Len() != 2 {
		t.Errorf("缺少展开内容应被忽略: err=%v len=%d", err, s.Abbrs.Len())
	}
}

func TestHistory(t *testing.T) {
	s, out := newState(t)
	s.History.Add("ls")
	s.History.Add("pwd")

	run(t, s, "history")
	if out.String() != "    1  ls\n    2  pwd\n" {
		t.Errorf("history 输出 %q", out.String())
	}
	run(t, s, "history", "-c")
	if s.History.Len() != 0 {
		t.Errorf("history -c 后应为空，实际 %d 条", s.History.Len())
	}
}

type memClipboard struct {
	text string
}

func (c *memClipboard) Write(text string) error { c.text = text; return nil }
func (c *memClipboard) Read() (string, error) { return c.text, nil }

func TestClipboard(t *testing.T) {
	s, out := newState(t)
	if err := run(t, s, "pbpaste"); err == nil {
		t.Error("没有剪贴板时 pbpaste 应返回错误")
	}

	clip := &memClipboard{}
	s.Clipboard = clip
	run(t, s, "pbcopy", "hello", "world")
	if clip.text != "hello world" {
		t.Errorf("剪贴板内容 %q", clip.text)
	}
	out.Reset()
	run(t, s, "pbpaste")
	if out.String() != "hello world\n" {
		t.Errorf("pbpaste 输出 %q", out.String())
	}
}
