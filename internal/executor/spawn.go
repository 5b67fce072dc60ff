package executor

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"sort"
	"syscall"

	"gofish/pkg/platform"
)

// Spawner 启动外部程序并等待结束，返回退出码
// 返回 ExitCodeNotFound 表示找不到或无法执行
type Spawner interface {
	Spawn(argv []string, env map[string]string) int
}

// ProcessSpawner 用 os/exec 启动子进程，继承标准输入输出
type ProcessSpawner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Spawn 实现 Spawner
// 程序按 env 中的 PATH 查找，而不是当前进程的 PATH
func (p *ProcessSpawner) Spawn(argv []string, env map[string]string) int {
	if len(argv) == 0 {
		return 0
	}
	path, ok := platform.LookPath(argv[0], searchPath(env), "")
	if !ok {
		return ExitCodeNotFound
	}
	cmd := exec.Command(path, argv[1:]...)
	cmd.Args[0] = argv[0]
	cmd.Env = envArray(env)
	cmd.Stdin = p.Stdin
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr
	return exitCode(cmd.Run())
}

// searchPath env 中没有 PATH 时退回到当前进程的 PATH
func searchPath(env map[string]string) string {
	if path, ok := env["PATH"]; ok {
		return path
	}
	return os.Getenv("PATH")
}

// exitCode 把 exec 的错误转换成退出码
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return 128 + int(ws.Signal())
		}
		return exitErr.ExitCode()
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return ExitCodeNotFound
	}
	if errors.Is(err, fs.ErrPermission) {
		return 126
	}
	return 1
}

// envArray 生成 KEY=VALUE 列表，按键排序
func envArray(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
