package complete

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"os/exec"
	"time"
)

// DirReader 列目录
type DirReader interface {
	ReadDir(dir string) ([]fs.DirEntry, error)
}

// OSDirReader 读取真实文件系统
type OSDirReader struct{}

// ReadDir 实现 DirReader
func (OSDirReader) ReadDir(dir string) ([]fs.DirEntry, error) {
	return os.ReadDir(dir)
}

// ManReader 读取命令的手册页文本
type ManReader interface {
	ReadMan(command string) (string, error)
}

// ManPageReader 调用系统 man 命令
type ManPageReader struct {
	Timeout time.Duration
}

// ReadMan 实现 ManReader
func (r ManPageReader) ReadMan(command string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "man", command)
	cmd.Env = append(os.Environ(), "MANPAGER=cat", "PAGER=cat", "MANWIDTH=200")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return out.String(), nil
}
