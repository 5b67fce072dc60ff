// Package terminal 负责原始模式切换、窗口大小和输入就绪等待
package terminal

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Terminal 一个终端文件描述符
type Terminal struct {
	fd int

	mu    sync.Mutex
	saved *term.State
}

// New 包装文件描述符
func New(fd int) *Terminal {
	return &Terminal{fd: fd}
}

// Fd 返回文件描述符
func (t *Terminal) Fd() int {
	return t.fd
}

// IsTerminal 判断文件描述符是否连接到终端
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// EnableRawMode 切换到原始模式，已经是原始模式时什么也不做
func (t *Terminal) EnableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.saved != nil {
		return nil
	}
	st, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	t.saved = st
	return nil
}

// DisableRawMode 恢复进入原始模式前的设置
func (t *Terminal) DisableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.saved == nil {
		return nil
	}
	err := term.Restore(t.fd, t.saved)
	t.saved = nil
	if err != nil {
		return fmt.Errorf("disable raw mode: %w", err)
	}
	return nil
}

// IsRaw 是否处于原始模式
func (t *Terminal) IsRaw() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saved != nil
}

// Size 返回终端的列数和行数
func (t *Terminal) Size() (width, height int, err error) {
	return term.GetSize(t.fd)
}

// Width 返回列数，取不到时返回 80
func (t *Terminal) Width() int {
	w, _, err := t.Size()
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// RestoreOnSignal 收到退出信号时恢复终端设置再退出
// 返回的函数取消监听
func (t *Terminal) RestoreOnSignal() (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
	done := make(chan struct{})
	go func() {
		select {
		case sig := <-ch:
			t.DisableRawMode()
			code := 1
			if s, ok := sig.(syscall.Signal); ok {
				code = 128 + int(s)
			}
			os.Exit(code)
		case <-done:
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}
