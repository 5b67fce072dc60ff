//go:build !unix

package terminal

import "time"

// WaitForInput 没有 poll 的平台上总是返回就绪，由随后的读取阻塞
func WaitForInput(fd int, timeout time.Duration) (Readiness, error) {
	return Ready, nil
}
