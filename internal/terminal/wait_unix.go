//go:build unix

package terminal

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

// WaitForInput 等待文件描述符可读，最多等待 timeout
func WaitForInput(fd int, timeout time.Duration) (Readiness, error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout/time.Millisecond))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return Timeout, nil
		}
		return Timeout, err
	}
	if n == 0 {
		return Timeout, nil
	}
	if fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
		return Ready, nil
	}
	return Timeout, nil
}
