package platform

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoClipboard 找不到剪贴板工具
var ErrNoClipboard = errors.New("no clipboard utility found")

// SystemClipboard 通过系统工具读写剪贴板
type SystemClipboard struct{}

type clipboardTool struct {
	copy  []string
	paste []string
}

func clipboardTools() []clipboardTool {
	switch runtime.GOOS {
	case "darwin":
		return []clipboardTool{{copy: []string{"pbcopy"}, paste: []string{"pbpaste"}}}
	case "windows":
		return []clipboardTool{{
			copy:  []string{"clip"},
			paste: []string{"powershell", "-NoProfile", "-Command", "Get-Clipboard"},
		}}
	}
	var tools []clipboardTool
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		tools = append(tools, clipboardTool{copy: []string{"wl-copy"}, paste: []string{"wl-paste", "--no-newline"}})
	}
	return append(tools,
		clipboardTool{copy: []string{"xclip", "-selection", "clipboard"}, paste: []string{"xclip", "-selection", "clipboard", "-o"}},
		clipboardTool{copy: []string{"xsel", "--clipboard", "--input"}, paste: []string{"xsel", "--clipboard", "--output"}},
	)
}

func findTool(pick func(clipboardTool) []string) ([]string, error) {
	for _, t := range clipboardTools() {
		argv := pick(t)
		if _, err := exec.LookPath(argv[0]); err == nil {
			return argv, nil
		}
	}
	return nil, ErrNoClipboard
}

// Write 写入剪贴板
func (SystemClipboard) Write(text string) error {
	argv, err := findTool(func(t clipboardTool) []string { return t.copy })
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// Read 读取剪贴板
func (SystemClipboard) Read() (string, error) {
	argv, err := findTool(func(t clipboardTool) []string { return t.paste })
	if err != nil {
		return "", err
	}
	out, err := exec.Command(argv[0], argv[1:]...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
