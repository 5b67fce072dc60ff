package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// HomeDir 返回用户主目录
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if home := os.Getenv("USERPROFILE"); home != "" {
		return home
	}
	home, _ := os.UserHomeDir()
	return home
}

// ExpandHome 展开路径开头的 ~（只处理 ~ 和 ~/ 形式）
func ExpandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(home, path[2:])
	}
	return path
}

// NormalizePath 规范化路径，处理Windows和Unix路径差异
func NormalizePath(path string) string {
	// Windows 下统一成正斜杠，Unix 下反斜杠可能是文件名的一部分
	if runtime.GOOS == "windows" {
		path = strings.ReplaceAll(path, "\\", "/")
	}
	return filepath.Clean(ExpandHome(path, HomeDir()))
}

// IsAbsolute 判断是否为绝对路径
func IsAbsolute(path string) bool {
	return filepath.IsAbs(path)
}

// Resolve 把相对路径拼接到 dir 下
func Resolve(dir, path string) string {
	path = NormalizePath(path)
	if IsAbsolute(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

// IsPathSeparator 判断字符是否为路径分隔符
func IsPathSeparator(c byte) bool {
	return c == '/' || (runtime.GOOS == "windows" && c == '\\')
}

// ContainsPathSeparator 判断字符串中是否包含路径分隔符
func ContainsPathSeparator(s string) bool {
	for i := 0; i < len(s); i++ {
		if IsPathSeparator(s[i]) {
			return true
		}
	}
	return false
}
