package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ExecSuffix 找不到命令时依次尝试追加的后缀
type ExecSuffix struct {
	Suffix string
	Script bool // 需要通过解释器运行
}

// ExecSuffixes 返回当前平台的可执行后缀
func ExecSuffixes() []ExecSuffix {
	return execSuffixes(runtime.GOOS)
}

func execSuffixes(goos string) []ExecSuffix {
	if goos == "windows" {
		return []ExecSuffix{
			{Suffix: ".exe"},
			{Suffix: ".com"},
			{Suffix: ".bat", Script: true},
			{Suffix: ".cmd", Script: true},
		}
	}
	return []ExecSuffix{{Suffix: ".sh", Script: true}}
}

// ScriptArgv 返回通过解释器运行脚本的参数列表
func ScriptArgv(script string, args []string) []string {
	return scriptArgv(runtime.GOOS, script, args)
}

func scriptArgv(goos, script string, args []string) []string {
	var argv []string
	if goos == "windows" {
		argv = []string{"cmd", "/c", script}
	} else {
		argv = []string{"sh", script}
	}
	return append(argv, args...)
}

// TrimExecSuffix 去掉可执行后缀（补全时显示用）
func TrimExecSuffix(name string) string {
	if runtime.GOOS != "windows" {
		return name
	}
	lower := strings.ToLower(name)
	for _, s := range execSuffixes("windows") {
		if strings.HasSuffix(lower, s.Suffix) {
			return name[:len(name)-len(s.Suffix)]
		}
	}
	return name
}

// IsExecutable 判断目录项是否为可执行文件
func IsExecutable(info os.FileInfo) bool {
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		ext := strings.ToLower(filepath.Ext(info.Name()))
		for _, s := range execSuffixes("windows") {
			if ext == s.Suffix {
				return true
			}
		}
		return false
	}
	return info.Mode()&0o111 != 0
}

// SplitPathList 拆分 PATH 环境变量
func SplitPathList(path string) []string {
	var dirs []string
	for _, dir := range filepath.SplitList(path) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// LookPath 在 path（PATH 格式）中查找可执行文件
// name 含路径分隔符时相对 dir 解析，不搜索 path
func LookPath(name, path, dir string) (string, bool) {
	return lookup(name, path, dir, IsExecutable)
}

// LookScript 查找通过解释器运行的脚本，只要求是普通文件
func LookScript(name, path, dir string) (string, bool) {
	return lookup(name, path, dir, func(info os.FileInfo) bool {
		return info.Mode().IsRegular()
	})
}

func lookup(name, path, dir string, ok func(os.FileInfo) bool) (string, bool) {
	if name == "" {
		return "", false
	}
	if ContainsPathSeparator(name) {
		return check(Resolve(dir, name), ok)
	}
	for _, d := range SplitPathList(path) {
		if !IsAbsolute(d) {
			d = Resolve(dir, d)
		}
		if p, found := check(filepath.Join(d, name), ok); found {
			return p, true
		}
	}
	return "", false
}

// check 在 Windows 上没有扩展名时依次尝试 .exe 和 .com
func check(p string, ok func(os.FileInfo) bool) (string, bool) {
	candidates := []string{p}
	if runtime.GOOS == "windows" && filepath.Ext(p) == "" {
		for _, s := range execSuffixes("windows") {
			if !s.Script {
				candidates = append(candidates, p+s.Suffix)
			}
		}
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && ok(info) {
			return c, true
		}
	}
	return "", false
}
