package complete

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Flag 一条从手册页抓取的选项
type Flag struct {
	Tokens      []string // 例如 -a --all
	Description string
}

// ScrapeFlags 从手册页文本中提取选项和说明
func ScrapeFlags(text string) []Flag {
	lines := strings.Split(stripOverstrike(text), "\n")
	var flags []Flag
	seen := make(map[string]bool)

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "-") {
			continue
		}
		head, desc := splitFlagLine(trimmed)
		tokens := flagTokens(head)
		if len(tokens) == 0 {
			continue
		}
		if desc == "" && i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if !strings.HasPrefix(next, "-") {
				desc = next
			}
		}
		key := strings.Join(tokens, " ")
		if seen[key] {
			continue
		}
		seen[key] = true
		flags = append(flags, Flag{Tokens: tokens, Description: cleanDescription(desc)})
	}
	return flags
}

// splitFlagLine 以第一个制表符或连续两个空格分开选项和说明
func splitFlagLine(line string) (string, string) {
	idx := -1
	if i := strings.Index(line, "  "); i >= 0 {
		idx = i
	}
	if i := strings.IndexByte(line, '\t'); i >= 0 && (idx < 0 || i < idx) {
		idx = i
	}
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx:])
}

func flagTokens(head string) []string {
	var tokens []string
	for _, f := range strings.FieldsFunc(head, func(r rune) bool { return r == ',' || r == ' ' }) {
		if !strings.HasPrefix(f, "-") || f == "-" || f == "--" {
			continue
		}
		if i := strings.IndexAny(f, "=["); i > 0 {
			f = f[:i]
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// stripOverstrike 去掉 nroff 的退格加粗/下划线
func stripOverstrike(s string) string {
	if !strings.ContainsRune(s, '\b') {
		return s
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\b' {
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

func cleanDescription(s string) string {
	return strings.ReplaceAll(strings.Join(strings.Fields(s), " "), "|", "/")
}

// formatFlags 生成缓存文件内容，每行 "选项|说明"
func formatFlags(flags []Flag) string {
	var b strings.Builder
	for _, f := range flags {
		fmt.Fprintf(&b, "%s|%s\n", strings.Join(f.Tokens, " "), f.Description)
	}
	return b.String()
}

func parseFlags(data string) []Flag {
	var flags []Flag
	sc := bufio.NewScanner(strings.NewReader(data))
	for sc.Scan() {
		head, desc, _ := strings.Cut(sc.Text(), "|")
		tokens := strings.Fields(head)
		if len(tokens) == 0 {
			continue
		}
		flags = append(flags, Flag{Tokens: tokens, Description: desc})
	}
	return flags
}

// cacheFile 返回命令对应的缓存文件路径
func cacheFile(dir, command string) string {
	return filepath.Join(dir, filepath.Base(command))
}

func readFlagCache(dir, command string) ([]Flag, bool) {
	data, err := os.ReadFile(cacheFile(dir, command))
	if err != nil {
		return nil, false
	}
	return parseFlags(string(data)), true
}

func writeFlagCache(dir, command string, flags []Flag) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(cacheFile(dir, command), []byte(formatFlags(flags)), 0o644)
}
