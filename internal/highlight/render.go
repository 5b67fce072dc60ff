package highlight

import "strings"

// SGR 序列
const (
	sgrReset = "\x1b[0m"
	sgrDim   = "\x1b[90m"
)

var classSGR = map[Class]string{
	ClassCommand:      "\x1b[34m",
	ClassErrorCommand: "\x1b[31m",
	ClassArgument:     "\x1b[36m",
	ClassOption:       "\x1b[36m",
	ClassOperator:     "\x1b[32m",
	ClassRedirect:     "\x1b[35m",
	ClassQuoted:       "\x1b[33m",
	ClassError:        "\x1b[31;4m",
}

// Render 按着色区间给命令行加上 SGR 序列
func Render(line string, spans []Span) string {
	var b strings.Builder
	pos := 0
	for _, s := range spans {
		if s.Start < pos || s.End > len(line) || s.Start >= s.End {
			continue
		}
		b.WriteString(line[pos:s.Start])
		code, ok := classSGR[s.Class]
		if !ok {
			b.WriteString(line[s.Start:s.End])
		} else {
			b.WriteString(code)
			b.WriteString(line[s.Start:s.End])
			b.WriteString(sgrReset)
		}
		pos = s.End
	}
	b.WriteString(line[pos:])
	return b.String()
}

// Dim 用暗色显示（自动建议）
func Dim(s string) string {
	if s == "" {
		return ""
	}
	return sgrDim + s + sgrReset
}
