package shell

import (
	"errors"
	"fmt"
	"io"

	"gofish/internal/executor"
	"gofish/internal/lexer"
	"gofish/internal/parser"
)

// ErrorReporter 错误报告器
type ErrorReporter struct {
	w             io.Writer
	scriptPath    string // 脚本文件路径（如果是在执行脚本）
	lineNum       int    // 当前行号
	isInteractive bool
}

// NewErrorReporter 创建新的错误报告器
func NewErrorReporter(w io.Writer, scriptPath string, isInteractive bool) *ErrorReporter {
	return &ErrorReporter{
		w:             w,
		scriptPath:    scriptPath,
		isInteractive: isInteractive,
	}
}

// SetLineNum 设置当前行号
func (er *ErrorReporter) SetLineNum(lineNum int) {
	er.lineNum = lineNum
}

// ReportError 报告错误
// 解析诊断按警告输出，其余按错误输出
func (er *ErrorReporter) ReportError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(er.w, er.Format(err))
}

// Format 返回带前缀的错误消息
func (er *ErrorReporter) Format(err error) string {
	var (
		execErr  *executor.ExecutionError
		parseErr *parser.ParseError
		lexErr   *lexer.LexerError
	)
	switch {
	case errors.As(err, &execErr):
		return fmt.Sprintf("%s: %s", er.prefix(), execErr.Error())
	case errors.As(err, &parseErr):
		return fmt.Sprintf("%s: warning: %s", er.prefix(), parseErr.Error())
	case errors.As(err, &lexErr):
		return fmt.Sprintf("%s: syntax error: %s", er.prefix(), lexErr.Error())
	default:
		return fmt.Sprintf("%s: %v", er.prefix(), err)
	}
}

// prefix 交互模式下只有程序名，脚本中带上文件名和行号
func (er *ErrorReporter) prefix() string {
	switch {
	case er.scriptPath != "" && er.lineNum > 0:
		return fmt.Sprintf("gofish: %s: line %d", er.scriptPath, er.lineNum)
	case er.scriptPath != "":
		return fmt.Sprintf("gofish: %s", er.scriptPath)
	case !er.isInteractive && er.lineNum > 0:
		return fmt.Sprintf("gofish: line %d", er.lineNum)
	default:
		return "gofish"
	}
}
