package parser

import (
	"fmt"
	"gofish/internal/lexer"
)

// ParseError 表示可恢复的解析诊断
// 出错的片段被丢弃，其余管道照常执行
type ParseError struct {
	Type     ErrorType
	Message  string
	Token    lexer.Token
	Expected string // 期望的 token 类型或值
}

// ErrorType 错误类型
type ErrorType int

const (
	ErrorTypeUnexpectedToken        ErrorType = iota // 管道不能从这个 token 开始（如多余的 |）
	ErrorTypeEmptyCommand                            // 只有重定向没有单词的命令
	ErrorTypeMissingRedirectTarget                   // 重定向后面没有文件名
	ErrorTypeMissingCommand                          // | 后面没有命令
)

// Error 实现 error 接口
func (e *ParseError) Error() string {
	got := e.Token.Literal
	if e.Token.Type == lexer.EOF {
		got = "end of line"
	}
	if e.Expected != "" {
		return fmt.Sprintf("column %d: %s, expected %s, got %s",
			e.Token.Start+1, e.Message, e.Expected, got)
	}
	return fmt.Sprintf("column %d: %s, got %s", e.Token.Start+1, e.Message, got)
}

// String 返回错误的字符串表示
func (e *ParseError) String() string {
	return e.Error()
}

// addError 添加解析错误
func (p *Parser) addError(errType ErrorType, message string, token lexer.Token, expected string) {
	err := &ParseError{
		Type:     errType,
		Message:  message,
		Token:    token,
		Expected: expected,
	}
	p.errors = append(p.errors, err.Error())
	p.parseErrors = append(p.parseErrors, err)
}
