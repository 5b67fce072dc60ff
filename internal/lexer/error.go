package lexer

import (
	"fmt"
)

// LexerErrorType 词法分析器错误类型
type LexerErrorType int

const (
	LexerErrorTypeUnclosedQuote LexerErrorType = iota // 未闭合的引号
)

// LexerError 表示词法分析器错误
type LexerError struct {
	Type    LexerErrorType
	Message string
	Offset  int  // 出错位置（字节偏移）
	Quote   byte // 未闭合的引号字符
}

// Error 实现 error 接口
func (e *LexerError) Error() string {
	switch e.Type {
	case LexerErrorTypeUnclosedQuote:
		return fmt.Sprintf("column %d: unclosed quote `%c'", e.Offset+1, e.Quote)
	default:
		return fmt.Sprintf("column %d: %s", e.Offset+1, e.Message)
	}
}

// String 返回错误的字符串表示
func (e *LexerError) String() string {
	return e.Error()
}

// IsUnclosedQuote 判断错误是否为未闭合引号
// 高亮器用它把整行标记为错误
func IsUnclosedQuote(err error) bool {
	le, ok := err.(*LexerError)
	return ok && le.Type == LexerErrorTypeUnclosedQuote
}
