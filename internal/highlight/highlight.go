// Package highlight 根据词法分析结果给命令行着色
package highlight

import (
	"strings"

	"gofish/internal/lexer"
)

// Class 着色类别
type Class int

const (
	ClassPlain Class = iota
	ClassCommand
	ClassErrorCommand // 既不是内置命令也不在 PATH 中
	ClassArgument
	ClassOption
	ClassOperator
	ClassRedirect
	ClassQuoted
	ClassError
)

var classNames = map[Class]string{
	ClassPlain:        "plain",
	ClassCommand:      "command",
	ClassErrorCommand: "error-command",
	ClassArgument:     "argument",
	ClassOption:       "option",
	ClassOperator:     "operator",
	ClassRedirect:     "redirect",
	ClassQuoted:       "quoted",
	ClassError:        "error",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "unknown"
}

// Span 一段着色区间 [Start, End)
type Span struct {
	Start int
	End   int
	Class Class
}

// Lookup 判断命令名是否可以执行
type Lookup func(name string) bool

// Highlight 计算命令行的着色区间
// 有未闭合的引号时整行标为错误
func Highlight(line string, valid Lookup) []Span {
	if line == "" {
		return nil
	}

	l := lexer.New(line)
	var spans []Span
	commandPos := true
	redirectTarget := false

	for {
		tok := l.NextToken()
		if tok.Type == lexer.EOF {
			break
		}
		span := Span{Start: tok.Start, End: tok.End()}

		switch {
		case tok.Type == lexer.ILLEGAL:
			span.Class = ClassError
		case tok.Type.IsRedirect():
			span.Class = ClassRedirect
			redirectTarget = true
		case tok.Type.IsOperator():
			span.Class = ClassOperator
			commandPos = true
			redirectTarget = false
		case redirectTarget:
			span.Class = ClassRedirect
			redirectTarget = false
		case commandPos:
			if valid != nil && valid(lexer.Unquote(tok.Literal)) {
				span.Class = ClassCommand
			} else {
				span.Class = ClassErrorCommand
			}
			commandPos = false
		case strings.HasPrefix(tok.Literal, "-"):
			span.Class = ClassOption
		case strings.ContainsAny(tok.Literal, `'"`):
			span.Class = ClassQuoted
		default:
			span.Class = ClassArgument
		}
		spans = append(spans, span)
	}

	for _, err := range l.Errors() {
		if lexer.IsUnclosedQuote(err) {
			return []Span{{Start: 0, End: len(line), Class: ClassError}}
		}
	}
	return spans
}
