// Package lexer 提供词法分析功能，将输入行分解为token序列
package lexer

import (
	"strings"
)

// Lexer 词法分析器
// 单遍从左到右扫描，除当前字符外只向前看一个字符（用于识别 >>）
type Lexer struct {
	input        string
	position     int  // 当前位置
	readPosition int  // 读取位置
	ch           byte // 当前字符
	errors       []*LexerError
}

// New 创建新的词法分析器
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar 读取下一个字符
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// peekChar 查看下一个字符但不移动位置
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// eof 是否已经读完输入
func (l *Lexer) eof() bool {
	return l.position >= len(l.input)
}

// NextToken 读取下一个token
// 遇到未闭合的引号时记录错误并返回 ILLEGAL，之后一直返回 EOF
func (l *Lexer) NextToken() Token {
	if len(l.errors) > 0 {
		return Token{Type: EOF, Start: len(l.input)}
	}

	l.skipWhitespace()

	if l.eof() {
		return Token{Type: EOF, Start: len(l.input)}
	}

	start := l.position
	var tok Token

	switch l.ch {
	case '|':
		tok = l.newToken(PIPE, start, 1)
	case ';':
		tok = l.newToken(SEMICOLON, start, 1)
	case '&':
		tok = l.newToken(AMPERSAND, start, 1)
	case '<':
		tok = l.newToken(REDIRECT_IN, start, 1)
	case '>':
		if l.peekChar() == '>' {
			tok = l.newToken(REDIRECT_APPEND, start, 2)
			l.readChar()
		} else {
			tok = l.newToken(REDIRECT_OUT, start, 1)
		}
	default:
		return l.readWord()
	}

	l.readChar()
	return tok
}

// Errors 返回词法错误
func (l *Lexer) Errors() []*LexerError {
	return l.errors
}

// Tokenize 把整行分解为token（不包含EOF）
// 出现未闭合引号时整行作废，返回 nil 和错误
func Tokenize(input string) ([]Token, error) {
	l := New(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	if len(l.errors) > 0 {
		return nil, l.errors[0]
	}
	return tokens, nil
}

// newToken 创建操作符token
func (l *Lexer) newToken(tokenType TokenType, start, length int) Token {
	return Token{
		Type:    tokenType,
		Literal: l.input[start : start+length],
		Start:   start,
		Len:     length,
	}
}

// readWord 读取一个单词
// 引号区域内的空白和操作符不起分隔作用；单引号内反斜杠不是转义
func (l *Lexer) readWord() Token {
	start := l.position
	for !l.eof() && !isWhitespace(l.ch) && !isOperator(l.ch) {
		switch l.ch {
		case '\\':
			l.readChar() // 跳过反斜杠
			if !l.eof() {
				l.readChar()
			}
		case '\'', '"':
			if !l.skipQuoted(l.ch) {
				return Token{Type: ILLEGAL, Literal: l.input[start:], Start: start, Len: len(l.input) - start}
			}
		default:
			l.readChar()
		}
	}
	return Token{
		Type:    WORD,
		Literal: l.input[start:l.position],
		Start:   start,
		Len:     l.position - start,
	}
}

// skipQuoted 跳过一个引号区域，当前字符是开始引号
// 未找到结束引号时记录错误并返回 false
func (l *Lexer) skipQuoted(quote byte) bool {
	open := l.position
	l.readChar() // 跳过开始的引号
	for !l.eof() && l.ch != quote {
		if quote == '"' && l.ch == '\\' {
			// 双引号内允许转义
			l.readChar()
			if l.eof() {
				break
			}
		}
		l.readChar()
	}
	if l.eof() {
		l.errors = append(l.errors, &LexerError{
			Type:   LexerErrorTypeUnclosedQuote,
			Offset: open,
			Quote:  quote,
		})
		return false
	}
	l.readChar() // 跳过结束引号
	return true
}

// skipWhitespace 跳过空白字符
func (l *Lexer) skipWhitespace() {
	for !l.eof() && isWhitespace(l.ch) {
		l.readChar()
	}
}

// Unquote 去掉单词中的引号并解析转义，得到运行时的字面字符串
// 规则与 readWord 一致：单引号内原样保留，双引号内和引号外反斜杠转义下一个字符，
// 末尾孤立的反斜杠按字面处理
func Unquote(word string) string {
	if !strings.ContainsAny(word, `'"\`) {
		return word
	}
	var b strings.Builder
	b.Grow(len(word))
	var quote byte
	for i := 0; i < len(word); i++ {
		ch := word[i]
		switch {
		case quote == '\'':
			if ch == '\'' {
				quote = 0
			} else {
				b.WriteByte(ch)
			}
		case quote == '"':
			if ch == '"' {
				quote = 0
			} else if ch == '\\' && i+1 < len(word) {
				i++
				b.WriteByte(word[i])
			} else {
				b.WriteByte(ch)
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == '\\':
			if i+1 < len(word) {
				i++
				b.WriteByte(word[i])
			} else {
				b.WriteByte(ch)
			}
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// isWhitespace 判断是否为空白字符
func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// isOperator 判断是否为单字符操作符
func isOperator(ch byte) bool {
	return ch == '|' || ch == ';' || ch == '&' || ch == '<' || ch == '>'
}
