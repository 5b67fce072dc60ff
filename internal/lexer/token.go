package lexer

// TokenType 表示token的类型
type TokenType int

const (
	// 基础token
	ILLEGAL TokenType = iota
	EOF

	// 单词（命令名、参数、重定向目标，可以包含引号区域）
	WORD

	// 操作符
	PIPE            // |
	REDIRECT_IN     // <
	REDIRECT_OUT    // >
	REDIRECT_APPEND // >>
	AMPERSAND       // &（后台运行）
	SEMICOLON       // ;
)

// Token 表示一个词法单元
// Literal 保留源码中的原始文本（包括引号），Start/Len 是它在输入行中的字节区间
type Token struct {
	Type    TokenType
	Literal string
	Start   int
	Len     int
}

// End 返回token结束位置（不包含）
func (t Token) End() int {
	return t.Start + t.Len
}

// IsRedirect 判断是否为重定向操作符
func (t TokenType) IsRedirect() bool {
	return t == REDIRECT_IN || t == REDIRECT_OUT || t == REDIRECT_APPEND
}

// IsOperator 判断是否为操作符token
func (t TokenType) IsOperator() bool {
	switch t {
	case PIPE, REDIRECT_IN, REDIRECT_OUT, REDIRECT_APPEND, AMPERSAND, SEMICOLON:
		return true
	}
	return false
}

// String 返回token的字符串表示
func (t TokenType) String() string {
	switch t {
	case ILLEGAL:
		return "ILLEGAL"
	case EOF:
		return "EOF"
	case WORD:
		return "WORD"
	case PIPE:
		return "PIPE"
	case REDIRECT_IN:
		return "REDIRECT_IN"
	case REDIRECT_OUT:
		return "REDIRECT_OUT"
	case REDIRECT_APPEND:
		return "REDIRECT_APPEND"
	case AMPERSAND:
		return "AMPERSAND"
	case SEMICOLON:
		return "SEMICOLON"
	default:
		return "UNKNOWN"
	}
}
