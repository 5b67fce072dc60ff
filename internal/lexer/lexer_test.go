package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNextToken(t *testing.T) {
	tests := []struct {
		input    string
		expected []Token
	}{
		{
			input: "ls -la | grep foo > out.txt &",
			expected: []Token{
				{Type: WORD, Literal: "ls", Start: 0, Len: 2},
				{Type: WORD, Literal: "-la", Start: 3, Len: 3},
				{Type: PIPE, Literal: "|", Start: 7, Len: 1},
				{Type: WORD, Literal: "grep", Start: 9, Len: 4},
				{Type: WORD, Literal: "foo", Start: 14, Len: 3},
				{Type: REDIRECT_OUT, Literal: ">", Start: 18, Len: 1},
				{Type: WORD, Literal: "out.txt", Start: 20, Len: 7},
				{Type: AMPERSAND, Literal: "&", Start: 28, Len: 1},
			},
		},
		{
			input: "echo a>>log;cat<in",
			expected: []Token{
				{Type: WORD, Literal: "echo", Start: 0, Len: 4},
				{Type: WORD, Literal: "a", Start: 5, Len: 1},
				{Type: REDIRECT_APPEND, Literal: ">>", Start: 6, Len: 2},
				{Type: WORD, Literal: "log", Start: 8, Len: 3},
				{Type: SEMICOLON, Literal: ";", Start: 11, Len: 1},
				{Type: WORD, Literal: "cat", Start: 12, Len: 3},
				{Type: REDIRECT_IN, Literal: "<", Start: 15, Len: 1},
				{Type: WORD, Literal: "in", Start: 16, Len: 2},
			},
		},
		{
			input: `echo 'a | b' "c ; d"`,
			expected: []Token{
				{Type: WORD, Literal: "echo", Start: 0, Len: 4},
				{Type: WORD, Literal: "'a | b'", Start: 5, Len: 7},
				{Type: WORD, Literal: `"c ; d"`, Start: 13, Len: 7},
			},
		},
		{
			input: `say x"y z"'w'`,
			expected: []Token{
				{Type: WORD, Literal: "say", Start: 0, Len: 3},
				{Type: WORD, Literal: `x"y z"'w'`, Start: 4, Len: 9},
			},
		},
		{
			input: `echo a\ b c\|d`,
			expected: []Token{
				{Type: WORD, Literal: "echo", Start: 0, Len: 4},
				{Type: WORD, Literal: `a\ b`, Start: 5, Len: 4},
				{Type: WORD, Literal: `c\|d`, Start: 10, Len: 4},
			},
		},
		{
			input:    "   \t ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		got, err := Tokenize(tt.input)
		if err != nil {
			t.Errorf("测试 '%s': 意外的错误 %v", tt.input, err)
			continue
		}
		if diff := cmp.Diff(tt.expected, got); diff != "" {
			t.Errorf("测试 '%s': token序列不一致 (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestNextTokenLazy(t *testing.T) {
	l := New("a | b")
	types := []TokenType{WORD, PIPE, WORD, EOF, EOF}
	for i, want := range types {
		if tok := l.NextToken(); tok.Type != want {
			t.Errorf("[%d]: token类型错误，期望 %s，得到 %s", i, want, tok.Type)
		}
	}
}

func TestTrailingBackslash(t *testing.T) {
	tokens, err := Tokenize(`echo abc\`)
	if err != nil {
		t.Fatalf("末尾反斜杠不应该报错: %v", err)
	}
	if len(tokens) != 2 || tokens[1].Literal != `abc\` {
		t.Errorf("末尾反斜杠应该按字面保留，得到 %+v", tokens)
	}
	if got := Unquote(tokens[1].Literal); got != `abc\` {
		t.Errorf("Unquote 错误，期望 'abc\\'，得到 '%s'", got)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"'hello world'", "hello world"},
		{`"hello world"`, "hello world"},
		{`'a\b'`, `a\b`},
		{`"a\"b"`, `a"b`},
		{`a\ b`, "a b"},
		{`x"y z"'w'`, "xy zw"},
		{`"it's"`, "it's"},
		{`'say "hi"'`, `say "hi"`},
		{`""`, ""},
	}

	for _, tt := range tests {
		if got := Unquote(tt.input); got != tt.expected {
			t.Errorf("Unquote(%q) 错误，期望 %q，得到 %q", tt.input, tt.expected, got)
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	if REDIRECT_APPEND.String() != "REDIRECT_APPEND" {
		t.Errorf("String 错误，得到 %s", REDIRECT_APPEND.String())
	}
	if !REDIRECT_IN.IsRedirect() || PIPE.IsRedirect() {
		t.Error("IsRedirect 判断错误")
	}
	if WORD.IsOperator() || !SEMICOLON.IsOperator() {
		t.Error("IsOperator 判断错误")
	}
}
