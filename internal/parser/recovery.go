package parser

import (
	"gofish/internal/lexer"
)

// recoverFromError 丢弃失败的管道片段
// mark 是尝试解析之前已消费的 token 数；如果失败的尝试没有消费任何 token，
// 至少跳过一个，保证解析总能向前推进
func (p *Parser) recoverFromError(mark int) {
	if p.consumed == mark && p.curToken.Type != lexer.EOF {
		p.nextToken()
	}
}

// failedPipelineError 根据失败的位置选择诊断类型
func (p *Parser) failedPipelineError(mark int, start lexer.Token) {
	if p.consumed == mark {
		p.addError(ErrorTypeUnexpectedToken, "unexpected token", start, "command")
		return
	}
	// 消费了重定向但没有单词
	p.addError(ErrorTypeEmptyCommand, "command has no words", start, "")
}
