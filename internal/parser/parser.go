// Package parser 提供语法分析功能，将token序列解析为 Job 语法树
package parser

import (
	"gofish/internal/lexer"
)

// Parser 语法分析器
// 递归下降，curToken 即唯一的向前看 token；遇到错误不会放弃整行，
// 而是丢弃出错的片段并记录诊断
type Parser struct {
	l           *lexer.Lexer
	errors      []string      // 错误消息字符串
	parseErrors []*ParseError // 结构化错误列表

	curToken  lexer.Token
	peekToken lexer.Token
	consumed  int // 已经消费的 token 数，用于判断是否有进展
}

// New 创建新的解析器
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:           l,
		errors:      []string{},
		parseErrors: []*ParseError{},
	}

	// 读取两个token，设置curToken和peekToken
	p.curToken = l.NextToken()
	p.peekToken = l.NextToken()

	return p
}

// nextToken 移动到下一个token
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
	p.consumed++
}

// Parse 对一行输入做词法和语法分析
// 词法错误（未闭合的引号）使整行作废：返回 nil 和该错误，什么也不执行；
// 语法诊断是可恢复的，随部分语法树一起返回
func Parse(input string) (*Job, []*ParseError, error) {
	l := lexer.New(input)
	p := New(l)
	job := p.ParseJob()
	if errs := l.Errors(); len(errs) > 0 {
		return nil, nil, errs[0]
	}
	return job, p.ParseErrors(), nil
}

// ParseJob 解析整行
// 跳过分号，逐个解析管道；某个管道失败时丢弃它并继续
func (p *Parser) ParseJob() *Job {
	job := &Job{Pipelines: []*Pipeline{}}
	var last *Pipeline

	for p.curToken.Type != lexer.EOF {
		// 跳过分号和词法错误留下的非法 token
		if p.curToken.Type == lexer.SEMICOLON || p.curToken.Type == lexer.ILLEGAL {
			p.nextToken()
			continue
		}

		mark := p.consumed
		start := p.curToken
		pipeline := p.parsePipeline()
		if pipeline == nil {
			p.failedPipelineError(mark, start)
			p.recoverFromError(mark)
			continue
		}

		if last != nil {
			last.Next = pipeline
		}
		last = pipeline
		job.Pipelines = append(job.Pipelines, pipeline)
	}

	return job
}

// parsePipeline 解析管道：一个命令，之后零个或多个 "| 命令"，末尾可选 &
func (p *Parser) parsePipeline() *Pipeline {
	head := p.parseCommand()
	if head == nil {
		return nil
	}
	pipeline := &Pipeline{Head: head}

	tail := head
	for p.curToken.Type == lexer.PIPE {
		pipeTok := p.curToken
		p.nextToken() // 跳过 |
		next := p.parseCommand()
		if next == nil {
			// 保留已经解析出的命令
			p.addError(ErrorTypeMissingCommand, "missing command after pipe", pipeTok, "command")
			break
		}
		tail.Next = next
		tail = next
	}

	if p.curToken.Type == lexer.AMPERSAND {
		pipeline.Background = true
		p.nextToken()
	}

	return pipeline
}

// parseCommand 解析命令：单词和重定向可以任意交错
// 没有任何单词时不会构造命令，返回 nil
func (p *Parser) parseCommand() *Command {
	cmd := &Command{}

	for {
		switch {
		case p.curToken.Type == lexer.WORD:
			cmd.Args = append(cmd.Args, lexer.Unquote(p.curToken.Literal))
			p.nextToken()
		case p.curToken.Type.IsRedirect():
			cmd.Redirects = append(cmd.Redirects, p.parseRedirects()...)
		default:
			if len(cmd.Args) == 0 {
				return nil
			}
			return cmd
		}
	}
}

// parseRedirects 解析连续的 "重定向操作符 单词"
// 操作符后面不是单词时，这个重定向被丢弃（只记录诊断）
func (p *Parser) parseRedirects() []*Redirect {
	var redirects []*Redirect
	for p.curToken.Type.IsRedirect() {
		op := p.curToken
		p.nextToken() // 跳过操作符
		if p.curToken.Type != lexer.WORD {
			p.addError(ErrorTypeMissingRedirectTarget, "missing redirect target", op, "file name")
			continue
		}
		redirects = append(redirects, &Redirect{
			Type:   redirectType(op.Type),
			Target: lexer.Unquote(p.curToken.Literal),
		})
		p.nextToken()
	}
	return redirects
}

// redirectType 把 token 类型转换为重定向类型
func redirectType(t lexer.TokenType) RedirectType {
	switch t {
	case lexer.REDIRECT_IN:
		return REDIRECT_INPUT
	case lexer.REDIRECT_APPEND:
		return REDIRECT_APPEND
	default:
		return REDIRECT_OUTPUT
	}
}

// Errors 返回错误消息
func (p *Parser) Errors() []string {
	return p.errors
}

// ParseErrors 返回结构化的解析错误
func (p *Parser) ParseErrors() []*ParseError {
	return p.parseErrors
}
