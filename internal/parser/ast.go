package parser

import (
	"strings"
)

// Job 一次提交的输入行的解析结果
// 各个管道依次独立执行，分号分隔的管道之间没有任何连接
type Job struct {
	Pipelines []*Pipeline
}

func (j *Job) String() string {
	parts := make([]string, 0, len(j.Pipelines))
	for _, p := range j.Pipelines {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, "; ")
}

// Pipeline 由管道符连接的命令链
// Head 总是非空
type Pipeline struct {
	Head       *Command
	Background bool
	Next       *Pipeline
}

// Commands 按顺序返回管道中的所有命令
func (p *Pipeline) Commands() []*Command {
	var cmds []*Command
	for c := p.Head; c != nil; c = c.Next {
		cmds = append(cmds, c)
	}
	return cmds
}

func (p *Pipeline) String() string {
	var out string
	if p.Head != nil {
		out = p.Head.String()
	}
	if p.Background {
		out += " &"
	}
	return out
}

// Command 一次程序调用
// Args[0] 是程序名，所有参数已经去掉引号
type Command struct {
	Args      []string
	Redirects []*Redirect
	Next      *Command // 管道中的下一个命令
}

// Name 返回命令名
func (c *Command) Name() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

func (c *Command) String() string {
	out := strings.Join(c.Args, " ")
	for _, r := range c.Redirects {
		out += " " + r.String()
	}
	if c.Next != nil {
		out += " | " + c.Next.String()
	}
	return out
}

// Redirect 重定向
type Redirect struct {
	Type   RedirectType
	Target string
}

func (r *Redirect) String() string {
	return r.Type.String() + " " + r.Target
}

type RedirectType int

const (
	REDIRECT_INPUT RedirectType = iota
	REDIRECT_OUTPUT
	REDIRECT_APPEND
)

func (rt RedirectType) String() string {
	switch rt {
	case REDIRECT_INPUT:
		return "<"
	case REDIRECT_OUTPUT:
		return ">"
	case REDIRECT_APPEND:
		return ">>"
	default:
		return "?"
	}
}
