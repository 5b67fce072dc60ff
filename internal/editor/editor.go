// Package editor 实现原始模式下的行编辑器
// 每次读入一个字节，经过转义序列状态机后分派到编辑操作
package editor

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"gofish/internal/complete"
	"gofish/internal/highlight"
	"gofish/internal/history"
	"gofish/internal/state"
)

// Options 编辑器的外部协作者
type Options struct {
	// Execute 提交一行命令，调用前已写入历史
	Execute func(line string)
	// Prompt 返回提示符，可以包含 SGR 序列
	Prompt func() string
	// Lookup 判断命令是否存在，用于着色
	Lookup highlight.Lookup
	// Width 返回终端列数
	Width  func() int
	Output io.Writer
	Logger zerolog.Logger
}

// Editor 行编辑器
type Editor struct {
	st     *state.State
	engine *complete.Engine
	opts   Options

	buf    string
	cursor int
	killed string

	input  InputState
	params csiParams

	walker *history.Walker
	search *search

	renderRow int // 上次绘制后光标所在行（相对提示符所在行）
	logger    zerolog.Logger
}

// New 创建编辑器
func New(st *state.State, engine *complete.Engine, opts Options) *Editor {
	if opts.Execute == nil {
		opts.Execute = func(string) {}
	}
	if opts.Prompt == nil {
		opts.Prompt = func() string { return "> " }
	}
	if opts.Width == nil {
		opts.Width = func() int { return 80 }
	}
	if opts.Output == nil {
		opts.Output = io.Discard
	}
	return &Editor{
		st:     st,
		engine: engine,
		opts:   opts,
		logger: opts.Logger,
	}
}

// Buffer 返回编辑缓冲区
func (e *Editor) Buffer() string {
	return e.buf
}

// Cursor 返回光标位置（字节偏移）
func (e *Editor) Cursor() int {
	return e.cursor
}

// State 返回状态机当前状态
func (e *Editor) State() InputState {
	return e.input
}

// Searching 是否处于反向搜索中
func (e *Editor) Searching() bool {
	return e.search != nil
}

// SetBuffer 替换缓冲区，光标移到末尾
func (e *Editor) SetBuffer(s string) {
	e.buf = s
	e.cursor = len(s)
}

// Reset 清空缓冲区和所有临时状态
func (e *Editor) Reset() {
	e.buf = ""
	e.cursor = 0
	e.walker = nil
	e.search = nil
	e.input = StateNormal
	e.params.reset()
	e.st.Pager.Close()
}

// Feed 处理一个输入字节
func (e *Editor) Feed(b byte) {
	if e.search != nil && e.input == StateNormal && e.feedSearch(b) {
		return
	}

	t := transitions[e.input][classify(b)]
	e.input = t.next

	switch t.action {
	case actPlain:
		e.dispatch(b)
	case actEscape:
		e.params.reset()
	case actStrayEscape:
		e.st.Pager.Close()
	case actEnterCSI:
		e.params.reset()
	case actAltKey:
		e.altKey(b)
	case actCSIParam:
		e.params.add(b)
	case actCSIFinal:
		e.csiFinal(b, e.params.value())
		e.params.reset()
	case actCSIAbort:
		e.logger.Debug().Uint8("byte", b).Msg("unrecognized escape sequence dropped")
		e.params.reset()
	}
}

// Timeout 等待输入超时时调用
// 单独的 ESC 没有后续字节，当作 ESC 键处理
func (e *Editor) Timeout() {
	switch e.input {
	case StateEscape:
		e.st.Pager.Close()
		e.input = StateNormal
	case StateCSI:
		e.params.reset()
		e.input = StateNormal
	}
}

// dispatch 处理普通字节
func (e *Editor) dispatch(b byte) {
	switch b {
	case readline.CharTab:
		e.complete()
	case readline.CharEnter, readline.CharCtrlJ:
		e.enter()
	case readline.CharLineStart:
		e.moveTo(0)
	case readline.CharLineEnd:
		e.moveTo(len(e.buf))
	case readline.CharBackward:
		e.left()
	case readline.CharForward:
		e.right()
	case readline.CharCtrlW:
		e.killWordBackward()
	case readline.CharCtrlU:
		e.kill(0, e.cursor)
	case readline.CharKill:
		e.kill(e.cursor, len(e.buf))
	case readline.CharCtrlY:
		e.insert(e.killed)
	case readline.CharDelete:
		if e.buf == "" {
			e.endOfInput()
			return
		}
		e.deleteForward()
	case readline.CharBackspace, readline.CharCtrlH:
		e.deleteBackward()
	case readline.CharCtrlL:
		e.clearScreen()
	case readline.CharInterrupt:
		e.interrupt()
	case readline.CharPrev:
		e.up()
	case readline.CharNext:
		e.down()
	case readline.CharBckSearch:
		e.startSearch()
	case ' ':
		e.space()
	default:
		if b >= 0x20 {
			e.insert(string([]byte{b}))
			e.refreshPager()
			return
		}
		e.logger.Debug().Uint8("byte", b).Msg("unbound control key")
	}
}

// altKey 处理 ESC 加普通键
func (e *Editor) altKey(b byte) {
	if b == readline.CharEnter || b == readline.CharCtrlJ {
		e.insert("\n")
		return
	}
	e.st.Pager.Close()
}

// csiFinal 按 CSI 序列的结束字节分派
func (e *Editor) csiFinal(final, param byte) {
	switch final {
	case 'A':
		e.up()
	case 'B':
		e.down()
	case 'C':
		e.right()
	case 'D':
		e.left()
	case 'H':
		e.moveTo(0)
	case 'F':
		e.moveTo(len(e.buf))
	case 'Z':
		e.st.Pager.Prev()
	case '~':
		switch param {
		case '3':
			e.deleteForward()
		case '1', '7':
			e.moveTo(0)
		case '4', '8':
			e.moveTo(len(e.buf))
		default:
			e.logger.Debug().Uint8("param", param).Msg("unbound function key")
		}
	default:
		e.logger.Debug().Uint8("final", final).Msg("unbound escape sequence")
	}
}

func (e *Editor) insert(s string) {
	if s == "" {
		return
	}
	e.buf = e.buf[:e.cursor] + s + e.buf[e.cursor:]
	e.cursor += len(s)
	e.walker = nil
}

func (e *Editor) moveTo(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(e.buf) {
		pos = len(e.buf)
	}
	e.cursor = pos
}

func (e *Editor) left() {
	if e.cursor > 0 {
		_, n := utf8.DecodeLastRuneInString(e.buf[:e.cursor])
		e.cursor -= n
	}
}

// right 光标右移，已经在末尾时接受自动建议
func (e *Editor) right() {
	if e.cursor < len(e.buf) {
		_, n := utf8.DecodeRuneInString(e.buf[e.cursor:])
		e.cursor += n
		return
	}
	if s, ok := e.Suggestion(); ok {
		e.SetBuffer(s)
		e.walker = nil
	}
}

func (e *Editor) deleteBackward() {
	if e.cursor == 0 {
		return
	}
	_, n := utf8.DecodeLastRuneInString(e.buf[:e.cursor])
	e.remove(e.cursor-n, e.cursor)
}

func (e *Editor) deleteForward() {
	if e.cursor >= len(e.buf) {
		return
	}
	_, n := utf8.DecodeRuneInString(e.buf[e.cursor:])
	e.remove(e.cursor, e.cursor+n)
}

func (e *Editor) remove(from, to int) {
	e.buf = e.buf[:from] + e.buf[to:]
	e.cursor = from
	e.walker = nil
	e.refreshPager()
}

// kill 删除 [from, to) 并保存，^Y 可以粘贴回来
func (e *Editor) kill(from, to int) {
	if from >= to {
		return
	}
	e.killed = e.buf[from:to]
	e.remove(from, to)
}

// killWordBackward 删除光标前的一个词（连同后面的空白）
func (e *Editor) killWordBackward() {
	i := e.cursor
	for i > 0 && isSpace(e.buf[i-1]) {
		i--
	}
	for i > 0 && !isSpace(e.buf[i-1]) {
		i--
	}
	e.kill(i, e.cursor)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n'
}

// space 插入空格前先尝试展开光标前的缩写
func (e *Editor) space() {
	e.st.Pager.Close()
	if buf, cursor, ok := e.st.Abbrs.Expand(e.buf, e.cursor); ok {
		e.buf, e.cursor = buf, cursor
	}
	e.insert(" ")
}

// complete 打开补全列表，已打开时选中下一项
func (e *Editor) complete() {
	if e.st.Pager.Active() {
		e.st.Pager.Next()
		return
	}
	if e.engine != nil {
		e.engine.Complete(e.st.Pager, e.buf, e.cursor)
	}
}

// refreshPager 补全列表打开时用新的前缀重新补全，没有候选则关闭
func (e *Editor) refreshPager() {
	if !e.st.Pager.Active() || e.engine == nil {
		return
	}
	e.engine.Complete(e.st.Pager, e.buf, e.cursor)
}

// up 补全列表打开时选中上一项，否则浏览更旧的历史
func (e *Editor) up() {
	if e.st.Pager.Active() {
		e.st.Pager.Prev()
		return
	}
	if e.walker == nil {
		e.walker = e.st.History.NewWalker(e.buf)
	}
	if cmd, ok := e.walker.Prev(); ok {
		e.SetBuffer(cmd)
	}
}

// down 补全列表打开时选中下一项，否则浏览更新的历史
func (e *Editor) down() {
	if e.st.Pager.Active() {
		e.st.Pager.Next()
		return
	}
	if e.walker == nil {
		return
	}
	cmd, ok := e.walker.Next()
	e.SetBuffer(cmd)
	if !ok {
		// 回到了开始浏览前的缓冲区
		e.walker = nil
	}
}

// Suggestion 返回历史中以缓冲区开头的最新命令
func (e *Editor) Suggestion() (string, bool) {
	if e.search != nil || strings.Contains(e.buf, "\n") {
		return "", false
	}
	return e.st.History.GetSuggestion(e.buf)
}

// enter 补全列表打开时接受选中项，否则提交
func (e *Editor) enter() {
	if e.st.Pager.Active() {
		e.buf, e.cursor, _ = e.st.Pager.Accept(e.buf, e.cursor)
		return
	}
	e.submit()
}

// submit 展开末尾的缩写，写入历史，然后执行
func (e *Editor) submit() {
	if buf, _, ok := e.st.Abbrs.Expand(e.buf, len(e.buf)); ok {
		e.buf = buf
	}
	e.cursor = len(e.buf)
	line := e.buf

	e.renderFinal("")
	if strings.TrimSpace(line) == "" {
		e.Reset()
		return
	}
	if err := e.st.History.Add(line); err != nil {
		e.logger.Warn().Err(err).Msg("history add")
	}
	e.Reset()
	e.opts.Execute(line)
}

// interrupt ^C 清空当前行
func (e *Editor) interrupt() {
	e.renderFinal("^C")
	e.Reset()
}

// endOfInput 空行上的 ^D 结束 shell
func (e *Editor) endOfInput() {
	e.renderFinal("")
	e.Reset()
	e.st.Stop()
}

func (e *Editor) clearScreen() {
	io.WriteString(e.opts.Output, "\x1b[H\x1b[2J")
	e.renderRow = 0
}
