package complete

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"gofish/pkg/platform"
)

var _ readline.AutoCompleter = (*Engine)(nil)

// Engine 补全引擎
// 根据光标前的词决定从文件系统、PATH 或选项缓存中查找候选
type Engine struct {
	Dirs     DirReader
	Man      ManReader // 为 nil 时不抓取手册页
	CacheDir string    // 为空时选项只缓存在内存中

	Getenv   func(key string) string
	Getwd    func() string
	Builtins func() []string

	logger zerolog.Logger
	flags  map[string][]Flag
}

// NewEngine 创建补全引擎
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{
		Dirs:     OSDirReader{},
		Getenv:   os.Getenv,
		Getwd:    func() string { wd, _ := os.Getwd(); return wd },
		Builtins: func() []string { return nil },
		logger:   logger,
		flags:    make(map[string][]Flag),
	}
}

// Complete 计算候选并填入 pager，返回 pager 是否打开
func (e *Engine) Complete(p *Pager, line string, cursor int) bool {
	filter, candidates := e.Candidates(line, cursor)
	p.Set(filter, candidates)
	return p.Active()
}

// Candidates 返回光标处的过滤词和候选列表（按发现顺序）
func (e *Engine) Candidates(line string, cursor int) (string, []Candidate) {
	if cursor > len(line) {
		cursor = len(line)
	}
	start := wordStart(line, cursor)
	filter := line[start:cursor]

	var candidates []Candidate
	switch {
	case platform.ContainsPathSeparator(filter):
		candidates = e.files(filter)
	case isCommandPosition(line[:start]):
		candidates = append(e.commands(filter), e.files(filter)...)
	case strings.HasPrefix(filter, "-"):
		candidates = append(e.options(commandName(line[:start]), filter), e.files(filter)...)
	default:
		candidates = e.files(filter)
	}
	e.logger.Debug().Str("filter", filter).Int("candidates", len(candidates)).Msg("complete")
	return filter, candidates
}

// Do 实现 readline.AutoCompleter，返回每个候选在过滤词之后的部分
func (e *Engine) Do(line []rune, pos int) ([][]rune, int) {
	prefix := string(line[:pos])
	filter, candidates := e.Candidates(prefix, len(prefix))
	var out [][]rune
	for _, c := range candidates {
		if strings.HasPrefix(c.Value, filter) {
			out = append(out, []rune(c.Value[len(filter):]))
		}
	}
	return out, len([]rune(filter))
}

// files 补全文件名，目录候选追加路径分隔符
func (e *Engine) files(filter string) []Candidate {
	dirPart, fragment := splitDir(filter)

	dir := dirPart
	if dir == "" {
		dir = "."
	}
	dir = platform.Resolve(e.Getwd(), dir)

	entries, err := e.Dirs.ReadDir(dir)
	if err != nil {
		e.logger.Debug().Err(err).Str("dir", dir).Msg("complete: read dir")
		return nil
	}

	var candidates []Candidate
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, fragment) {
			continue
		}
		// 隐藏文件只在明确输入 . 时出现
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(fragment, ".") {
			continue
		}
		display := name
		if entry.IsDir() {
			display += "/"
		}
		candidates = append(candidates, Candidate{Display: display, Value: dirPart + display})
	}
	return candidates
}

// commands 补全 PATH 中的可执行文件和内置命令
func (e *Engine) commands(prefix string) []Candidate {
	var candidates []Candidate
	seen := make(map[string]bool)

	for _, dir := range platform.SplitPathList(e.Getenv("PATH")) {
		entries, err := e.Dirs.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil || !platform.IsExecutable(info) {
				continue
			}
			name := platform.TrimExecSuffix(entry.Name())
			if !strings.HasPrefix(name, prefix) || seen[name] {
				continue
			}
			seen[name] = true
			candidates = append(candidates, Candidate{Display: name, Value: name})
		}
	}

	for _, name := range e.Builtins() {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			candidates = append(candidates, Candidate{Display: name, Value: name, Description: "builtin"})
		}
	}
	return candidates
}

// options 从选项缓存中补全，缓存不存在时抓取手册页
func (e *Engine) options(command, prefix string) []Candidate {
	if command == "" {
		return nil
	}
	var candidates []Candidate
	for _, f := range e.lookupFlags(command) {
		for _, tok := range f.Tokens {
			if strings.HasPrefix(tok, prefix) {
				candidates = append(candidates, Candidate{Display: tok, Value: tok, Description: f.Description})
			}
		}
	}
	return candidates
}

func (e *Engine) lookupFlags(command string) []Flag {
	if flags, ok := e.flags[command]; ok {
		return flags
	}
	if e.CacheDir != "" {
		if flags, ok := readFlagCache(e.CacheDir, command); ok {
			e.flags[command] = flags
			return flags
		}
	}
	if e.Man == nil {
		return nil
	}

	// 读取失败时只在本次会话内记住空结果，不写缓存文件
	text, err := e.Man.ReadMan(command)
	if err != nil {
		e.logger.Debug().Err(err).Str("command", command).Msg("complete: read man page")
		e.flags[command] = nil
		return nil
	}
	flags := ScrapeFlags(text)
	e.flags[command] = flags
	if e.CacheDir != "" {
		if err := writeFlagCache(e.CacheDir, command, flags); err != nil {
			e.logger.Debug().Err(err).Str("command", command).Msg("complete: write flag cache")
		}
	}
	return flags
}

// wordStart 返回光标前空白分隔的词的起始位置
func wordStart(line string, cursor int) int {
	return strings.LastIndexAny(line[:cursor], " \t\n") + 1
}

// isCommandPosition 判断词前面的内容是否表示命令位置（行首或操作符之后）
func isCommandPosition(before string) bool {
	before = strings.TrimRight(before, " \t\n")
	if before == "" {
		return true
	}
	switch before[len(before)-1] {
	case '|', ';', '&':
		return true
	}
	return false
}

// commandName 返回当前命令段的命令名
func commandName(before string) string {
	if i := strings.LastIndexAny(before, "|;&"); i >= 0 {
		before = before[i+1:]
	}
	fields := strings.Fields(before)
	if len(fields) == 0 {
		return ""
	}
	return filepath.Base(fields[0])
}

// splitDir 拆出目录部分（包含末尾分隔符）和文件名片段
func splitDir(filter string) (string, string) {
	for i := len(filter) - 1; i >= 0; i-- {
		if platform.IsPathSeparator(filter[i]) {
			return filter[:i+1], filter[i+1:]
		}
	}
	return "", filter
}
