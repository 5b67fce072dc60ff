// Package shell 把各组件组装成 REPL，并提供脚本和 -c 执行
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"gofish/internal/builtin"
	"gofish/internal/complete"
	"gofish/internal/config"
	"gofish/internal/editor"
	"gofish/internal/executor"
	"gofish/internal/history"
	"gofish/internal/parser"
	"gofish/internal/state"
	"gofish/internal/terminal"
	"gofish/pkg/platform"
)

// Shell Shell主结构
type Shell struct {
	cfg      *config.Config
	state    *state.State
	executor *executor.Executor
	engine   *complete.Engine
	reporter *ErrorReporter
	term     *terminal.Terminal
	logger   zerolog.Logger
}

// New 创建新的Shell实例
// 历史记录打开失败时只记日志，shell 仍然可用
func New(cfg *config.Config, logger zerolog.Logger) *Shell {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	hist := history.NewHistory(cfg.History.MaxSize, openStore(cfg.History, logger))
	if err := hist.Load(); err != nil {
		logger.Warn().Err(err).Msg("load history")
	}

	st := state.New(hist)
	st.Logger = logger
	st.Clipboard = platform.SystemClipboard{}
	for name, expansion := range cfg.Abbreviations {
		st.Abbrs.Add(name, expansion)
	}

	engine := complete.NewEngine(logger)
	engine.Getenv = st.Getenv
	engine.Getwd = st.Cwd
	engine.Builtins = builtin.Names
	engine.CacheDir = cfg.Completion.CacheDir
	if cfg.Completion.ManPages {
		engine.Man = complete.ManPageReader{}
	}

	sh := &Shell{
		cfg:      cfg,
		state:    st,
		engine:   engine,
		reporter: NewErrorReporter(st.Stderr, "", true),
		term:     terminal.New(int(os.Stdin.Fd())),
		logger:   logger,
	}
	sh.SetSpawner(&executor.ProcessSpawner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	return sh
}

// openStore 按配置打开历史后端，没有文件时只保存在内存中
func openStore(cfg config.HistoryConfig, logger zerolog.Logger) history.Store {
	if cfg.File == "" {
		return nil
	}
	var (
		store history.Store
		err   error
	)
	switch cfg.Backend {
	case config.BackendBolt:
		store, err = history.NewBoltStore(cfg.File)
	default:
		store, err = history.NewFileStore(cfg.File)
	}
	if err != nil {
		logger.Warn().Err(err).Str("file", cfg.File).Msg("open history store")
		return nil
	}
	return store
}

// SetSpawner 替换启动外部程序的方式
func (s *Shell) SetSpawner(spawner executor.Spawner) {
	s.executor = executor.New(s.state, spawner)
	s.executor.SetReporter(func(err error) { s.reporter.ReportError(err) })
}

// SetOutput 替换内建命令和错误信息的输出
func (s *Shell) SetOutput(stdout, stderr io.Writer) {
	s.state.Stdout = stdout
	s.state.Stderr = stderr
	s.reporter = NewErrorReporter(stderr, "", true)
}

// State 返回 shell 状态
func (s *Shell) State() *state.State {
	return s.state
}

// ExitCode 返回最后一个管道的退出码
func (s *Shell) ExitCode() int {
	return s.state.ExitCode()
}

// Close 关闭历史记录
func (s *Shell) Close() error {
	return s.state.History.Close()
}

// Run 运行交互式Shell
// 标准输入不是终端时把它当作脚本执行
func (s *Shell) Run() error {
	if !terminal.IsTerminal(os.Stdin.Fd()) {
		return s.ExecuteReader(s.state.Stdin)
	}
	switch s.cfg.Editor.Mode {
	case config.ModeReadline:
		return s.runReadline()
	case config.ModeSimple:
		return s.runSimple()
	default:
		return s.runRaw()
	}
}

// runRaw 原始模式下逐字节驱动编辑器
func (s *Shell) runRaw() error {
	if err := s.term.EnableRawMode(); err != nil {
		s.logger.Warn().Err(err).Msg("enable raw mode")
		return s.runSimple()
	}
	defer s.term.DisableRawMode()
	stop := s.term.RestoreOnSignal()
	defer stop()

	ed := editor.New(s.state, s.engine, editor.Options{
		Execute: s.executeInteractive,
		Prompt:  s.prompt,
		Lookup:  s.commandExists,
		Width:   s.term.Width,
		Output:  s.state.Stdout,
		Logger:  s.logger,
	})
	ed.Render()

	poll := s.cfg.Editor.PollIntervalDuration()
	buf := make([]byte, 256)
	for s.state.Running() {
		ready, err := terminal.WaitForInput(s.term.Fd(), poll)
		if err != nil {
			return fmt.Errorf("wait for input: %w", err)
		}
		if ready == terminal.Timeout {
			if ed.State() != editor.StateNormal {
				ed.Timeout()
				ed.Render()
			}
			continue
		}

		n, err := os.Stdin.Read(buf)
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.state.Stop()
				break
			}
			return fmt.Errorf("read input: %w", err)
		}
		for _, b := range buf[:n] {
			ed.Feed(b)
			if !s.state.Running() {
				break
			}
		}
		if s.state.Running() {
			ed.Render()
		}
	}
	return nil
}

// executeInteractive 执行期间切回规范模式，子进程看到正常的终端
func (s *Shell) executeInteractive(line string) {
	if err := s.term.DisableRawMode(); err != nil {
		s.logger.Warn().Err(err).Msg("disable raw mode")
	}
	s.ExecuteLine(line)
	if !s.state.Running() {
		return
	}
	if err := s.term.EnableRawMode(); err != nil {
		s.logger.Warn().Err(err).Msg("enable raw mode")
	}
}

// runReadline 使用 readline 库读取输入，补全由同一个引擎提供
func (s *Shell) runReadline() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 s.prompt(),
		AutoComplete:           s.engine,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		// 如果readline初始化失败，回退到简单的bufio.Scanner
		s.logger.Warn().Err(err).Msg("readline init")
		return s.runSimple()
	}
	defer rl.Close()

	for _, e := range s.state.History.Entries() {
		rl.SaveHistory(e.Command)
	}

	for s.state.Running() {
		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			// EOF或其他错误，退出
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		line = s.submit(line)
		rl.SaveHistory(line)
		s.ExecuteLine(line)
	}
	return nil
}

// runSimple 逐行读取，不做编辑和补全
func (s *Shell) runSimple() error {
	scanner := bufio.NewScanner(s.state.Stdin)
	for s.state.Running() {
		fmt.Fprint(s.state.Stdout, s.plainPrompt())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.ExecuteLine(s.submit(line))
	}
	return scanner.Err()
}

// submit 展开末尾的缩写并写入历史，返回实际执行的命令
func (s *Shell) submit(line string) string {
	if expanded, _, ok := s.state.Abbrs.Expand(line, len(line)); ok {
		line = expanded
	}
	if err := s.state.History.Add(line); err != nil {
		s.logger.Warn().Err(err).Msg("history add")
	}
	return line
}

// ExecuteLine 解析并执行一行命令
// 未闭合的引号使整行不执行，其他解析诊断只作为警告输出
func (s *Shell) ExecuteLine(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	job, parseErrs, err := parser.Parse(line)
	if err != nil {
		s.reporter.ReportError(err)
		s.state.SetExitCode(1)
		return
	}
	for _, pe := range parseErrs {
		s.reporter.ReportError(pe)
	}
	s.logger.Debug().Str("line", line).Int("pipelines", len(job.Pipelines)).Msg("execute")
	s.executor.Execute(job)
}

// ExecuteScript 执行脚本文件，参数放在 argv 变量中
func (s *Shell) ExecuteScript(scriptPath string, args ...string) error {
	file, err := os.Open(scriptPath)
	if err != nil {
		return fmt.Errorf("cannot open script: %w", err)
	}
	defer file.Close()

	s.state.SetEnv("argv", strings.Join(args, " "))
	return s.execute(file, scriptPath)
}

// ExecuteReader 从Reader执行命令
func (s *Shell) ExecuteReader(reader io.Reader) error {
	return s.execute(reader, "")
}

func (s *Shell) execute(reader io.Reader, scriptPath string) error {
	saved := s.reporter
	s.reporter = NewErrorReporter(s.state.Stderr, scriptPath, false)
	defer func() { s.reporter = saved }()

	scanner := bufio.NewScanner(reader)
	lineNum := 0
	for scanner.Scan() && s.state.Running() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// 跳过空行、shebang 和注释
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		s.reporter.SetLineNum(lineNum)
		s.ExecuteLine(line)
	}
	return scanner.Err()
}
