// Package executor 执行解析好的 Job
package executor

import (
	"errors"

	"github.com/rs/zerolog"

	"gofish/internal/builtin"
	"gofish/internal/parser"
	"gofish/internal/state"
	"gofish/pkg/platform"
)

// Executor 执行器
// 每个管道只执行第一个命令，重定向只记录不生效
type Executor struct {
	state   *state.State
	spawner Spawner
	report  func(error)
	logger  zerolog.Logger
}

// New 创建新的执行器
func New(s *state.State, spawner Spawner) *Executor {
	e := &Executor{
		state:   s,
		spawner: spawner,
		logger:  s.Logger,
	}
	e.report = func(err error) { s.Errorf("%v", err) }
	return e
}

// SetReporter 设置错误输出方式
func (e *Executor) SetReporter(report func(error)) {
	e.report = report
}

// Execute 依次执行 Job 中的管道
// 某个管道失败不影响后面的管道，exit 之后停止
func (e *Executor) Execute(job *parser.Job) {
	if job == nil {
		return
	}
	for _, p := range job.Pipelines {
		if !e.state.Running() {
			return
		}
		e.executePipeline(p)
	}
}

// executePipeline 执行管道并更新 $status
func (e *Executor) executePipeline(p *parser.Pipeline) {
	if p.Background {
		e.logger.Debug().Str("pipeline", p.String()).Msg("background pipeline runs in foreground")
	}
	if p.Head.Next != nil {
		e.logger.Debug().Str("pipeline", p.String()).Msg("only the first stage of a pipeline runs")
	}
	if len(p.Head.Redirects) > 0 {
		e.logger.Debug().Str("command", p.Head.String()).Msg("redirects are not applied")
	}
	e.state.SetExitCode(e.executeCommand(p.Head))
}

// executeCommand 执行命令，返回退出码
func (e *Executor) executeCommand(cmd *parser.Command) int {
	name := cmd.Name()
	if name == "" {
		return 0
	}

	// 检查是否为内置命令
	if fn, ok := builtin.Lookup(name); ok {
		return e.executeBuiltin(name, fn, cmd.Args[1:])
	}

	// 执行外部命令
	return e.executeExternal(cmd.Args)
}

func (e *Executor) executeBuiltin(name string, fn builtin.BuiltinFunc, args []string) int {
	err := fn(e.state, args)
	if err == nil {
		return 0
	}
	var status builtin.ExitStatus
	if errors.As(err, &status) {
		return int(status)
	}
	execErr := newExecutionError(ExecutionErrorTypeBuiltinFailed, name, err)
	e.report(execErr)
	return execErr.ExitCode()
}

// executeExternal 启动外部命令，找不到时依次尝试平台后缀
// 只重试确实存在的文件，脚本后缀交给解释器运行
func (e *Executor) executeExternal(argv []string) int {
	env := e.state.Env()
	name, args := argv[0], argv[1:]

	code := e.spawner.Spawn(argv, env)
	for _, sfx := range platform.ExecSuffixes() {
		if code != ExitCodeNotFound {
			break
		}
		retry, ok := e.suffixArgv(name+sfx.Suffix, sfx.Script, args, env["PATH"])
		if !ok {
			continue
		}
		e.logger.Debug().Strs("argv", retry).Msg("retry with suffix")
		code = e.spawner.Spawn(retry, env)
	}

	if code == ExitCodeNotFound {
		e.report(newExecutionError(ExecutionErrorTypeCommandNotFound, name, nil))
	}
	return code
}

// suffixArgv 返回加后缀后的启动参数，文件不存在时返回 false
func (e *Executor) suffixArgv(candidate string, script bool, args []string, path string) ([]string, bool) {
	if script {
		file, ok := platform.LookScript(candidate, path, e.state.Cwd())
		if !ok {
			return nil, false
		}
		return platform.ScriptArgv(file, args), true
	}
	if _, ok := platform.LookPath(candidate, path, e.state.Cwd()); !ok {
		return nil, false
	}
	return append([]string{candidate}, args...), true
}
