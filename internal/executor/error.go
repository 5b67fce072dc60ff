package executor

import (
	"fmt"
)

// ExecutionErrorType 执行器错误类型
type ExecutionErrorType int

const (
	ExecutionErrorTypeCommandNotFound ExecutionErrorType = iota // 命令未找到
	ExecutionErrorTypeBuiltinFailed                              // 内置命令执行失败
)

// ExitCodeNotFound 找不到或无法执行命令时的退出码
const ExitCodeNotFound = 127

// ExecutionError 表示执行器错误
type ExecutionError struct {
	Type        ExecutionErrorType
	Command     string // 命令名
	OriginalErr error  // 原始错误（如果可用）
}

// Error 实现 error 接口
func (e *ExecutionError) Error() string {
	switch e.Type {
	case ExecutionErrorTypeCommandNotFound:
		return fmt.Sprintf("command not found: %s", e.Command)
	case ExecutionErrorTypeBuiltinFailed:
		return fmt.Sprintf("%s: %v", e.Command, e.OriginalErr)
	}
	return e.Command
}

// Unwrap 返回原始错误
func (e *ExecutionError) Unwrap() error {
	return e.OriginalErr
}

// ExitCode 返回退出码
func (e *ExecutionError) ExitCode() int {
	switch e.Type {
	case ExecutionErrorTypeCommandNotFound:
		return ExitCodeNotFound
	default:
		return 1
	}
}

// newExecutionError 创建新的执行器错误
func newExecutionError(errType ExecutionErrorType, command string, originalErr error) *ExecutionError {
	return &ExecutionError{
		Type:        errType,
		Command:     command,
		OriginalErr: originalErr,
	}
}
