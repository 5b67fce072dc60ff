// Package history 提供命令历史：有上限、相邻去重、持久化，并支持前缀查找
package history

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// DefaultMaxSize 默认最多保留的历史条数
const DefaultMaxSize = 1000

// Entry 一条历史记录
type Entry struct {
	Command   string
	Timestamp uint64 // Unix 秒
}

// Store 历史记录的持久化后端
type Store interface {
	// Load 按写入顺序读出所有记录
	Load() ([]Entry, error)
	// Append 追加一条记录
	Append(e Entry) error
	// Clear 删除所有记录
	Clear() error
	io.Closer
}

// History 命令历史管理器
// 按时间顺序保存，超过上限时淘汰最老的一条
type History struct {
	entries []Entry
	maxSize int
	store   Store
	now     func() time.Time
}

// NewHistory 创建新的历史管理器，store 可以为 nil（只保存在内存中）
func NewHistory(maxSize int, store Store) *History {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &History{
		entries: make([]Entry, 0, maxSize),
		maxSize: maxSize,
		store:   store,
		now:     time.Now,
	}
}

// Add 添加命令到历史
// 空白命令和与上一条相同的命令不会添加，命令文本原样保存
func (h *History) Add(cmd string) error {
	if strings.TrimSpace(cmd) == "" {
		return nil
	}

	// 避免重复添加相同的命令（只和上一条比较）
	if n := len(h.entries); n > 0 && h.entries[n-1].Command == cmd {
		return nil
	}

	e := Entry{Command: cmd, Timestamp: uint64(h.now().Unix())}
	h.push(e)
	if h.store != nil {
		if err := h.store.Append(e); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
	}
	return nil
}

// push 追加一条记录，满了先把所有记录左移一位淘汰第0条
func (h *History) push(e Entry) {
	if len(h.entries) >= h.maxSize {
		copy(h.entries, h.entries[1:])
		h.entries[len(h.entries)-1] = e
		return
	}
	h.entries = append(h.entries, e)
}

// Load 从持久化后端加载历史记录
// 加载时同样执行上限淘汰，但不会把读到的记录再写回去
func (h *History) Load() error {
	if h.store == nil {
		return nil
	}
	entries, err := h.store.Load()
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	for _, e := range entries {
		if e.Command == "" {
			continue
		}
		h.push(e)
	}
	return nil
}

// Get 获取指定索引的历史记录
func (h *History) Get(index int) (Entry, bool) {
	if index < 0 || index >= len(h.entries) {
		return Entry{}, false
	}
	return h.entries[index], true
}

// Entries 获取所有历史记录（从旧到新）
func (h *History) Entries() []Entry {
	return h.entries
}

// Len 获取历史记录数量
func (h *History) Len() int {
	return len(h.entries)
}

// MaxSize 获取上限
func (h *History) MaxSize() int {
	return h.maxSize
}

// Clear 清空内存中和持久化的历史记录
func (h *History) Clear() error {
	h.entries = h.entries[:0]
	if h.store != nil {
		return h.store.Clear()
	}
	return nil
}

// Close 关闭持久化后端
func (h *History) Close() error {
	if h.store != nil {
		return h.store.Close()
	}
	return nil
}

// GetSuggestion 从新到旧查找第一条以 prefix 开头且不等于 prefix 的命令
// 空前缀不给建议
func (h *History) GetSuggestion(prefix string) (string, bool) {
	if prefix == "" {
		return "", false
	}
	for i := len(h.entries) - 1; i >= 0; i-- {
		cmd := h.entries[i].Command
		if cmd != prefix && strings.HasPrefix(cmd, prefix) {
			return cmd, true
		}
	}
	return "", false
}

// Search 从 before（不包含）往旧查找包含 query 的命令，返回索引
// before 超出范围时从最新的一条开始
func (h *History) Search(query string, before int) (int, bool) {
	if before > len(h.entries) || before < 0 {
		before = len(h.entries)
	}
	for i := before - 1; i >= 0; i-- {
		if strings.Contains(h.entries[i].Command, query) {
			return i, true
		}
	}
	return -1, false
}

// Print 打印历史记录
func (h *History) Print(w io.Writer) {
	for i, e := range h.entries {
		fmt.Fprintf(w, "%5d  %s\n", i+1, e.Command)
	}
}
