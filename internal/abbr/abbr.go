// Package abbr 提供缩写表：整词缩写在单词边界处展开
package abbr

import (
	"sort"
	"strings"
)

// Table 缩写表，键到展开文本的映射
// 重复添加同一个键时后写入的生效
type Table struct {
	entries map[string]string
}

// New 创建空的缩写表
func New() *Table {
	return &Table{entries: make(map[string]string)}
}

// Add 添加或覆盖缩写
func (t *Table) Add(name, expansion string) {
	t.entries[name] = expansion
}

// Remove 删除缩写，返回是否存在
func (t *Table) Remove(name string) bool {
	if _, ok := t.entries[name]; !ok {
		return false
	}
	delete(t.entries, name)
	return true
}

// Get 查找缩写
func (t *Table) Get(name string) (string, bool) {
	exp, ok := t.entries[name]
	return exp, ok
}

// Len 返回缩写数量
func (t *Table) Len() int {
	return len(t.entries)
}

// Names 返回按字母排序的所有缩写名
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Expand 展开光标左边紧挨着的单词
// 单词按原样精确查找；命中时在原位置替换为展开文本，光标按长度差前移
func (t *Table) Expand(buf string, cursor int) (string, int, bool) {
	if cursor < 0 || cursor > len(buf) {
		return buf, cursor, false
	}
	start := WordStart(buf, cursor)
	word := buf[start:cursor]
	if word == "" {
		return buf, cursor, false
	}
	exp, ok := t.entries[word]
	if !ok {
		return buf, cursor, false
	}
	return buf[:start] + exp + buf[cursor:], cursor + len(exp) - len(word), true
}

// WordStart 返回光标左边以空白分隔的单词的起始位置
func WordStart(buf string, cursor int) int {
	i := strings.LastIndexAny(buf[:cursor], " \t\n")
	return i + 1
}
