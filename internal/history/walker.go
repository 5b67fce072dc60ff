package history

import "strings"

// Walker 按前缀浏览历史记录（上下方向键）
// 新建时游标位于最新一条之后
type Walker struct {
	h      *History
	prefix string
	index  int
}

// NewWalker 以 prefix 为匹配前缀创建浏览器
func (h *History) NewWalker(prefix string) *Walker {
	return &Walker{h: h, prefix: prefix, index: len(h.entries)}
}

// Prev 移动到更旧的匹配记录
// 没有更旧的匹配时位置不变，返回 false
func (w *Walker) Prev() (string, bool) {
	for i := w.index - 1; i >= 0; i-- {
		if strings.HasPrefix(w.h.entries[i].Command, w.prefix) {
			w.index = i
			return w.h.entries[i].Command, true
		}
	}
	return "", false
}

// Next 移动到更新的匹配记录
// 越过最新的匹配时回到起点，返回保存的前缀和 false
func (w *Walker) Next() (string, bool) {
	for i := w.index + 1; i < len(w.h.entries); i++ {
		if strings.HasPrefix(w.h.entries[i].Command, w.prefix) {
			w.index = i
			return w.h.entries[i].Command, true
		}
	}
	w.index = len(w.h.entries)
	return w.prefix, false
}
