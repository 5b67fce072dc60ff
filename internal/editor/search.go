package editor

import "github.com/chzyer/readline"

// search 反向搜索历史的状态
type search struct {
	query       string
	match       int // 当前匹配的历史索引，-1 表示还没有匹配
	failed      bool
	saved       string
	savedCursor int
}

// startSearch 进入反向搜索，已在搜索中时查找更旧的匹配
func (e *Editor) startSearch() {
	e.st.Pager.Close()
	if e.search == nil {
		e.search = &search{match: -1, saved: e.buf, savedCursor: e.cursor}
		return
	}
	e.searchOlder()
}

// feedSearch 处理搜索模式下的输入，返回 false 表示字节还要按普通方式处理
func (e *Editor) feedSearch(b byte) bool {
	s := e.search
	switch {
	case b == readline.CharBckSearch:
		e.searchOlder()
	case b == readline.CharInterrupt || b == readline.CharBell:
		e.buf, e.cursor = s.saved, s.savedCursor
		e.search = nil
	case b == readline.CharEnter || b == readline.CharCtrlJ:
		e.acceptSearch()
	case b == readline.CharBackspace || b == readline.CharCtrlH:
		if s.query != "" {
			s.query = s.query[:len(s.query)-1]
			e.searchFrom(e.st.History.Len())
		}
	case b >= 0x20:
		s.query += string([]byte{b})
		e.searchFrom(e.st.History.Len())
	default:
		// ESC、方向键和其他控制键：接受匹配后继续处理
		e.acceptSearch()
		return false
	}
	return true
}

func (e *Editor) searchOlder() {
	before := e.search.match
	if before < 0 {
		before = e.st.History.Len()
	}
	e.searchFrom(before)
}

// searchFrom 从 before 往旧查找包含查询串的命令
func (e *Editor) searchFrom(before int) {
	s := e.search
	if s.query == "" {
		s.match = -1
		s.failed = false
		e.buf, e.cursor = s.saved, s.savedCursor
		return
	}
	idx, ok := e.st.History.Search(s.query, before)
	if !ok {
		s.failed = true
		return
	}
	entry, _ := e.st.History.Get(idx)
	s.match = idx
	s.failed = false
	e.SetBuffer(entry.Command)
}

func (e *Editor) acceptSearch() {
	e.search = nil
	e.cursor = len(e.buf)
	e.walker = nil
}
