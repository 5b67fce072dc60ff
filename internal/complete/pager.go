// Package complete 实现 Tab 补全：候选列表（Pager）和补全引擎
package complete

// Candidate 一个补全候选
type Candidate struct {
	Display     string // 在列表中显示的文本
	Value       string // 接受时替换过滤词的文本
	Description string
}

// Pager 补全候选列表及选中状态
// 有候选时 active 为 true
type Pager struct {
	candidates []Candidate
	selected   int
	active     bool
	filter     string
}

// Set 替换候选列表，选中第一项
func (p *Pager) Set(filter string, candidates []Candidate) {
	p.filter = filter
	p.candidates = candidates
	p.selected = 0
	p.active = len(candidates) > 0
}

// Close 关闭列表
func (p *Pager) Close() {
	p.candidates = nil
	p.selected = 0
	p.active = false
	p.filter = ""
}

// Active 列表是否打开
func (p *Pager) Active() bool {
	return p.active
}

// Candidates 返回所有候选
func (p *Pager) Candidates() []Candidate {
	return p.candidates
}

// SelectedIndex 返回选中项的索引
func (p *Pager) SelectedIndex() int {
	return p.selected
}

// Selected 返回选中的候选
func (p *Pager) Selected() (Candidate, bool) {
	if !p.active {
		return Candidate{}, false
	}
	return p.candidates[p.selected], true
}

// Filter 返回正在补全的词
func (p *Pager) Filter() string {
	return p.filter
}

// FilterLen 返回过滤词的长度（字节）
func (p *Pager) FilterLen() int {
	return len(p.filter)
}

// Next 选中下一项，到末尾回到开头
func (p *Pager) Next() {
	if !p.active {
		return
	}
	p.selected = (p.selected + 1) % len(p.candidates)
}

// Prev 选中上一项，到开头回到末尾
func (p *Pager) Prev() {
	if !p.active {
		return
	}
	p.selected = (p.selected - 1 + len(p.candidates)) % len(p.candidates)
}

// Accept 用选中项替换光标前的过滤词，并关闭列表
func (p *Pager) Accept(buf string, cursor int) (string, int, bool) {
	c, ok := p.Selected()
	if !ok {
		return buf, cursor, false
	}
	start := cursor - p.FilterLen()
	if start < 0 || buf[start:cursor] != p.filter {
		// 缓冲区已和过滤词对不上，只在光标处插入
		start = cursor
	}
	p.Close()
	return buf[:start] + c.Value + buf[cursor:], start + len(c.Value), true
}
