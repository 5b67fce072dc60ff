package complete

import "testing"

func TestPagerActive(t *testing.T) {
	var p Pager
	p.Set("x", nil)
	if p.Active() {
		t.Error("没有候选时 pager 不应打开")
	}
	p.Set("x", []Candidate{{Value: "xa"}})
	if !p.Active() {
		t.Error("有候选时 pager 应打开")
	}
	p.Close()
	if p.Active() || len(p.Candidates()) != 0 {
		t.Error("Close 后 pager 应关闭且清空")
	}
}

func TestPagerNavigation(t *testing.T) {
	var p Pager
	p.Set("a", []Candidate{{Value: "a1"}, {Value: "a2"}, {Value: "a3"}})

	p.Prev()
	if p.SelectedIndex() != 2 {
		t.Errorf("从第一项往前应回到末尾，实际 %d", p.SelectedIndex())
	}
	p.Next()
	if p.SelectedIndex() != 0 {
		t.Errorf("从末尾往后应回到开头，实际 %d", p.SelectedIndex())
	}
	p.Next()
	c, ok := p.Selected()
	if !ok || c.Value != "a2" {
		t.Errorf("选中项应为 a2，实际 %q", c.Value)
	}
}

func TestPagerAccept(t *testing.T) {
	tests := []struct {
		name       string
		buf        string
		cursor     int
		filter     string
		value      string
		wantBuf    string
		wantCursor int
	}{
		{"替换末尾的词", "cd ./sr", 7, "./sr", "./src/", "cd ./src/", 9},
		{"光标后保留", "ls gi foo", 5, "gi", "git", "ls git foo", 6},
		{"过滤词对不上", "ls x", 4, "abc", "abcd", "ls xabcd", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Pager
			p.Set(tt.filter, []Candidate{{Value: tt.value}})
			buf, cursor, ok := p.Accept(tt.buf, tt.cursor)
			if !ok || buf != tt.wantBuf || cursor != tt.wantCursor {
				t.Errorf("Accept = %q, %d, %v; 期望 %q, %d", buf, cursor, ok, tt.wantBuf, tt.wantCursor)
			}
			if p.Active() {
				t.Error("Accept 后 pager 应关闭")
			}
		})
	}
}
