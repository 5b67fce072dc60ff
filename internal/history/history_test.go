package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func commands(h *History) []string {
	var out []string
	for _, e := range h.Entries() {
		out = append(out, e.Command)
	}
	return out
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name    string
		maxSize int
		input   []string
		want    []string
	}{
		{"空命令忽略", 10, []string{"", "  ", "ls"}, []string{"ls"}},
		{"相邻去重", 10, []string{"ls", "ls", "pwd", "ls"}, []string{"ls", "pwd", "ls"}},
		{"超过上限淘汰最老", 3, []string{"a", "b", "c", "d", "e"}, []string{"c", "d", "e"}},
		{"上限为1", 1, []string{"a", "b"}, []string{"b"}},
		{"文本原样保存", 10, []string{"ls  ", "ls", " ls", " ls"}, []string{"ls  ", "ls", " ls"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(tt.maxSize, nil)
			for _, cmd := range tt.input {
				if err := h.Add(cmd); err != nil {
					t.Fatalf("Add(%q) 返回错误: %v", cmd, err)
				}
			}
			if diff := cmp.Diff(tt.want, commands(h)); diff != "" {
				t.Errorf("历史记录不符 (-want +got):\n%s", diff)
			}
			if h.Len() > tt.maxSize {
				t.Errorf("历史长度 %d 超过上限 %d", h.Len(), tt.maxSize)
			}
		})
	}
}

func TestDefaultMaxSize(t *testing.T) {
	h := NewHistory(0, nil)
	if h.MaxSize() != DefaultMaxSize {
		t.Errorf("默认上限应为 %d，实际为 %d", DefaultMaxSize, h.MaxSize())
	}
}

func TestGetSuggestion(t *testing.T) {
	h := NewHistory(10, nil)
	for _, cmd := range []string{"git status", "git commit -m x", "ls -la", "git"} {
		h.Add(cmd)
	}

	tests := []struct {
		prefix string
		want   string
		ok     bool
	}{
		{"git", "git commit -m x", true},
		{"git s", "git status", true},
		{"ls", "ls -la", true},
		{"ls -la", "", false},
		{"cargo", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := h.GetSuggestion(tt.prefix)
		if got != tt.want || ok != tt.ok {
			t.Errorf("GetSuggestion(%q) = %q, %v; 期望 %q, %v", tt.prefix, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSearch(t *testing.T) {
	h := NewHistory(10, nil)
	for _, cmd := range []string{"make build", "ls", "make test", "pwd"} {
		h.Add(cmd)
	}

	i, ok := h.Search("make", h.Len())
	if !ok || i != 2 {
		t.Fatalf("第一次搜索应命中索引 2，实际 %d, %v", i, ok)
	}
	i, ok = h.Search("make", i)
	if !ok || i != 0 {
		t.Fatalf("第二次搜索应命中索引 0，实际 %d, %v", i, ok)
	}
	if _, ok = h.Search("make", i); ok {
		t.Error("没有更旧的匹配时应返回 false")
	}
}

func TestWalker(t *testing.T) {
	h := NewHistory(10, nil)
	for _, cmd := range []string{"git add .", "ls", "git push", "pwd"} {
		h.Add(cmd)
	}

	w := h.NewWalker("git")
	steps := []struct {
		prev bool
		want string
		ok   bool
	}{
		{true, "git push", true},
		{true, "git add .", true},
		{true, "", false},
		{false, "git push", true},
		{false, "git", false},
		{false, "git", false},
	}
	for i, s := range steps {
		var got string
		var ok bool
		if s.prev {
			got, ok = w.Prev()
		} else {
			got, ok = w.Next()
		}
		if got != s.want || ok != s.ok {
			t.Errorf("第 %d 步得到 %q, %v; 期望 %q, %v", i, got, ok, s.want, s.ok)
		}
	}
	// 回到起点后再向上应重新得到最新的匹配
	if got, ok := w.Prev(); got != "git push" || !ok {
		t.Errorf("回到起点后 Prev 得到 %q, %v", got, ok)
	}
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "history")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore 失败: %v", err)
	}

	h := NewHistory(10, store)
	h.now = func() time.Time { return time.Unix(1700000000, 0) }
	for _, cmd := range []string{"echo a", "printf 'x\\ny'", "ls"} {
		if err := h.Add(cmd); err != nil {
			t.Fatalf("Add 失败: %v", err)
		}
	}

	// 上限为2时加载只保留最新的两条
	loaded := NewHistory(2, store)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if diff := cmp.Diff([]string{"printf 'x\\ny'", "ls"}, commands(loaded)); diff != "" {
		t.Errorf("加载结果不符 (-want +got):\n%s", diff)
	}
	if loaded.Entries()[1].Timestamp != 1700000000 {
		t.Errorf("时间戳应为 1700000000，实际 %d", loaded.Entries()[1].Timestamp)
	}

	// Load 不应重新写入
	again, _ := store.Load()
	if len(again) != 3 {
		t.Errorf("文件中应有 3 条记录，实际 %d", len(again))
	}

	if err := loaded.Clear(); err != nil {
		t.Fatalf("Clear 失败: %v", err)
	}
	again, _ = store.Load()
	if loaded.Len() != 0 || len(again) != 0 {
		t.Errorf("Clear 后应为空，内存 %d 条，文件 %d 条", loaded.Len(), len(again))
	}
}

func TestLoadMissingFile(t *testing.T) {
	store, _ := NewFileStore(filepath.Join(t.TempDir(), "none"))
	h := NewHistory(10, store)
	if err := h.Load(); err != nil {
		t.Errorf("文件不存在时不应报错: %v", err)
	}
	if h.Len() != 0 {
		t.Errorf("应为空，实际 %d 条", h.Len())
	}
}
