package highlight

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func known(names ...string) Lookup {
	set := make(map[string]bool)
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Span
	}{
		{
			name: "管道和重定向",
			line: "ls -la | grep foo > out.txt &",
			want: []Span{
				{0, 2, ClassCommand},
				{3, 6, ClassOption},
				{7, 8, ClassOperator},
				{9, 13, ClassCommand},
				{14, 17, ClassArgument},
				{18, 19, ClassRedirect},
				{20, 27, ClassRedirect},
				{28, 29, ClassOperator},
			},
		},
		{
			name: "未知命令",
			line: "nosuch 'a b'",
			want: []Span{
				{0, 6, ClassErrorCommand},
				{7, 12, ClassQuoted},
			},
		},
		{
			name: "分号后是命令",
			line: "cd /tmp; ls",
			want: []Span{
				{0, 2, ClassCommand},
				{3, 7, ClassArgument},
				{7, 8, ClassOperator},
				{9, 11, ClassCommand},
			},
		},
		{
			name: "未闭合引号",
			line: `echo "unterminated`,
			want: []Span{{0, 18, ClassError}},
		},
		{
			name: "空行",
			line: "",
			want: nil,
		},
	}

	lookup := known("ls", "grep", "cd", "echo")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Highlight(tt.line, lookup)); diff != "" {
				t.Errorf("着色不符 (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender(t *testing.T) {
	line := "ls -l"
	got := Render(line, Highlight(line, known("ls")))
	want := "\x1b[34mls\x1b[0m \x1b[36m-l\x1b[0m"
	if got != want {
		t.Errorf("Render = %q, 期望 %q", got, want)
	}

	if got := Render("abc", nil); got != "abc" {
		t.Errorf("没有区间时应原样返回，得到 %q", got)
	}
	if Dim("") != "" {
		t.Error("空字符串不应加 SGR")
	}
}

func TestClassString(t *testing.T) {
	if ClassErrorCommand.String() != "error-command" || Class(99).String() != "unknown" {
		t.Error("Class.String 不符")
	}
}
