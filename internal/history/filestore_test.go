package history

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseRecords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Entry
	}{
		{
			name:  "正常记录",
			input: "- cmd: ls\n  when: 1\n- cmd: pwd\n  when: 2\n",
			want:  []Entry{{"ls", 1}, {"pwd", 2}},
		},
		{
			name:  "缺少时间戳",
			input: "- cmd: ls\n- cmd: pwd\n  when: 2\n",
			want:  []Entry{{"ls", 0}, {"pwd", 2}},
		},
		{
			name:  "末尾写了一半",
			input: "- cmd: ls\n  when: 1\n- cmd: pw",
			want:  []Entry{{"ls", 1}},
		},
		{
			name:  "格式错误的行",
			input: "garbage\n  when: 5\n- cmd: ls\n  when: abc\n",
			want:  []Entry{{"ls", 0}},
		},
		{
			name:  "转义",
			input: "- cmd: echo a\\nb \\\\\n  when: 3\n",
			want:  []Entry{{"echo a\nb \\", 3}},
		},
		{
			name:  "空文件",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseRecords([]byte(tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("解析结果不符 (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatRecord(t *testing.T) {
	got := formatRecord(Entry{Command: "a\\b\nc", Timestamp: 42})
	want := "- cmd: a\\\\b\\nc\n  when: 42\n"
	if got != want {
		t.Errorf("formatRecord = %q, 期望 %q", got, want)
	}
}
