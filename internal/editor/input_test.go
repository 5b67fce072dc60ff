package editor

import "testing"

func TestTransitionTableComplete(t *testing.T) {
	for s := InputState(0); s < numStates; s++ {
		for c := inputClass(0); c < numClasses; c++ {
			tr := transitions[s][c]
			if tr.action == 0 {
				t.Errorf("状态 %v 输入类别 %d 没有定义动作", s, c)
			}
			if tr.next < 0 || tr.next >= numStates {
				t.Errorf("状态 %v 输入类别 %d 转移到无效状态 %d", s, c, tr.next)
			}
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		b    byte
		want inputClass
	}{
		{0x1b, classEscape},
		{'[', classBracket},
		{'3', classParam},
		{';', classParam},
		{'A', classFinal},
		{'z', classFinal},
		{'~', classFinal},
		{'\r', classOther},
		{' ', classOther},
		{0xe4, classOther},
	}
	for _, tt := range tests {
		if got := classify(tt.b); got != tt.want {
			t.Errorf("classify(%q) = %d, 期望 %d", tt.b, got, tt.want)
		}
	}
}

func TestCSIParams(t *testing.T) {
	tests := []struct {
		input string
		want  byte
	}{
		{"3", '3'},
		{"15", 0},
		{"1;5", '1'},
		{"", 0},
		{";3", 0},
	}
	for _, tt := range tests {
		var p csiParams
		for i := 0; i < len(tt.input); i++ {
			p.add(tt.input[i])
		}
		if got := p.value(); got != tt.want {
			t.Errorf("参数 %q 得到 %q, 期望 %q", tt.input, got, tt.want)
		}
	}
}
