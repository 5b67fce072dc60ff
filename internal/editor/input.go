package editor

import "github.com/chzyer/readline"

// InputState 转义序列状态机的状态
type InputState int

const (
	StateNormal InputState = iota
	StateEscape            // 读到 ESC
	StateCSI               // 读到 ESC [
	numStates
)

func (s InputState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateEscape:
		return "escape"
	case StateCSI:
		return "csi"
	}
	return "unknown"
}

// inputClass 输入字节的分类
type inputClass int

const (
	classEscape  inputClass = iota // ESC
	classBracket                   // [
	classParam                     // 数字和 ;
	classFinal                     // 字母和 ~
	classOther
	numClasses
)

func classify(b byte) inputClass {
	switch {
	case b == readline.CharEsc:
		return classEscape
	case b == '[':
		return classBracket
	case b >= '0' && b <= '9', b == ';':
		return classParam
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b == '~':
		return classFinal
	}
	return classOther
}

// action 状态转移时执行的动作，零值表示未定义
type action int

const (
	actPlain       action = iota + 1 // 普通按键
	actEscape                        // 记下 ESC
	actStrayEscape                   // 连续两个 ESC，前一个当作单独的 ESC
	actEnterCSI                      // 开始 CSI 序列
	actAltKey                        // ESC 加普通键
	actCSIParam                      // 记录参数
	actCSIFinal                      // 按结束字节分派
	actCSIAbort                      // 无法识别的序列，丢弃
)

type transition struct {
	next   InputState
	action action
}

// transitions 覆盖每一个（状态，输入类别）组合
var transitions = [numStates][numClasses]transition{
	StateNormal: {
		classEscape:  {StateEscape, actEscape},
		classBracket: {StateNormal, actPlain},
		classParam:   {StateNormal, actPlain},
		classFinal:   {StateNormal, actPlain},
		classOther:   {StateNormal, actPlain},
	},
	StateEscape: {
		classEscape:  {StateEscape, actStrayEscape},
		classBracket: {StateCSI, actEnterCSI},
		classParam:   {StateNormal, actAltKey},
		classFinal:   {StateNormal, actAltKey},
		classOther:   {StateNormal, actAltKey},
	},
	StateCSI: {
		classEscape:  {StateEscape, actEscape},
		classBracket: {StateNormal, actCSIAbort},
		classParam:   {StateCSI, actCSIParam},
		classFinal:   {StateNormal, actCSIFinal},
		classOther:   {StateNormal, actCSIAbort},
	},
}

// csiParams 记录 CSI 序列的第一个参数
// 只有一位数字时才有效，例如 ESC [ 3 ~ 中的 3
type csiParams struct {
	digit  byte
	count  int
	closed bool // 读到 ; 之后的数字忽略
}

func (p *csiParams) reset() {
	*p = csiParams{}
}

func (p *csiParams) add(b byte) {
	if b == ';' {
		p.closed = true
		return
	}
	if p.closed {
		return
	}
	p.count++
	p.digit = b
}

// value 返回唯一的参数数字，没有或多于一位时返回 0
func (p *csiParams) value() byte {
	if p.count != 1 {
		return 0
	}
	return p.digit
}
