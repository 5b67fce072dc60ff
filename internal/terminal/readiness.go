package terminal

// Readiness 等待输入的结果
type Readiness int

const (
	Timeout Readiness = iota
	Ready
)

func (r Readiness) String() string {
	if r == Ready {
		return "ready"
	}
	return "timeout"
}
