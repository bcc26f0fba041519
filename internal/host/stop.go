package host

// StopCondition decides whether the run should stop before executing the tick
// with the given index. It is consulted only at tick boundaries, never
// mid-tick.
type StopCondition func(nextTick uint64) bool

// TickLimit returns a stop condition that allows exactly n ticks, indices
// 0 through n-1.
func TickLimit(n uint64) StopCondition {
	return func(nextTick uint64) bool {
		return nextTick >= n
	}
}
