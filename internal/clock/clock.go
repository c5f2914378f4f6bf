package clock

import "time"

// Clock gives a wall-clock reading and a monotonic reading in milliseconds.
type Clock interface {
	NowMillis() int64
	MonotonicMillis() int64
}

type systemClock struct {
	start time.Time
}

// System returns the process clock. Monotonic readings count from the moment
// System was called and do not follow wall-clock edits.
func System() Clock {
	return &systemClock{start: time.Now()}
}

func (c *systemClock) NowMillis() int64 {
	return time.Now().UnixMilli()
}

// time.Since uses the monotonic reading carried by start.
func (c *systemClock) MonotonicMillis() int64 {
	return time.Since(c.start).Milliseconds()
}

// Fixed always reports the same readings.
type Fixed struct {
	Wall int64
	Mono int64
}

func (f Fixed) NowMillis() int64       { return f.Wall }
func (f Fixed) MonotonicMillis() int64 { return f.Mono }
