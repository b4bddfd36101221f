package editor

import (
	"time"

	"github.com/gogpu/glyphmesh/geom"
)

// Multi-click defaults.
const (
	DefaultClickInterval = 250 * time.Millisecond

	// clickSlop is how far, in window pixels, the pointer may move between
	// presses of one multi-click.
	clickSlop = 4.0
)

// clickCounter counts consecutive presses close in time and space.
type clickCounter struct {
	interval time.Duration
	last     time.Time
	lastPos  geom.Point
	count    int
}

// press records a press at p and returns the click count it completes.
func (c *clickCounter) press(now time.Time, p geom.Point) int {
	if c.count > 0 && now.Sub(c.last) <= c.interval && p.Distance(c.lastPos) <= clickSlop {
		c.count++
	} else {
		c.count = 1
	}
	c.last, c.lastPos = now, p
	return c.count
}
