package hud

import "time"

// FPSCounter tracks frame times over a five second window.
type FPSCounter struct {
	frames []time.Duration
	total  time.Duration
	last   time.Duration
}

const fpsWindow = 5 * time.Second

// Tick records one frame that took dt.
func (c *FPSCounter) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}
	c.last = dt
	c.frames = append(c.frames, dt)
	c.total += dt
	for len(c.frames) > 1 && c.total-c.frames[0] >= fpsWindow {
		c.total -= c.frames[0]
		c.frames = c.frames[1:]
	}
}

// Stats returns the current, one second and five second frame rates.
func (c *FPSCounter) Stats() FPSStats {
	return FPSStats{
		Current: rate(1, c.last),
		Avg1s:   c.average(time.Second),
		Avg5s:   c.average(fpsWindow),
	}
}

// average counts frames backwards from the newest until span is covered.
func (c *FPSCounter) average(span time.Duration) float32 {
	var n int
	var sum time.Duration
	for i := len(c.frames) - 1; i >= 0 && sum < span; i-- {
		sum += c.frames[i]
		n++
	}
	return rate(n, sum)
}

func rate(frames int, d time.Duration) float32 {
	if d <= 0 {
		return 0
	}
	return float32(float64(frames) / d.Seconds())
}
