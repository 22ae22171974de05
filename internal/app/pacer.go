package app

import "time"

// pacer spaces loop iterations a fixed interval apart. It absorbs the
// time each iteration itself took, so a slow generation does not stretch
// the cadence further.
type pacer struct {
	interval time.Duration
	next     time.Time
}

func newPacer(interval time.Duration) *pacer {
	p := &pacer{interval: interval}
	if interval > 0 {
		p.next = time.Now().Add(interval)
	}
	return p
}

// wait sleeps until the next point on the cadence. A zero or negative
// interval disables pacing. When the loop has fallen a full interval
// behind, the cadence restarts from now rather than bursting to catch up.
func (p *pacer) wait() {
	if p.interval <= 0 {
		return
	}
	now := time.Now()
	if p.next.After(now) {
		time.Sleep(p.next.Sub(now))
		p.next = p.next.Add(p.interval)
		return
	}
	p.next = now.Add(p.interval)
}
