package reverb

import (
	"math"
	"sync/atomic"
)

// paramStore holds the user-facing parameters. Each value lives in a single
// atomic word so a control goroutine can store while the audio goroutine
// loads, without locks and without torn reads. Every store bumps the epoch;
// the audio goroutine refreshes derived coefficients only when the epoch
// moved since its last snapshot.
type paramStore struct {
	damping  atomic.Uint64
	roomSize atomic.Uint64
	wet      atomic.Uint64
	width    atomic.Uint64
	frozen   atomic.Bool
	epoch    atomic.Uint64
}

// paramSnapshot is a coherent-enough copy for one coefficient refresh.
// Individual fields are each read atomically; a setter landing mid-snapshot
// bumps the epoch again and triggers another refresh on the next sample.
type paramSnapshot struct {
	damping  float64
	roomSize float64
	wet      float64
	width    float64
	frozen   bool
}

func storeFloat(dst *atomic.Uint64, v float64) {
	dst.Store(math.Float64bits(v))
}

func loadFloat(src *atomic.Uint64) float64 {
	return math.Float64frombits(src.Load())
}

func (p *paramStore) setDamping(v float64) {
	storeFloat(&p.damping, v)
	p.epoch.Add(1)
}

func (p *paramStore) setRoomSize(v float64) {
	storeFloat(&p.roomSize, v)
	p.epoch.Add(1)
}

func (p *paramStore) setWet(v float64) {
	storeFloat(&p.wet, v)
	p.epoch.Add(1)
}

func (p *paramStore) setWidth(v float64) {
	storeFloat(&p.width, v)
	p.epoch.Add(1)
}

func (p *paramStore) setFrozen(v bool) {
	p.frozen.Store(v)
	p.epoch.Add(1)
}

func (p *paramStore) snapshot() paramSnapshot {
	return paramSnapshot{
		damping:  loadFloat(&p.damping),
		roomSize: loadFloat(&p.roomSize),
		wet:      loadFloat(&p.wet),
		width:    loadFloat(&p.width),
		frozen:   p.frozen.Load(),
	}
}
