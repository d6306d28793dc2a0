package status

import (
	"fmt"
	"sync"
	"sync/atomic"
)

type sections struct {
	m        sync.Mutex
	sections map[string]*Section
}

var s = sections{
	sections: make(map[string]*Section),
}

// Section represents a grouping of Counters and Ratios.
type Section struct {
	Name string

	Counters map[string]*Counter
	Ratios   map[string]*Ratio

	m sync.Mutex
}

// NewSection builds a new Section with the provided name.
func NewSection(name string) *Section {
	s.m.Lock()
	defer s.m.Unlock()

	var exists bool
	var section *Section
	if section, exists = s.sections[name]; !exists {
		section = &Section{
			Name:     name,
			Counters: make(map[string]*Counter),
			Ratios:   make(map[string]*Ratio),
		}
		s.sections[name] = section
	}
	return section
}

// Counter creates a new counter with the provided name.
func (s *Section) Counter(name string) *Counter {
	s.m.Lock()
	defer s.m.Unlock()

	if counter, exists := s.Counters[name]; exists {
		return counter
	}
	counter := &Counter{Name: name}
	s.Counters[name] = counter
	return counter
}

// Ratio creates a new ratio with the provided name.
func (s *Section) Ratio(name string) *Ratio {
	s.m.Lock()
	defer s.m.Unlock()

	if ratio, exists := s.Ratios[name]; exists {
		return ratio
	}
	ratio := &Ratio{Name: name}
	s.Ratios[name] = ratio
	return ratio
}

// Counter tracks a monotonically increasing count.
type Counter struct {
	Name  string
	value int64
}

// Add increments the counter by n.
func (c *Counter) Add(n int64) {
	atomic.AddInt64(&c.value, n)
}

// GetValue returns the current count.
func (c *Counter) GetValue() int64 {
	return atomic.LoadInt64(&c.value)
}

// Ratio tracks hits against total attempts.
type Ratio struct {
	Name   string
	hits   int64
	misses int64
}

// Hit records a success.
func (r *Ratio) Hit() {
	atomic.AddInt64(&r.hits, 1)
}

// Miss records a failure.
func (r *Ratio) Miss() {
	atomic.AddInt64(&r.misses, 1)
}

// Value returns the hit ratio in [0, 1], or 0 if nothing was recorded.
func (r *Ratio) Value() float64 {
	hits := atomic.LoadInt64(&r.hits)
	total := hits + atomic.LoadInt64(&r.misses)
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

func (r *Ratio) String() string {
	hits := atomic.LoadInt64(&r.hits)
	total := hits + atomic.LoadInt64(&r.misses)
	return fmt.Sprintf("%.2f (%d of %d)", r.Value(), hits, total)
}
