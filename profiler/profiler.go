package profiler

import (
	"sort"
	"sync"
	"time"

	"github.com/PlakarKorp/ftype/logging"
)

type Profiler struct {
	muProfiler sync.Mutex

	events            map[string]bool
	eventDurations    map[string]time.Duration
	eventDurationsMin map[string]time.Duration
	eventDurationsMax map[string]time.Duration

	eventCounts map[string]uint64
}

type Stats struct {
	Event string
	Calls uint64
	Min   time.Duration
	Avg   time.Duration
	Max   time.Duration
	Total time.Duration
}

func NewProfiler() *Profiler {
	return &Profiler{
		events:            make(map[string]bool),
		eventDurations:    make(map[string]time.Duration),
		eventDurationsMin: make(map[string]time.Duration),
		eventDurationsMax: make(map[string]time.Duration),
		eventCounts:       make(map[string]uint64),
	}
}

func (p *Profiler) RecordEvent(event string, duration time.Duration) {
	p.muProfiler.Lock()
	defer p.muProfiler.Unlock()

	if _, exists := p.events[event]; !exists {
		p.events[event] = true
		p.eventDurations[event] = 0
		p.eventDurationsMin[event] = duration
		p.eventDurationsMax[event] = duration
		p.eventCounts[event] = 0
	}

	p.eventDurations[event] += duration
	if duration < p.eventDurationsMin[event] {
		p.eventDurationsMin[event] = duration
	}
	if duration > p.eventDurationsMax[event] {
		p.eventDurationsMax[event] = duration
	}
	p.eventCounts[event] += 1
}

// Time records the time elapsed since t0 under event, meant to be deferred.
func (p *Profiler) Time(event string, t0 time.Time) {
	p.RecordEvent(event, time.Since(t0))
}

// Stats returns one entry per recorded event, sorted by event name.
func (p *Profiler) Stats() []Stats {
	p.muProfiler.Lock()
	defer p.muProfiler.Unlock()

	ret := make([]Stats, 0, len(p.events))
	for event := range p.events {
		count := p.eventCounts[event]
		ret = append(ret, Stats{
			Event: event,
			Calls: count,
			Min:   p.eventDurationsMin[event],
			Avg:   time.Duration(uint64(p.eventDurations[event]) / count),
			Max:   p.eventDurationsMax[event],
			Total: p.eventDurations[event],
		})
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Event < ret[j].Event
	})
	return ret
}

func (p *Profiler) Display(logger *logging.Logger) {
	for _, s := range p.Stats() {
		logger.Profile("%s: calls=%d, min=%s, avg=%s, max=%s, total=%s", s.Event, s.Calls, s.Min, s.Avg, s.Max, s.Total)
	}
}
