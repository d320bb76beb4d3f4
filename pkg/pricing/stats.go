package pricing

import (
	"sort"
	"sync"
)

// Result labels used in lookup statistics
const (
	StatSuccess = "success"
	StatFailure = "failure"
	StatCache   = "cache"
)

// Stats tracks Pricing API lookups per instance type
type Stats struct {
	lock   sync.RWMutex
	counts map[string]map[string]int // instanceType -> {success, failure, cache}
}

// NewStats returns empty statistics
func NewStats() *Stats {
	return &Stats{counts: make(map[string]map[string]int)}
}

func (s *Stats) recordSuccess(instanceType string)  { s.update(instanceType, StatSuccess) }
func (s *Stats) recordFailure(instanceType string)  { s.update(instanceType, StatFailure) }
func (s *Stats) recordCacheHit(instanceType string) { s.update(instanceType, StatCache) }

func (s *Stats) update(instanceType, statType string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, exists := s.counts[instanceType]; !exists {
		s.counts[instanceType] = map[string]int{
			StatSuccess: 0,
			StatFailure: 0,
			StatCache:   0,
		}
	}

	s.counts[instanceType][statType]++
}

// Snapshot returns a copy of the current counters
func (s *Stats) Snapshot() map[string]map[string]int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	statsCopy := make(map[string]map[string]int, len(s.counts))
	for instanceType, counts := range s.counts {
		statsCopy[instanceType] = make(map[string]int, len(counts))
		for key, value := range counts {
			statsCopy[instanceType][key] = value
		}
	}

	return statsCopy
}

// InstanceTypes returns the looked-up instance types in sorted order
func (s *Stats) InstanceTypes() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	types := make([]string, 0, len(s.counts))
	for t := range s.counts {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Totals sums the counters across instance types
func (s *Stats) Totals() map[string]int {
	totals := map[string]int{StatSuccess: 0, StatFailure: 0, StatCache: 0}
	for _, counts := range s.Snapshot() {
		for key, value := range counts {
			totals[key] += value
		}
	}
	return totals
}
