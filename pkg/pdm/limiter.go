package pdm

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiters hands out one token bucket per caller (client IP or gRPC
// peer). Buckets idle for longer than idleTTL are dropped by Sweep.
type ClientLimiters struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	overrides map[string]rate.Limit
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	now       func() time.Time
}

func NewClientLimiters(r rate.Limit, burst int) *ClientLimiters {
	return &ClientLimiters{
		clients:   make(map[string]*clientLimiter),
		overrides: make(map[string]rate.Limit),
		rate:      r,
		burst:     burst,
		idleTTL:   10 * time.Minute,
		now:       time.Now,
	}
}

// Get returns the bucket for clientID, creating it on first use.
func (s *ClientLimiters) Get(clientID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[clientID]
	if !ok {
		r := s.rate
		if o, found := s.overrides[clientID]; found {
			r = o
		}
		c = &clientLimiter{limiter: rate.NewLimiter(r, s.burst)}
		s.clients[clientID] = c
	}
	c.lastSeen = s.now()
	return c.limiter
}

func (s *ClientLimiters) Allow(clientID string) bool {
	return s.Get(clientID).Allow()
}

// SetRate pins clientID to r with burst, replacing any existing bucket.
func (s *ClientLimiters) SetRate(clientID string, r rate.Limit, burst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[clientID] = r
	s.clients[clientID] = &clientLimiter{limiter: rate.NewLimiter(r, burst), lastSeen: s.now()}
}

// Sweep drops idle buckets and returns how many were removed.
func (s *ClientLimiters) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTTL)
	removed := 0
	for id, c := range s.clients {
		if _, pinned := s.overrides[id]; pinned {
			continue
		}
		if c.lastSeen.Before(cutoff) {
			delete(s.clients, id)
			removed++
		}
	}
	return removed
}

func (s *ClientLimiters) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
