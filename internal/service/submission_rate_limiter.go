package service

import (
	"net"
	"strings"
	"sync"
	"time"
)

// DefaultSubmitKeyPrefix es el prefijo de las claves Redis del limiter de entregas.
const DefaultSubmitKeyPrefix = "quiz:submit:rl:"

// SubmissionRateLimiter limita la frecuencia de entregas por clave (IP del cliente).
type SubmissionRateLimiter interface {
	Allow(key string) bool
}

type memorySubmissionRateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
	now    func() time.Time
	swept  time.Time
}

// NewSubmissionRateLimiter crea un rate limiter en memoria de ventana deslizante.
func NewSubmissionRateLimiter(window time.Duration, max int) SubmissionRateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &memorySubmissionRateLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (l *memorySubmissionRateLimiter) Allow(key string) bool {
	key = clientBucket(key)
	if key == "" {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	cutoff := now.Add(-l.window)
	entries := l.hits[key]
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	l.hits[key] = append(kept, now)
	l.sweep(cutoff)
	return true
}

// sweep elimina claves sin hits dentro de la ventana, como mucho una vez por ventana.
func (l *memorySubmissionRateLimiter) sweep(cutoff time.Time) {
	if l.swept.After(cutoff) {
		return
	}
	l.swept = cutoff.Add(l.window)
	for k, entries := range l.hits {
		if len(entries) == 0 || !entries[len(entries)-1].After(cutoff) {
			delete(l.hits, k)
		}
	}
}

// clientBucket agrupa claves de cliente: IPv4 tal cual, IPv6 por prefijo /64
// (un mismo hogar rota direcciones dentro del /64). Otras claves se normalizan
// a minusculas.
func clientBucket(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return ""
	}
	host := key
	if h, _, err := net.SplitHostPort(key); err == nil {
		host = h
	}
	ip := net.ParseIP(strings.Trim(host, "[]"))
	if ip == nil {
		return key
	}
	if v4 := ip.To4(); v4 != nil {
		return v4.String()
	}
	return ip.Mask(net.CIDRMask(64, 128)).String() + "/64"
}
