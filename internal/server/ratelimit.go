package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimits bound API traffic per window. A zero field falls back to its
// default; a negative one disables that limit.
type RateLimits struct {
	PerPlayer int
	PerIP     int
	Window    time.Duration
}

func (l RateLimits) withDefaults() RateLimits {
	if l.PerPlayer == 0 {
		l.PerPlayer = defaultRequestsPerPlayer
	}
	if l.PerIP == 0 {
		l.PerIP = defaultRequestsPerIP
	}
	if l.Window <= 0 {
		l.Window = defaultWindow
	}
	return l
}

// ActivityMonitor counts API requests per player and per client address,
// and failed admin logins per address, over a fixed window.
type ActivityMonitor struct {
	limits RateLimits
	now    func() time.Time

	mu          sync.Mutex
	windowStart time.Time
	byPlayer    map[string]int
	byIP        map[string]int
	failedAuth  map[string]int
}

// NewActivityMonitor creates a monitor with the given limits.
func NewActivityMonitor(limits RateLimits) *ActivityMonitor {
	m := &ActivityMonitor{
		limits: limits.withDefaults(),
		now:    time.Now,
	}
	m.reset(m.now())
	return m
}

func (m *ActivityMonitor) reset(now time.Time) {
	m.windowStart = now
	m.byPlayer = make(map[string]int)
	m.byIP = make(map[string]int)
	m.failedAuth = make(map[string]int)
}

// rollWindow must be called with mu held.
func (m *ActivityMonitor) rollWindow() time.Time {
	now := m.now()
	if now.Sub(m.windowStart) >= m.limits.Window {
		m.reset(now)
	}
	return now
}

// Allow records one request and reports whether it is within limits. When it
// is not, retryAfter is the time left in the current window.
func (m *ActivityMonitor) Allow(playerID, ip string) (ok bool, retryAfter time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.rollWindow()
	retryAfter = m.limits.Window - now.Sub(m.windowStart)

	m.byIP[ip]++
	if over(m.byIP[ip], m.limits.PerIP) {
		m.alertRate("ip", ip, m.byIP[ip])
		return false, retryAfter
	}
	if playerID == "" {
		return true, 0
	}

	m.byPlayer[playerID]++
	if over(m.byPlayer[playerID], m.limits.PerPlayer) {
		m.alertRate("player_id", playerID, m.byPlayer[playerID])
		return false, retryAfter
	}
	return true, 0
}

// RecordFailedAuth counts a rejected admin key and alerts past the threshold.
func (m *ActivityMonitor) RecordFailedAuth(ip string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rollWindow()
	m.failedAuth[ip]++
	if m.failedAuth[ip] >= failedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", m.failedAuth[ip])
	}
}

// alertRate logs the first rejection and every hundredth after it.
func (m *ActivityMonitor) alertRate(kind, key string, count int) {
	limit := m.limits.PerIP
	if kind == "player_id" {
		limit = m.limits.PerPlayer
	}
	if (count-limit-1)%rateAlertEvery == 0 {
		slog.Warn(SecurityAlertHighRate, kind, key, "count_in_window", count)
	}
}

func over(count, limit int) bool {
	return limit > 0 && count > limit
}

// RateLimitMiddleware throttles API traffic. The player is taken from the
// player_id query parameter, or from the JSON body of a write, which is
// replayed unchanged for the handler.
func RateLimitMiddleware(trustedProxies []string, monitor *ActivityMonitor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, retryAfter := monitor.Allow(playerIDOf(r), extractIP(r, trustedProxies))
			if !ok {
				secs := int(math.Ceil(retryAfter.Seconds()))
				w.Header().Set(HeaderRetryAfter, strconv.Itoa(max(secs, 1)))
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// playerIDOf finds the requesting player without consuming the body.
func playerIDOf(r *http.Request) string {
	if id := r.URL.Query().Get(playerIDParam); id != "" {
		return id
	}
	if r.Body == nil || r.Body == http.NoBody || r.Method == http.MethodGet {
		return ""
	}

	raw, err := io.ReadAll(r.Body)
	r.Body = replayBody{Reader: io.MultiReader(bytes.NewReader(raw), errReader{err}), Closer: r.Body}
	if err != nil {
		return ""
	}

	var peek struct {
		PlayerID string `json:"player_id"`
	}
	if json.Unmarshal(raw, &peek) != nil {
		return ""
	}
	return peek.PlayerID
}

type replayBody struct {
	io.Reader
	io.Closer
}

// errReader replays a read error after the buffered bytes, so body limits
// still surface to the handler.
type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) {
	if e.err == nil {
		return 0, io.EOF
	}
	return 0, e.err
}
