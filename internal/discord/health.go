package discord

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

const healthProbeTimeout = 2 * time.Second

// Stats counts the slash commands the bot has dispatched
type Stats struct {
	started  time.Time
	commands atomic.Int64
	lastNano atomic.Int64
}

// NewStats starts the uptime clock
func NewStats() *Stats {
	return &Stats{started: time.Now()}
}

// Record notes one dispatched command
func (s *Stats) Record(at time.Time) {
	s.commands.Add(1)
	s.lastNano.Store(at.UnixNano())
}

// Commands is the number of commands dispatched so far
func (s *Stats) Commands() int64 { return s.commands.Load() }

// LastCommand is when the most recent command arrived, zero if none has
func (s *Stats) LastCommand() time.Time {
	n := s.lastNano.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}

// HealthStatus is the body of GET /health
type HealthStatus struct {
	Status           string     `json:"status"`
	Uptime           string     `json:"uptime"`
	Connected        bool       `json:"connected"`
	APIReachable     bool       `json:"api_reachable"`
	CommandsReceived int64      `json:"commands_received"`
	LastCommandTime  *time.Time `json:"last_command_time,omitempty"`
}

// healthStatus reports degraded unless both the gateway and the contest API are up
func (b *Bot) healthStatus(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	hs := HealthStatus{
		Status:       statusHealthy,
		Connected:    b.Session != nil && b.Session.DataReady,
		APIReachable: b.Client != nil && b.Client.Ping(ctx),
	}
	if stats := b.stats(); stats != nil {
		hs.Uptime = time.Since(stats.started).Round(time.Second).String()
		hs.CommandsReceived = stats.Commands()
		if last := stats.LastCommand(); !last.IsZero() {
			hs.LastCommandTime = &last
		}
	}
	if !hs.Connected || !hs.APIReachable {
		hs.Status = statusDegraded
	}
	return hs
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	hs := s.bot.healthStatus(r.Context())
	code := http.StatusOK
	if hs.Status != statusHealthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, hs)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("Failed to write response", "error", err)
	}
}
