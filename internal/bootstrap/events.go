package bootstrap

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/PredictionContest_Go/internal/config"
	"github.com/osse101/PredictionContest_Go/internal/event"
)

// EventSystem pairs the in-process bus with the publisher services write
// through. Subscribers attach to Bus; publishers only see Publisher.
type EventSystem struct {
	Bus       *event.MemoryBus
	Publisher *event.ResilientPublisher
}

// NewEventSystem builds the bus and starts the publisher's retry worker,
// creating the dead-letter directory if needed. Zero config fields take the
// config package defaults.
func NewEventSystem(cfg *config.Config) (*EventSystem, error) {
	retries := cmp.Or(cfg.EventMaxRetries, config.DefaultEventMaxRetries)
	delay := cmp.Or(cfg.EventRetryDelay, config.DefaultEventRetryDelay)
	deadLetter := cmp.Or(cfg.EventDeadLetterPath, config.DefaultDeadLetterPath)

	if err := os.MkdirAll(filepath.Dir(deadLetter), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateDeadLetterDir, err)
	}

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, retries, delay, deadLetter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreatePublisher, err)
	}

	slog.Info(LogMsgEventSystemReady, "max_retries", retries, "retry_delay", delay, "dead_letter", deadLetter)
	return &EventSystem{Bus: bus, Publisher: publisher}, nil
}
