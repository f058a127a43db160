package application

import (
	"github.com/neekrasov/gate/internal/config"
	"github.com/neekrasov/gate/internal/journal"
	"github.com/neekrasov/gate/pkg/logger"
)

// initJournal - returns a nil journal when recording is not configured.
func initJournal(cfg *config.JournalConfig) (*journal.Journal, error) {
	if cfg == nil || cfg.Path == "" {
		logger.Debug("journal disabled")
		return nil, nil
	}

	return journal.Open(cfg.Path)
}
