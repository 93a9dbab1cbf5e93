// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package supervisor

import (
	"context"

	"github.com/kestrelworks/tradrank/internal/config"
	"github.com/kestrelworks/tradrank/internal/logging"
)

// ConfigWatchService registers a file watcher on the active config file and
// invokes onChange on every modification. It blocks until the context is
// canceled; if the supervisor restarts it, the watcher is re-registered.
type ConfigWatchService struct {
	path     string
	onChange func()
	name     string
}

// NewConfigWatchService creates a watcher service for the given config path.
func NewConfigWatchService(path string, onChange func()) *ConfigWatchService {
	return &ConfigWatchService{
		path:     path,
		onChange: onChange,
		name:     "config-watcher",
	}
}

// Serve implements suture.Service.
func (s *ConfigWatchService) Serve(ctx context.Context) error {
	if err := config.WatchConfigFile(s.path, s.onChange); err != nil {
		return err
	}

	logging.Debug().Str("path", s.path).Msg("Config file watcher registered")
	<-ctx.Done()
	return ctx.Err()
}

// String implements fmt.Stringer; suture uses it in event logs.
func (s *ConfigWatchService) String() string {
	return s.name
}
