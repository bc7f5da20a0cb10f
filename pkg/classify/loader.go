package classify

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Loader reads signature tables from YAML files and optionally watches
// them for changes.
type Loader struct {
	logger  zerolog.Logger
	watcher *fsnotify.Watcher
}

// NewLoader creates a new signature table loader.
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{
		logger: logger.With().Str("component", "signature-loader").Logger(),
	}
}

// Load parses and compiles a signature table from a YAML file.
func (l *Loader) Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read signature table: %w", err)
	}

	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse signature table: %w", err)
	}
	if len(table.Signatures) == 0 {
		return nil, fmt.Errorf("signature table %s defines no signatures", path)
	}
	if err := table.Compile(); err != nil {
		return nil, fmt.Errorf("failed to compile signature table: %w", err)
	}

	l.logger.Debug().
		Str("path", path).
		Str("version", table.Version).
		Int("signatures", len(table.Signatures)).
		Msg("Signature table loaded")

	return &table, nil
}

// Watch reloads the table whenever the file changes and installs the
// result on the classifier. Reloads are debounced; a table that fails
// to parse or compile leaves the previous one in place.
func (l *Loader) Watch(ctx context.Context, path string, c *Classifier) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	l.watcher = watcher

	go l.processEvents(ctx, path, c)

	l.logger.Info().Str("path", path).Msg("Watching signature table")
	return nil
}

// processEvents handles file system events and triggers reloads.
func (l *Loader) processEvents(ctx context.Context, path string, c *Classifier) {
	var reloadTimer *time.Timer
	reloadDelay := 500 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			_ = l.watcher.Close()
			return

		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			reloadTimer = time.AfterFunc(reloadDelay, func() {
				table, err := l.Load(path)
				if err != nil {
					l.logger.Error().Err(err).Msg("Failed to reload signature table, keeping previous")
					return
				}
				c.SetTable(table)
				l.logger.Info().
					Str("version", table.Version).
					Int("signatures", len(table.Signatures)).
					Msg("Signature table reloaded")
			})

		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			l.logger.Error().Err(err).Msg("Watcher error")
		}
	}
}

// StopWatching stops watching for file changes.
func (l *Loader) StopWatching() error {
	if l.watcher != nil {
		return l.watcher.Close()
	}
	return nil
}
