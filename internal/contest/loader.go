package contest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/logger"
)

// Loader reads contest definitions from a directory of YAML files
type Loader struct {
	dir string
}

// NewLoader creates a new contest file loader
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load parses every YAML file in the directory, in file name order
func (l *Loader) Load() ([]domain.ContestConfig, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read contests directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ExtYAML || ext == ExtYML {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	configs := make([]domain.ContestConfig, 0, len(names))
	for _, name := range names {
		cfg, err := LoadFile(filepath.Join(l.dir, name))
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", ErrContextFailedToLoadConfigFile, name, err)
		}
		configs = append(configs, *cfg)
	}
	return configs, nil
}

// LoadFile parses a single contest definition
func LoadFile(path string) (*domain.ContestConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var cfg domain.ContestConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &cfg, nil
}

// Seed creates every loaded contest whose name is not already taken.
// Returns the number of contests created.
func (l *Loader) Seed(ctx context.Context, svc Service) (int, error) {
	log := logger.FromContext(ctx)

	configs, err := l.Load()
	if err != nil {
		return 0, err
	}

	existing, err := svc.ListContests(ctx, nil, DefaultListLimit)
	if err != nil {
		return 0, err
	}
	names := make(map[string]bool, len(existing))
	for _, c := range existing {
		names[c.Name] = true
	}

	created := 0
	for _, cfg := range configs {
		if names[cfg.Name] {
			log.Debug(LogMsgContestSeedSkipped, "name", cfg.Name)
			continue
		}
		contest, err := svc.CreateContest(ctx, cfg)
		if err != nil {
			return created, fmt.Errorf("%s %q: %w", ErrContextFailedToCreateContest, cfg.Name, err)
		}
		names[cfg.Name] = true
		created++
		log.Info(LogMsgContestSeeded, "contest_id", contest.ID, "name", contest.Name)
	}
	return created, nil
}
