// Package config provides the configuration loader for tasklist.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/tasklist/internal/core/domain"
	"go.trai.ch/tasklist/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the configuration for cwd.
//
// An explicit path must exist. Without one, tasklist.yaml in cwd is used when
// present and the defaults otherwise. A relative storage dir is resolved
// against the directory holding the config file, or cwd when there is none.
func (l *Loader) Load(cwd, path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cwd, domain.ConfigFileName)
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	var file File
	err := readAndUnmarshalYAML(path, &file)
	switch {
	case err == nil:
		if err := l.apply(&cfg, &file, path); err != nil {
			return domain.Config{}, err
		}
		cfg.Storage.Dir = resolveDir(filepath.Dir(path), cfg.Storage.Dir)
	case !explicit && errors.Is(err, os.ErrNotExist):
		cfg.Storage.Dir = resolveDir(cwd, cfg.Storage.Dir)
	default:
		return domain.Config{}, zerr.With(err, "path", path)
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func (l *Loader) apply(cfg *domain.Config, file *File, path string) error {
	if s := file.Storage; s != nil {
		if s.Backend != nil {
			cfg.Storage.Backend = domain.Backend(strings.ToLower(strings.TrimSpace(*s.Backend)))
		}
		if s.Dir != nil {
			cfg.Storage.Dir = *s.Dir
		}
		if s.Key != nil {
			if strings.ContainsAny(*s.Key, `/\`) {
				return zerr.With(domain.ErrInvalidConfig, "field", "storage.key")
			}
			cfg.Storage.Key = *s.Key
		}
		if s.WriteRetries != nil {
			cfg.Storage.WriteRetries = *s.WriteRetries
		}
		if s.RetryBackoff != nil {
			d, err := time.ParseDuration(*s.RetryBackoff)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "field", "storage.retry_backoff")
			}
			cfg.Storage.RetryBackoff = d
			if cfg.Storage.WriteRetries == 0 {
				l.Logger.Warn(fmt.Sprintf("'storage.retry_backoff' in %s has no effect while 'storage.write_retries' is 0", path))
			}
		}
	}

	if d := file.Display; d != nil && d.TimestampLayout != nil {
		cfg.Display.TimestampLayout = *d.TimestampLayout
	}

	if lg := file.Log; lg != nil {
		if lg.JSON != nil {
			cfg.Log.JSON = *lg.JSON
		}
		if lg.Trace != nil {
			cfg.Log.Trace = *lg.Trace
		}
	}
	return nil
}

func resolveDir(base, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// readAndUnmarshalYAML decodes configPath into target, rejecting unknown keys.
// An empty file leaves target untouched. A missing file keeps os.ErrNotExist
// reachable through errors.Is.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is chosen by the user
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}
