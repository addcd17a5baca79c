package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/kbsync/errors"
)

// Persist writes the configuration as TOML. The write goes through a
// temporary file and a rename so a crash mid-write cannot truncate an
// existing config.
func Persist(cfg *Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create config directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".kbsync-*.toml")
	if err != nil {
		return errors.Wrap(err, "failed to create temp config file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to write config")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to close temp config file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "failed to install config at %s", path)
	}
	return nil
}
