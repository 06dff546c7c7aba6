// Package config loads user identity and remote URLs from TOML files and
// implements the repo facade's ConfigProvider contract.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the decoded shape of both the user-global and repo-local
// configuration files.
type Config struct {
	User struct {
		Name  string `toml:"name"`
		Email string `toml:"email"`
	} `toml:"user"`
	Remote map[string]string `toml:"remote"`
}

// Name implements repo.ConfigProvider.
func (c *Config) Name() (string, bool) {
	return c.User.Name, c.User.Name != ""
}

// Email implements repo.ConfigProvider.
func (c *Config) Email() (string, bool) {
	return c.User.Email, c.User.Email != ""
}

// RemoteURL returns the configured URL for a named remote.
func (c *Config) RemoteURL(name string) (string, bool) {
	if c.Remote == nil {
		return "", false
	}
	url, ok := c.Remote[name]
	return url, ok
}

// SetRemote records or overwrites a named remote URL.
func (c *Config) SetRemote(name, url string) {
	if c.Remote == nil {
		c.Remote = make(map[string]string)
	}
	c.Remote[name] = url
}

// Load reads the user-global config (~/.magicreposconfig.toml) and, if
// repoControlDir is non-empty, layers the repo-local config.toml on top:
// repo-local values win when both set the same field.
func Load(repoControlDir string) (*Config, error) {
	cfg := &Config{Remote: make(map[string]string)}

	if home, err := os.UserHomeDir(); err == nil {
		if err := mergeFile(cfg, filepath.Join(home, ".magicreposconfig.toml")); err != nil {
			return nil, err
		}
	}
	if repoControlDir != "" {
		if err := mergeFile(cfg, filepath.Join(repoControlDir, "config.toml")); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func mergeFile(into *Config, path string) error {
	var layer Config
	if _, err := toml.DecodeFile(path, &layer); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	if layer.User.Name != "" {
		into.User.Name = layer.User.Name
	}
	if layer.User.Email != "" {
		into.User.Email = layer.User.Email
	}
	for k, v := range layer.Remote {
		into.Remote[k] = v
	}
	return nil
}

// Save atomically writes cfg to the repo-local config.toml under
// controlDir, via temp-file-then-rename.
func Save(controlDir string, cfg *Config) error {
	data, err := encode(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}

	tmp, err := os.CreateTemp(controlDir, ".config-tmp-*")
	if err != nil {
		return fmt.Errorf("config: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("config: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("config: close: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(controlDir, "config.toml")); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("config: rename: %w", err)
	}
	return nil
}

func encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
