/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
// Minimal schema to start; can evolve with config_version migrations.
//
// config_version: bump when the structure changes in a backward-incompatible way.

// ArchiveConfig points at the optional shared Postgres archive used for
// cross-machine version history. The password part of the DSN can be
// left out and stored in the OS keychain instead.
type ArchiveConfig struct {
	DSN       string `yaml:"dsn"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

type GeneralConfig struct {
	TelemetryOptIn bool `yaml:"telemetry_opt_in"`
	// KeepVersions bounds the local script version history; older
	// versions are pruned after each save.
	KeepVersions int `yaml:"keep_versions"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Archive       ArchiveConfig `yaml:"archive"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, KeepVersions: 50},
		Archive:       ArchiveConfig{DSN: "", TimeoutMs: 15000},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvArchiveDSN       = "CSK_ARCHIVE_DSN"
	EnvArchiveTimeoutMs = "CSK_ARCHIVE_TIMEOUT_MS"
	EnvTelemetryOptIn   = "CSK_TELEMETRY_OPT_IN"
	EnvKeepVersions     = "CSK_KEEP_VERSIONS"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "CSK_LOG_LEVEL"
	EnvLogFormat = "CSK_LOG_FORMAT"
	EnvLogSource = "CSK_LOG_SOURCE"
	EnvLogFile   = "CSK_LOG_FILE"
)

// Service/keys for OS keyring.
const (
	keyringService = "ComicScript"
	keyringSecret  = "archive_password"
)

// tokenStore abstracts keyring, so we can stub in tests.
var tokenStore TokenStore = &osKeyring{}

type TokenStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "ComicScript")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "ComicScript")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "comicscript")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and
// merges environment overrides. The archive password is loaded from the
// keyring and returned separately; it never touches the YAML file.
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	secret, _ := tokenStore.Get(keyringService, keyringSecret)
	return cfg, secret, nil
}

// Save writes the user config YAML and persists the archive password
// into the OS keyring (if non-empty).
func Save(cfg AppConfig, secret string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if secret != "" {
		if err := tokenStore.Set(keyringService, keyringSecret, secret); err != nil {
			return err
		}
	}
	return nil
}

// ForgetSecret removes the stored archive password from the keyring.
func ForgetSecret() error {
	return tokenStore.Delete(keyringService, keyringSecret)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if src.General.KeepVersions != 0 {
		dst.General.KeepVersions = src.General.KeepVersions
	}
	if src.Archive.DSN != "" {
		dst.Archive.DSN = src.Archive.DSN
	}
	if src.Archive.TimeoutMs != 0 {
		dst.Archive.TimeoutMs = src.Archive.TimeoutMs
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvArchiveDSN)); v != "" {
		cfg.Archive.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvArchiveTimeoutMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Archive.TimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		lv := strings.ToLower(v)
		cfg.General.TelemetryOptIn = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvKeepVersions)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.General.KeepVersions = n
		}
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "archive.dsn":
		if os.Getenv(EnvArchiveDSN) != "" {
			return EnvArchiveDSN, true
		}
	case "archive.timeout_ms":
		if os.Getenv(EnvArchiveTimeoutMs) != "" {
			return EnvArchiveTimeoutMs, true
		}
	case "general.telemetry_opt_in":
		if os.Getenv(EnvTelemetryOptIn) != "" {
			return EnvTelemetryOptIn, true
		}
	case "general.keep_versions":
		if os.Getenv(EnvKeepVersions) != "" {
			return EnvKeepVersions, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.source":
		if os.Getenv(EnvLogSource) != "" {
			return EnvLogSource, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}

// EffectiveTimeout returns the archive timeout as a duration, falling
// back to the default when the configured value is zero or negative.
func (a ArchiveConfig) EffectiveTimeout() time.Duration {
	ms := a.TimeoutMs
	if ms <= 0 {
		ms = Defaults().Archive.TimeoutMs
	}
	return time.Duration(ms) * time.Millisecond
}
