// Package config handles configuration loading and pets home resolution.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvHome overrides the pets home directory.
const EnvHome = "PETS_HOME"

// FileName is the per-home configuration file name.
const FileName = "config.yaml"

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// LogConfig controls the service logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `yaml:"format"` // "text" | "json"
}

// PetsConfig is the root per-home configuration.
type PetsConfig struct {
	DataFile string    `yaml:"data_file"` // relative to the home directory unless absolute
	Log      LogConfig `yaml:"log"`
}

// Default returns a PetsConfig populated with sensible defaults.
func Default() *PetsConfig {
	return &PetsConfig{
		DataFile: "pets.json",
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads a per-home config.yaml from path.
// If the file does not exist it returns Default() with no error.
// Missing keys retain their default values.
func Load(path string) (*PetsConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	// Unmarshal into a plain map so we can apply only the keys that are present.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if v, ok := raw["data_file"].(string); ok && strings.TrimSpace(v) != "" {
		cfg.DataFile = strings.TrimSpace(v)
	}

	if lg, ok := raw["log"].(map[string]any); ok {
		if v, ok := lg["level"].(string); ok && v != "" {
			cfg.Log.Level = v
		}
		if v, ok := lg["format"].(string); ok && v != "" {
			cfg.Log.Format = v
		}
	}

	return cfg, nil
}

// DataFilePath resolves the configured data file against home.
func (c *PetsConfig) DataFilePath(home string) string {
	p := c.DataFile
	if p == "" {
		p = Default().DataFile
	}
	p = expandUser(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(home, p)
}

// SlogLevel maps the configured level name to a slog.Level.
// Unknown names fall back to slog.LevelWarn.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// JSON reports whether structured JSON log output was requested.
func (l LogConfig) JSON() bool {
	return strings.EqualFold(strings.TrimSpace(l.Format), "json")
}

// ---------------------------------------------------------------------------
// Ledger location
// ---------------------------------------------------------------------------

// Sources reported by ResolveHome and ResolvePaths.
const (
	SourceFlag    = "flag"
	SourceEnv     = "env"
	SourceConfig  = "config"
	SourceDefault = "default"
)

// globalHomeKey is the only key kept in the global config file.
const globalHomeKey = "pets_home"

// Paths is the resolved location of a ledger: its home directory, the
// configuration loaded from it and the data file in use.
type Paths struct {
	Home           string
	HomeSource     string
	DataFile       string
	DataFileSource string
	Config         *PetsConfig
}

// ResolvePaths locates the ledger selected by the --home and --file flags.
// Home priority: homeFlag, PETS_HOME, persisted global config, ~/.pets.
// Data file priority: fileFlag, data_file in <home>/config.yaml, pets.json.
func ResolvePaths(homeFlag, fileFlag string) (Paths, error) {
	var p Paths
	if homeFlag != "" {
		p.Home, p.HomeSource = expandUser(homeFlag), SourceFlag
	} else {
		p.Home, p.HomeSource = ResolveHome()
	}

	cfg, err := Load(filepath.Join(p.Home, FileName))
	if err != nil {
		return Paths{}, err
	}
	p.Config = cfg

	switch {
	case fileFlag != "":
		p.DataFile, p.DataFileSource = expandUser(fileFlag), SourceFlag
	case cfg.DataFile != Default().DataFile:
		p.DataFile, p.DataFileSource = cfg.DataFilePath(p.Home), SourceConfig
	default:
		p.DataFile, p.DataFileSource = cfg.DataFilePath(p.Home), SourceDefault
	}
	return p, nil
}

// ResolveHome returns the pets home path and the source of the resolution:
// SourceEnv for PETS_HOME, SourceConfig for the persisted global setting,
// otherwise SourceDefault with ~/.pets.
func ResolveHome() (path, source string) {
	if env := os.Getenv(EnvHome); env != "" {
		if p, err := normalizePath(env); err == nil {
			return p, SourceEnv
		}
	}
	if persisted, ok, _ := GetPersistedHome(); ok {
		return persisted, SourceConfig
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pets"), SourceDefault
}

// GetHome returns the resolved pets home path.
func GetHome() string {
	path, _ := ResolveHome()
	return path
}

// GetPersistedHome reads pets_home from ~/.config/pets/config.yaml.
// Returns ("", false, nil) if not set.
func GetPersistedHome() (string, bool, error) {
	g, err := readGlobal()
	if err != nil {
		return "", false, err
	}
	val, _ := g.values[globalHomeKey].(string)
	if val = strings.TrimSpace(val); val == "" {
		return "", false, nil
	}
	p, err := normalizePath(val)
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

// SetPersistedHome records path as the home used when PETS_HOME is unset
// and returns it normalized.
func SetPersistedHome(path string) (string, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return "", err
	}
	g, err := readGlobal()
	if err != nil {
		return "", err
	}
	g.values[globalHomeKey] = normalized
	if err := g.write(); err != nil {
		return "", err
	}
	return normalized, nil
}

// ClearPersistedHome forgets the persisted home. It reports whether a
// setting was removed.
func ClearPersistedHome() (bool, error) {
	g, err := readGlobal()
	if err != nil {
		return false, err
	}
	if _, ok := g.values[globalHomeKey]; !ok {
		return false, nil
	}
	delete(g.values, globalHomeKey)
	return true, g.write()
}

// globalConfig is the user-wide settings file. Unknown keys survive a
// rewrite.
type globalConfig struct {
	path   string
	values map[string]any
}

func readGlobal() (*globalConfig, error) {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	g := &globalConfig{
		path:   filepath.Join(userHome, ".config", "pets", FileName),
		values: map[string]any{},
	}
	data, err := os.ReadFile(g.path)
	if os.IsNotExist(err) {
		return g, nil
	}
	if err != nil {
		return nil, err
	}
	// An unreadable file counts as empty and is replaced on the next write.
	_ = yaml.Unmarshal(data, &g.values)
	if g.values == nil {
		g.values = map[string]any{}
	}
	return g, nil
}

// write saves the settings, deleting the file once nothing is left in it.
func (g *globalConfig) write() error {
	if len(g.values) == 0 {
		if err := os.Remove(g.path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		return err
	}
	out, err := yaml.Marshal(g.values)
	if err != nil {
		return err
	}
	return os.WriteFile(g.path, out, 0o600)
}

// expandUser replaces a leading "~/" with the user's home directory.
func expandUser(path string) string {
	if strings.HasPrefix(path, "~/") {
		if userHome, err := os.UserHomeDir(); err == nil {
			return filepath.Join(userHome, path[2:])
		}
	}
	return path
}

// normalizePath expands ~ and environment variables and makes path absolute.
func normalizePath(path string) (string, error) {
	return filepath.Abs(os.ExpandEnv(expandUser(path)))
}
