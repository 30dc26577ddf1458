// Package config handles the lazycommit configuration file and its overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chmouel/lazycommit/internal/theme"
)

// FileName is the name of the configuration file inside Dir().
const FileName = "config.yaml"

// GeneralConfig holds behaviour that is not tied to the commit message.
type GeneralConfig struct {
	DefaultEmoji      string `yaml:"default_emoji"`
	AutoPush          bool   `yaml:"auto_push"`
	ConfirmBeforePush bool   `yaml:"confirm_before_push"`
	Debug             bool   `yaml:"debug"`
	Theme             string `yaml:"theme"`
	Remote            string `yaml:"remote"`
	ShowIcons         bool   `yaml:"show_icons"`
}

// CommitConfig holds the rules enforced on commit messages.
type CommitConfig struct {
	MaxTitleLength      int  `yaml:"max_title_length"`
	MaxBodyLength       int  `yaml:"max_body_length"`
	AutoCapitalizeTitle bool `yaml:"auto_capitalize_title"`
	EnforceConventional bool `yaml:"enforce_conventional"`
}

// HooksConfig controls how pre-commit hooks are handled.
type HooksConfig struct {
	RunPreCommit   bool `yaml:"run_pre_commit"`
	AutoFixLint    bool `yaml:"auto_fix_lint"`
	RetryOnFailure bool `yaml:"retry_on_failure"`
}

// Config is the effective configuration of one run. It is built once at
// startup and only read afterwards.
type Config struct {
	General GeneralConfig `yaml:"general"`
	Commit  CommitConfig  `yaml:"commit"`
	Hooks   HooksConfig   `yaml:"hooks"`
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			DefaultEmoji:      "✨",
			AutoPush:          false,
			ConfirmBeforePush: true,
			Debug:             false,
			Theme:             theme.DraculaName,
			Remote:            "origin",
		},
		Commit: CommitConfig{
			MaxTitleLength:      50,
			MaxBodyLength:       72,
			AutoCapitalizeTitle: true,
			EnforceConventional: true,
		},
		Hooks: HooksConfig{
			RunPreCommit:   true,
			AutoFixLint:    true,
			RetryOnFailure: true,
		},
	}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return defaultVal
	case int:
		return v
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

func coerceString(value any, defaultVal string) string {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return defaultVal
		}
		return strings.TrimSpace(v)
	case nil:
		return defaultVal
	default:
		return fmt.Sprint(v)
	}
}

func coercePositiveInt(value any, defaultVal int) int {
	if n := coerceInt(value, defaultVal); n > 0 {
		return n
	}
	return defaultVal
}

// normalizeKey folds a key so that "max_title_length", "max-title-length"
// and the lower-cased "maxtitlelength" git config prints all match.
func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, "_", "")
	return strings.ReplaceAll(key, "-", "")
}

// flatten turns the nested YAML document into "section.key" entries.
func flatten(data map[string]any) map[string]any {
	flat := make(map[string]any)
	for section, raw := range data {
		values, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		for key, value := range values {
			flat[normalizeKey(section)+"."+normalizeKey(key)] = value
		}
	}
	return flat
}

func parseConfig(flat map[string]any) *Config {
	def := DefaultConfig()
	cfg := &Config{
		General: GeneralConfig{
			DefaultEmoji:      coerceString(flat["general.defaultemoji"], def.General.DefaultEmoji),
			AutoPush:          coerceBool(flat["general.autopush"], def.General.AutoPush),
			ConfirmBeforePush: coerceBool(flat["general.confirmbeforepush"], def.General.ConfirmBeforePush),
			Debug:             coerceBool(flat["general.debug"], def.General.Debug),
			Theme:             NormalizeThemeName(coerceString(flat["general.theme"], def.General.Theme)),
			Remote:            coerceString(flat["general.remote"], def.General.Remote),
			ShowIcons:         coerceBool(flat["general.showicons"], def.General.ShowIcons),
		},
		Commit: CommitConfig{
			MaxTitleLength:      coercePositiveInt(flat["commit.maxtitlelength"], def.Commit.MaxTitleLength),
			MaxBodyLength:       coercePositiveInt(flat["commit.maxbodylength"], def.Commit.MaxBodyLength),
			AutoCapitalizeTitle: coerceBool(flat["commit.autocapitalizetitle"], def.Commit.AutoCapitalizeTitle),
			EnforceConventional: coerceBool(flat["commit.enforceconventional"], def.Commit.EnforceConventional),
		},
		Hooks: HooksConfig{
			RunPreCommit:   coerceBool(flat["hooks.runprecommit"], def.Hooks.RunPreCommit),
			AutoFixLint:    coerceBool(flat["hooks.autofixlint"], def.Hooks.AutoFixLint),
			RetryOnFailure: coerceBool(flat["hooks.retryonfailure"], def.Hooks.RetryOnFailure),
		},
	}
	return cfg
}

// NormalizeThemeName returns name when it is a known theme, the default otherwise.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if theme.IsKnown(name) {
		return name
	}
	return theme.DraculaName
}

// Dir returns the lazycommit directory under the XDG config home.
func Dir() string {
	return filepath.Join(getConfigDir(), "lazycommit")
}

// DefaultPath returns the location of the configuration file.
func DefaultPath() string {
	return filepath.Join(Dir(), FileName)
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

// readFile returns the flattened content of the config file, writing the
// defaults first when it does not exist yet.
func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if os.IsNotExist(err) {
		if err := DefaultConfig().Save(path); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var yamlData map[string]any
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return flatten(yamlData), nil
}

func resolvePath(path string) (string, error) {
	if path == "" {
		return DefaultPath(), nil
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}

// Load reads the configuration at path (DefaultPath() when empty). A
// missing file is created with the defaults.
func Load(path string) (*Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return DefaultConfig(), err
	}
	flat, err := readFile(resolved)
	if err != nil {
		return DefaultConfig(), err
	}
	return parseConfig(flat), nil
}

// LoadOptions selects every source that contributes to the effective config.
type LoadOptions struct {
	// Path of the YAML file, DefaultPath() when empty.
	Path string
	// RepoPath enables local git config lookup when set.
	RepoPath string
	// Overrides are "section.key=value" strings from the command line.
	Overrides []string
}

// LoadWithOverrides layers the config file, global then local git config
// (lazycommit.<section>.<key>) and command line overrides, in that order.
func LoadWithOverrides(opts LoadOptions) (*Config, error) {
	resolved, err := resolvePath(opts.Path)
	if err != nil {
		return DefaultConfig(), err
	}
	flat, err := readFile(resolved)
	if err != nil {
		return DefaultConfig(), err
	}

	for _, globalOnly := range []bool{true, false} {
		if !globalOnly && opts.RepoPath == "" {
			continue
		}
		gitValues, err := loadGitConfig(globalOnly, opts.RepoPath)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("read git config: %w", err)
		}
		for k, v := range gitValues {
			flat[k] = v
		}
	}

	cliValues, err := parseCLIConfigOverrides(opts.Overrides)
	if err != nil {
		return DefaultConfig(), err
	}
	for k, v := range cliValues {
		flat[k] = v
	}

	return parseConfig(flat), nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// String renders the configuration as YAML.
func (c *Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err.Error()
	}
	return string(data)
}
