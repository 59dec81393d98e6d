// Package config loads bytefuzz configuration from JSONC files.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/bytefuzz/internal/fs"
	"github.com/calvinalkan/bytefuzz/internal/mutate"
	"github.com/calvinalkan/bytefuzz/internal/seed"
)

// Missing-seed policies.
const (
	MissingSeedWarn = "warn"
	MissingSeedFail = "fail"
)

// Config holds all configuration options.
//
// Integer fields are pointers in the file representation so an explicit 0
// can be told apart from an absent key; after loading they are always set.
type Config struct {
	// From config files (serialized)
	SeedFiles     []string `json:"seed_files,omitempty"`
	MutatePercent *int     `json:"mutate_percent,omitempty"`
	GrowEvery     *int     `json:"grow_every,omitempty"`
	GrowBy        *int     `json:"grow_by,omitempty"`
	MissingSeed   string   `json:"missing_seed,omitempty"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		SeedFiles:     slices.Clone(seed.DefaultCandidates),
		MutatePercent: intPtr(mutate.DefaultMutatePercent),
		GrowEvery:     intPtr(mutate.DefaultGrowEvery),
		GrowBy:        intPtr(mutate.DefaultGrowBy),
		MissingSeed:   MissingSeedWarn,
	}
}

// MutateOptions converts the loaded values into engine options.
func (c Config) MutateOptions() mutate.Options {
	opts := mutate.DefaultOptions()

	if c.MutatePercent != nil {
		opts.MutatePercent = *c.MutatePercent
	}

	if c.GrowEvery != nil {
		opts.GrowEvery = *c.GrowEvery
	}

	if c.GrowBy != nil {
		opts.GrowBy = *c.GrowBy
	}

	return opts
}

// FileName is the default project config file name.
const FileName = ".bytefuzz.json"

// globalPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/bytefuzz/config.json if set, otherwise
// ~/.config/bytefuzz/config.json. Returns empty string if home directory
// cannot be determined.
func globalPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "bytefuzz", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "bytefuzz", "config.json")
	}

	return ""
}

// Overrides are values supplied on the command line.
// Zero values mean "not set".
type Overrides struct {
	SeedFiles   []string
	MissingSeed string
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Overrides       Overrides         // CLI flag values
	Env             map[string]string // environment variables
	FS              fs.FS             // config file access; nil means fs.NewReal()
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/bytefuzz/config.json or $XDG_CONFIG_HOME/bytefuzz/config.json)
// 3. Project config file at default location (.bytefuzz.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty)
// 5. CLI overrides.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	if !filepath.IsAbs(workDir) {
		abs, err := filepath.Abs(workDir)
		if err != nil {
			return Config{}, fmt.Errorf("cannot resolve working directory: %w", err)
		}

		workDir = abs
	}

	fsys := input.FS
	if fsys == nil {
		fsys = fs.NewReal()
	}

	cfg := Default()

	globalCfg, globalFile, err := loadGlobal(fsys, input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalFile
	cfg = merge(cfg, globalCfg)

	projectCfg, projectFile, err := loadProject(fsys, workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectFile
	cfg = merge(cfg, projectCfg)

	if len(input.Overrides.SeedFiles) > 0 {
		cfg.SeedFiles = slices.Clone(input.Overrides.SeedFiles)
	}

	if input.Overrides.MissingSeed != "" {
		cfg.MissingSeed = input.Overrides.MissingSeed
	}

	validateErr := validate(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	cfg.EffectiveCwd = workDir

	return cfg, nil
}

// loadGlobal loads the global user config file if it exists.
func loadGlobal(fsys fs.FS, env map[string]string) (Config, string, error) {
	path := globalPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadFile(fsys, path, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, path, nil
}

// loadProject loads the project config file (.bytefuzz.json) or an explicit config file.
func loadProject(fsys fs.FS, workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		// Explicit config file - must exist
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		exists, statErr := fsys.Exists(cfgFile)
		if statErr != nil || !exists {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, FileName)
	}

	fileCfg, loaded, err := loadFile(fsys, cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return fileCfg, cfgFile, nil
}

// loadFile loads a config file. If mustExist is false, missing files return zero config.
func loadFile(fsys fs.FS, path string, mustExist bool) (Config, bool, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, parseErr := parse(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parse(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()

	unmarshalErr := dec.Decode(&cfg)
	if unmarshalErr != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	// An explicit empty list is an error, an absent key is not.
	if cfg.SeedFiles != nil && len(cfg.SeedFiles) == 0 {
		return Config{}, ErrSeedFilesEmpty
	}

	return cfg, nil
}

func merge(base, overlay Config) Config {
	if len(overlay.SeedFiles) > 0 {
		base.SeedFiles = slices.Clone(overlay.SeedFiles)
	}

	if overlay.MutatePercent != nil {
		base.MutatePercent = intPtr(*overlay.MutatePercent)
	}

	if overlay.GrowEvery != nil {
		base.GrowEvery = intPtr(*overlay.GrowEvery)
	}

	if overlay.GrowBy != nil {
		base.GrowBy = intPtr(*overlay.GrowBy)
	}

	if overlay.MissingSeed != "" {
		base.MissingSeed = overlay.MissingSeed
	}

	return base
}

func validate(cfg Config) error {
	if len(cfg.SeedFiles) == 0 {
		return ErrSeedFilesEmpty
	}

	for _, name := range cfg.SeedFiles {
		if name == "" {
			return fmt.Errorf("%w: empty file name", ErrSeedFilesEmpty)
		}
	}

	opts := cfg.MutateOptions()

	if opts.MutatePercent < 0 || opts.MutatePercent > 100 {
		return fmt.Errorf("%w (got %d)", ErrMutatePercent, opts.MutatePercent)
	}

	if opts.GrowEvery <= 0 {
		return fmt.Errorf("%w (got %d)", ErrGrowEvery, opts.GrowEvery)
	}

	if opts.GrowBy < 0 {
		return fmt.Errorf("%w (got %d)", ErrGrowBy, opts.GrowBy)
	}

	switch cfg.MissingSeed {
	case MissingSeedWarn, MissingSeedFail:
	default:
		return fmt.Errorf("%w (got %q)", ErrMissingSeedPolicy, cfg.MissingSeed)
	}

	return nil
}

func intPtr(v int) *int {
	return &v
}
