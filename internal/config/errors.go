package config

import "errors"

// Error variables for configuration loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrSeedFilesEmpty     = errors.New("seed_files cannot be empty")
	ErrMutatePercent      = errors.New("mutate_percent must be 0-100")
	ErrGrowEvery          = errors.New("grow_every must be positive")
	ErrGrowBy             = errors.New("grow_by must be non-negative")
	ErrMissingSeedPolicy  = errors.New(`missing_seed must be "warn" or "fail"`)
)
