package types

import "errors"

// Config holds backend parameters for sqlite.Open.
type Config struct {
	DataDir     string `json:"data_dir" yaml:"data_dir"`
	TemplateDir string `json:"template_dir" yaml:"template_dir"`
}

// Config validation errors.
var (
	ErrDataDirEmpty = errors.New("data dir must not be empty")
)

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}
