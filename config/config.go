package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server   `json:"server" yaml:"server" mapstructure:"server"`
	Storage  Storage  `json:"storage" yaml:"storage" mapstructure:"storage"`
	Library  Library  `json:"library" yaml:"library" mapstructure:"library"`
	Download Download `json:"download" yaml:"download" mapstructure:"download"`
	Manager  Manager  `json:"manager" yaml:"manager" mapstructure:"manager"`
}

// Server holds the listener settings and the single set of credentials allowed to use the api.
// Authentication is disabled when Username is empty.
type Server struct {
	Port     int    `json:"port" yaml:"port" mapstructure:"port" validate:"gt=0,lt=65536"`
	Username string `json:"username" yaml:"username" mapstructure:"username"`
	Password string `json:"-" yaml:"password" mapstructure:"password" validate:"required_with=Username"`
}

// Storage configuration is assumed to be for sqlite database only currently
type Storage struct {
	FilePath string `json:"filePath" yaml:"filePath" mapstructure:"filePath" validate:"required"`
}

// Library is where downloaded episodes are written. Episode local urls are relative to MediaDir.
type Library struct {
	MediaDir string `json:"mediaDir" yaml:"mediaDir" mapstructure:"mediaDir" validate:"required"`
}

// Download configures the external transfer tool.
// Args may reference {url}, {dest} and {trace}, which are replaced per download.
// A started download whose trace has not changed for StaleAfter is considered dead. Zero disables the check.
type Download struct {
	Binary     string        `json:"binary" yaml:"binary" mapstructure:"binary" validate:"required"`
	Args       []string      `json:"args" yaml:"args" mapstructure:"args" validate:"required,min=1"`
	TraceDir   string        `json:"traceDir" yaml:"traceDir" mapstructure:"traceDir" validate:"required"`
	StaleAfter time.Duration `json:"staleAfter" yaml:"staleAfter" mapstructure:"staleAfter" validate:"gte=0"`
}

// Manager houses configuration related to the manager's background jobs
type Manager struct {
	Jobs Jobs `json:"jobs" yaml:"jobs" mapstructure:"jobs"`
}

type Jobs struct {
	DownloadReconcile time.Duration `json:"downloadReconcile" yaml:"downloadReconcile" mapstructure:"downloadReconcile" validate:"gte=0"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	return c, err
}

// Validate checks that the configuration is complete enough to serve requests
func (c Config) Validate() error {
	return validator.New().Struct(c)
}
