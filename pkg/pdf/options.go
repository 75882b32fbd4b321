package pdf

import (
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"

	"github.com/pyhub-apps/pdfutils-golang/pkg/blob"
)

// Config carries the settings shared by all operations.
type Config struct {
	Password         string
	TempDir          string
	Logger           logrus.FieldLogger
	Tracker          blob.Tracker
	StrictValidation bool
}

// Option is a function that modifies the operation config
type Option func(*Config)

// WithPassword sets the password used to open encrypted documents
func WithPassword(password string) Option {
	return func(c *Config) {
		c.Password = password
	}
}

// WithTempDir sets the directory receiving temporary output files
func WithTempDir(dir string) Option {
	return func(c *Config) {
		c.TempDir = dir
	}
}

// WithLogger sets the logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithTracker registers every temporary output with t
func WithTracker(t blob.Tracker) Option {
	return func(c *Config) {
		c.Tracker = t
	}
}

// WithStrictValidation makes opening fail on documents that only violate
// the PDF specification in ways most readers tolerate.
func WithStrictValidation(strict bool) Option {
	return func(c *Config) {
		c.StrictValidation = strict
	}
}

var disableConfigDir sync.Once

// NewConfig applies opts over the defaults.
func NewConfig(opts ...Option) *Config {
	c := &Config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
	return c
}

// With returns a copy of c with opts applied.
func (c *Config) With(opts ...Option) *Config {
	cp := *c
	for _, opt := range opts {
		opt(&cp)
	}
	return &cp
}

// Model translates the config into a pdfcpu configuration.
func (c *Config) Model() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if c.StrictValidation {
		conf.ValidationMode = model.ValidationStrict
	}
	if c.Password != "" {
		conf.UserPW = c.Password
		conf.OwnerPW = c.Password
	}
	return conf
}
