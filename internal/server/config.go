package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/iwvelando/property-forecast/internal/config"
	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address       string               `yaml:"address"`
	MaxUploadSize string               `yaml:"maxUploadSize"`
	Logging       config.LoggingConfig `yaml:"logging"`
	Markets       MarketsConfig        `yaml:"markets"`

	uploadSizeBytes int64
}

// MarketsConfig selects the market data served by the API. An empty File
// serves the bundled table; a non-empty Refresh is a cron schedule on which
// File is reloaded.
type MarketsConfig struct {
	File    string `yaml:"file"`
	Refresh string `yaml:"refresh"`
}

func defaultConfig() *Config {
	return &Config{
		Address:         constants.DefaultServerAddress,
		uploadSizeBytes: constants.DefaultMaxUploadSizeBytes,
	}
}

// LoadConfig reads the server configuration at path. A missing file, or an
// empty path, yields the defaults. Unknown keys are rejected so a misspelled
// setting does not silently fall back to its default.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse server config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid server config %s: %w", path, err)
	}
	return cfg, nil
}

// UploadSizeBytes returns the upload limit for portfolio files.
func (c *Config) UploadSizeBytes() int64 {
	if c.uploadSizeBytes <= 0 {
		return constants.DefaultMaxUploadSizeBytes
	}
	return c.uploadSizeBytes
}

// validate normalizes every field and reports all problems together.
func (c *Config) validate() error {
	var errs []error

	c.Address = strings.TrimSpace(c.Address)
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if _, _, err := net.SplitHostPort(c.Address); err != nil {
		errs = append(errs, fmt.Errorf("address %q: %w", c.Address, err))
	}

	size, err := ParseSize(c.MaxUploadSize)
	if err != nil {
		errs = append(errs, fmt.Errorf("maxUploadSize: %w", err))
	}
	c.uploadSizeBytes = size

	c.Markets.File = strings.TrimSpace(c.Markets.File)
	c.Markets.Refresh = strings.TrimSpace(c.Markets.Refresh)
	if c.Markets.Refresh != "" {
		if c.Markets.File == "" {
			errs = append(errs, errors.New("markets.refresh requires markets.file"))
		}
		if _, err := cron.ParseStandard(c.Markets.Refresh); err != nil {
			errs = append(errs, fmt.Errorf("markets.refresh %q: %w", c.Markets.Refresh, err))
		}
	}

	return errors.Join(errs...)
}

var sizeUnits = []struct {
	suffix string
	factor int64
}{
	{"GB", 1 << 30}, {"G", 1 << 30},
	{"MB", 1 << 20}, {"M", 1 << 20},
	{"KB", 1 << 10}, {"K", 1 << 10},
	{"B", 1},
}

// ParseSize converts a size such as "256K" or "10MB" into bytes. Units are
// binary and case-insensitive; a bare number is bytes and an empty string is
// the default upload limit.
func ParseSize(value string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	if s == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	factor := int64(1)
	for _, unit := range sizeUnits {
		if number, ok := strings.CutSuffix(s, unit.suffix); ok {
			s, factor = strings.TrimSpace(number), unit.factor
			break
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", value)
	}
	if n <= 0 {
		return 0, fmt.Errorf("size %q must be positive", value)
	}
	if n > math.MaxInt64/factor {
		return 0, fmt.Errorf("size %q is too large", value)
	}
	return n * factor, nil
}
