package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/yndnr/skywalker-go/internal/infra/confloader"
)

// EnvPathVar overrides the config file location.
const EnvPathVar = "SKYWALKER_CONFIG"

// ErrUnknownKey is returned by Set for keys that are not settings.
var ErrUnknownKey = errors.New("unknown config key")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("server_url", validServerURL); err != nil {
		panic(err)
	}
	return v
}

// validServerURL accepts host:port with or without an http(s) scheme.
func validServerURL(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// DefaultConfigPath returns the config file path, honoring SKYWALKER_CONFIG.
func DefaultConfigPath() string {
	if p := os.Getenv(EnvPathVar); p != "" {
		return p
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".skywalker", "cli.yaml")
}

// Load reads path (DefaultConfigPath when empty) over the defaults and
// applies SKYWALKER_* environment overrides. A missing file is not an error.
func Load(path string) (*CLIConfig, error) {
	return load(path, true)
}

// LoadFile is Load without the environment layer. Use it before Save so
// environment overrides are not written to disk.
func LoadFile(path string) (*CLIConfig, error) {
	return load(path, false)
}

func load(path string, withEnv bool) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	opts := []confloader.Option{
		confloader.WithConfigFile(path),
		confloader.WithOptionalFile(),
		confloader.WithDefaults(defaultsMap()),
	}
	if !withEnv {
		opts = append(opts, confloader.WithoutEnv())
	}
	l := confloader.NewLoader(opts...)

	cfg := &CLIConfig{}
	if err := l.Load(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field constraint.
func (c *CLIConfig) Validate() error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: invalid value %v (%s)", keyOf(fe.Namespace()), fe.Value(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// keyOf maps a validator namespace such as CLIConfig.Track.Interval to
// the config key track.interval.
func keyOf(namespace string) string {
	_, rest, _ := strings.Cut(namespace, ".")
	for _, k := range Keys() {
		if strings.EqualFold(strings.ReplaceAll(k, "_", ""), rest) {
			return k
		}
	}
	return rest
}

// document is the on-disk layout. Durations are written as strings.
type document struct {
	Server   string `yaml:"server,omitempty"`
	Login    string `yaml:"login,omitempty"`
	CenterID int    `yaml:"center_id,omitempty"`
	Output   string `yaml:"output"`
	Language string `yaml:"language,omitempty"`
	Timeout  string `yaml:"timeout"`
	Track    struct {
		Interval string `yaml:"interval"`
	} `yaml:"track"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	TLS struct {
		CAFile string `yaml:"ca_file,omitempty"`
	} `yaml:"tls,omitempty"`
}

// Marshal encodes cfg in the file layout.
func Marshal(cfg *CLIConfig) ([]byte, error) {
	var d document
	d.Server = cfg.Server
	d.Login = cfg.Login
	d.CenterID = cfg.CenterID
	d.Output = cfg.Output
	d.Language = cfg.Language
	d.Timeout = cfg.Timeout.String()
	d.Track.Interval = cfg.Track.Interval.String()
	d.Log.Level = cfg.Log.Level
	d.Log.Format = cfg.Log.Format
	d.TLS.CAFile = cfg.TLS.CAFile

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&d); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save validates cfg and writes it to path with mode 0600.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Keys lists the settable keys in display order.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var setters = map[string]func(c *CLIConfig, v string) error{
	"server":   func(c *CLIConfig, v string) error { c.Server = v; return nil },
	"login":    func(c *CLIConfig, v string) error { c.Login = v; return nil },
	"output":   func(c *CLIConfig, v string) error { c.Output = v; return nil },
	"language": func(c *CLIConfig, v string) error { c.Language = v; return nil },
	"center_id": func(c *CLIConfig, v string) error {
		n, err := strconv.Atoi(v)
		c.CenterID = n
		return err
	},
	"timeout": func(c *CLIConfig, v string) error {
		d, err := time.ParseDuration(v)
		c.Timeout = d
		return err
	},
	"track.interval": func(c *CLIConfig, v string) error {
		d, err := time.ParseDuration(v)
		c.Track.Interval = d
		return err
	},
	"log.level":  func(c *CLIConfig, v string) error { c.Log.Level = v; return nil },
	"log.format": func(c *CLIConfig, v string) error { c.Log.Format = v; return nil },
	"tls.ca_file": func(c *CLIConfig, v string) error {
		if v == "" {
			c.TLS.CAFile = ""
			return nil
		}
		abs, err := filepath.Abs(v)
		c.TLS.CAFile = abs
		return err
	},
}

// Set assigns value to key and validates the result. cfg is unchanged on
// error.
func (c *CLIConfig) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("%w: %s (valid keys: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
	next := *c
	if err := set(&next, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}
