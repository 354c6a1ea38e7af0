package config

import "time"

// CLIConfig is the configuration for skywalker-cli.
type CLIConfig struct {
	Server   string        `koanf:"server" validate:"omitempty,server_url"`
	Login    string        `koanf:"login"`
	CenterID int           `koanf:"center_id" validate:"gte=0"`
	Output   string        `koanf:"output" validate:"oneof=table json yaml"`
	Language string        `koanf:"language" validate:"omitempty,bcp47_language_tag"`
	Timeout  time.Duration `koanf:"timeout" validate:"gte=0"`

	Track TrackConfig `koanf:"track"`
	Log   LogConfig   `koanf:"log"`
	TLS   TLSConfig   `koanf:"tls"`
}

// TrackConfig configures the track command.
type TrackConfig struct {
	Interval time.Duration `koanf:"interval" validate:"gte=100ms"`
}

// LogConfig configures diagnostics written to stderr.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// TLSConfig configures HTTPS verification of the server.
type TLSConfig struct {
	// CAFile is a PEM bundle trusted in addition to the system roots.
	CAFile string `koanf:"ca_file" validate:"omitempty,file"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Output:  "table",
		Timeout: 30 * time.Second,
		Track: TrackConfig{
			Interval: 2 * time.Second,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// defaultsMap flattens Default for confloader.
func defaultsMap() map[string]any {
	d := Default()
	return map[string]any{
		"server":         d.Server,
		"login":          d.Login,
		"center_id":      d.CenterID,
		"output":         d.Output,
		"language":       d.Language,
		"timeout":        d.Timeout.String(),
		"track.interval": d.Track.Interval.String(),
		"log.level":      d.Log.Level,
		"log.format":     d.Log.Format,
		"tls.ca_file":    d.TLS.CAFile,
	}
}
