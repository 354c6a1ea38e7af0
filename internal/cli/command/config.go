package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/skywalker-go/internal/cli/config"
	"github.com/yndnr/skywalker-go/internal/cli/output"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:      "set",
				Usage:     "Set a configuration value and save the file",
				ArgsUsage: "KEY VALUE",
				Action:    configSet,
			},
			{
				Name:   "path",
				Usage:  "Print the configuration file path",
				Action: configPath,
			},
		},
	}
}

// configView is the show output. Durations are printed as strings.
type configView struct {
	Server        string `json:"server" yaml:"server"`
	Login         string `json:"login" yaml:"login"`
	CenterID      int    `json:"center_id" yaml:"center_id"`
	Output        string `json:"output" yaml:"output"`
	Language      string `json:"language" yaml:"language"`
	Timeout       string `json:"timeout" yaml:"timeout"`
	TrackInterval string `json:"track.interval" yaml:"track.interval"`
	LogLevel      string `json:"log.level" yaml:"log.level"`
	LogFormat     string `json:"log.format" yaml:"log.format"`
	TLSCAFile     string `json:"tls.ca_file" yaml:"tls.ca_file"`
}

func newConfigView(cfg *config.CLIConfig) configView {
	return configView{
		Server:        cfg.Server,
		Login:         cfg.Login,
		CenterID:      cfg.CenterID,
		Output:        cfg.Output,
		Language:      cfg.Language,
		Timeout:       cfg.Timeout.String(),
		TrackInterval: cfg.Track.Interval.String(),
		LogLevel:      cfg.Log.Level,
		LogFormat:     cfg.Log.Format,
		TLSCAFile:     cfg.TLS.CAFile,
	}
}

func (v configView) Table() *output.Table {
	t := output.NewTable("KEY", "VALUE")
	dash := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}
	t.AddRow("server", dash(v.Server))
	t.AddRow("login", dash(v.Login))
	t.AddRow("center_id", formatInt(v.CenterID))
	t.AddRow("output", v.Output)
	t.AddRow("language", dash(v.Language))
	t.AddRow("timeout", v.Timeout)
	t.AddRow("track.interval", v.TrackInterval)
	t.AddRow("log.level", v.LogLevel)
	t.AddRow("log.format", v.LogFormat)
	t.AddRow("tls.ca_file", dash(v.TLSCAFile))
	return t
}

func configShow(c *cli.Context) error {
	return render(c, newConfigView(GetState(c).cfg))
}

func configSet(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: config set KEY VALUE")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)

	st := GetState(c)
	cfg, err := config.LoadFile(st.cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.Save(cfg, st.cfgPath); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "%s = %s\n", key, value)
	return nil
}

func configPath(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, GetState(c).cfgPath)
	return nil
}
