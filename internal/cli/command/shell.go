package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/skywalker-go/internal/cli/config"
	"github.com/yndnr/skywalker-go/internal/cli/repl"
	"github.com/yndnr/skywalker-go/internal/infra/confloader"
	"github.com/yndnr/skywalker-go/internal/telemetry/logger"
)

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:   "shell",
		Usage:  "Start an interactive shell sharing one session",
		Action: shellAction,
	}
}

func shellAction(c *cli.Context) error {
	st := GetState(c)
	inherited := inheritedFlags(c)

	exec := func(ctx context.Context, args []string) error {
		if len(args) > 0 && args[0] == "shell" {
			return errors.New("already in shell")
		}
		app := NewApp(st)
		app.Writer = c.App.Writer
		app.ErrWriter = c.App.ErrWriter
		app.ExitErrHandler = func(*cli.Context, error) {}
		argv := append([]string{c.App.Name}, inherited...)
		return app.RunContext(ctx, append(argv, args...))
	}

	if w, err := watchConfig(st); err != nil {
		st.log.Warn("config reload disabled", "error", err)
	} else {
		defer w.Stop()
	}

	history := repl.NewHistory()
	if err := history.Load(); err != nil {
		st.log.Warn("failed to load history", "error", err)
	}
	defer func() {
		if err := history.Save(); err != nil {
			st.log.Warn("failed to save history", "error", err)
		}
	}()

	r := repl.New(exec,
		repl.WithIO(c.App.Reader, c.App.Writer),
		repl.WithHistory(history),
		repl.WithCommands(commandNames(NewApp(st).Commands)),
	)
	fmt.Fprintln(c.App.Writer, "skywalker-cli interactive shell. Type 'help' for commands, 'exit' to quit.")
	return r.Run(c.Context)
}

// inheritedFlags re-creates the global flags given to the shell so every
// line runs with them.
func inheritedFlags(c *cli.Context) []string {
	var args []string
	for _, f := range globalFlags() {
		name := f.Names()[0]
		if c.IsSet(name) {
			args = append(args, fmt.Sprintf("--%s=%v", name, c.Value(name)))
		}
	}
	return args
}

func commandNames(cmds []*cli.Command) []string {
	var names []string
	for _, cmd := range cmds {
		if cmd.Name == "shell" {
			continue
		}
		if len(cmd.Subcommands) == 0 {
			names = append(names, cmd.Name)
			continue
		}
		for _, sub := range cmd.Subcommands {
			names = append(names, cmd.Name+" "+sub.Name)
		}
	}
	return names
}

// watchConfig applies the log level of the config file as soon as it
// changes. Each shell line reloads the full config on its own.
func watchConfig(st *State) (*confloader.Watcher, error) {
	log, verbose := st.log, st.settings.Verbose
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(st.cfgPath); err != nil {
		w.Stop()
		return nil, err
	}
	w.OnChange(func(path string) {
		cfg, err := config.Load(path)
		if err != nil {
			log.Warn("ignoring invalid config change", "path", path, "error", err)
			return
		}
		if !verbose {
			logger.SetLevel(cfg.Log.Level)
		}
		log.Debug("config reloaded", "path", path)
	})
	w.StartAsync()
	return w, nil
}
