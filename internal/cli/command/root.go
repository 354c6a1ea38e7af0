package command

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/yndnr/skywalker-go/internal/cli/config"
	"github.com/yndnr/skywalker-go/internal/cli/output"
	"github.com/yndnr/skywalker-go/internal/client"
	"github.com/yndnr/skywalker-go/internal/core/domain"
	"github.com/yndnr/skywalker-go/internal/infra/buildinfo"
	"github.com/yndnr/skywalker-go/internal/infra/locale"
	"github.com/yndnr/skywalker-go/internal/infra/tlsroots"
	"github.com/yndnr/skywalker-go/internal/telemetry/logger"
	"github.com/yndnr/skywalker-go/internal/telemetry/metric"
)

const stateKey = "state"

// State is shared by every command run in one process.
type State struct {
	Session *domain.Session
	Metrics *metric.Registry

	// Transport overrides the HTTP transport built from --timeout.
	Transport client.Doer
	// ReadPassword prompts for a password when none was given.
	ReadPassword func(prompt string) (string, error)

	// Set by setup for the running command.
	cfg       *config.CLIConfig
	cfgPath   string
	settings  Settings
	log       logger.Logger
	localizer *locale.Localizer
	facade    *client.Facade
}

// NewState creates a logged-out state.
func NewState() *State {
	return &State{
		Session:      domain.NewSession(),
		Metrics:      metric.NewRegistry(),
		ReadPassword: promptPassword,
		log:          logger.Discard(),
	}
}

// App creates the CLI application with a fresh state.
func App() *cli.App {
	return NewApp(NewState())
}

// NewApp creates the CLI application bound to st.
func NewApp(st *State) *cli.App {
	return &cli.App{
		Name:    "skywalker-cli",
		Usage:   "SkyWalker indoor positioning client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			LoginCommand(),
			LogoutCommand(),
			WhoamiCommand(),
			ReceiversCommand(),
			TagsCommand(),
			PositionCommand(),
			TrackCommand(),
			ConfigCommand(),
			VersionCommand(),
			ShellCommand(),
		},
		Metadata: map[string]any{stateKey: st},
		Before:   st.setup,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "SkyWalker server address (e.g., 10.0.0.5:8000)",
			EnvVars: []string{"SKYWALKER_SERVER"},
		},
		&cli.StringFlag{
			Name:    "login",
			Aliases: []string{"u"},
			Usage:   "Account login name",
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "Account password (prompted when omitted on a terminal)",
			EnvVars: []string{"SKYWALKER_PASSWORD"},
		},
		&cli.IntFlag{
			Name:    "center",
			Aliases: []string{"c"},
			Usage:   "Center ID to operate on",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Config file path (default ~/.skywalker/cli.yaml)",
		},
		&cli.StringFlag{
			Name:  "ca-file",
			Usage: "PEM bundle of extra CAs trusted for HTTPS servers",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-request timeout",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Server   string
	Login    string
	Password string
	CenterID int
	Output   string
	Config   string
	CAFile   string
	Timeout  time.Duration
	Verbose  bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Server:   c.String("server"),
		Login:    c.String("login"),
		Password: c.String("password"),
		CenterID: c.Int("center"),
		Output:   c.String("output"),
		Config:   c.String("config"),
		CAFile:   c.String("ca-file"),
		Timeout:  c.Duration("timeout"),
		Verbose:  c.Bool("verbose"),
	}
}

// Settings are the effective values after merging flags over config.
type Settings struct {
	Server   string
	Login    string
	Password string
	CenterID int
	Output   output.Format
	CAFile   string
	Timeout  time.Duration
	Verbose  bool
}

func resolve(c *cli.Context, cfg *config.CLIConfig) (Settings, error) {
	g := ParseGlobalFlags(c)
	s := Settings{
		Server:   cfg.Server,
		Login:    cfg.Login,
		Password: g.Password,
		CenterID: cfg.CenterID,
		CAFile:   cfg.TLS.CAFile,
		Timeout:  cfg.Timeout,
		Verbose:  g.Verbose,
	}
	if c.IsSet("server") {
		s.Server = g.Server
	}
	if c.IsSet("login") {
		s.Login = g.Login
	}
	if c.IsSet("center") {
		s.CenterID = g.CenterID
	}
	if c.IsSet("ca-file") {
		s.CAFile = g.CAFile
	}
	if c.IsSet("timeout") {
		s.Timeout = g.Timeout
	}

	format := cfg.Output
	if c.IsSet("output") {
		format = g.Output
	}
	f, err := output.ParseFormat(format)
	if err != nil {
		return Settings{}, err
	}
	s.Output = f
	return s, nil
}

// setup loads configuration and builds the logger and facade for the
// command about to run.
func (st *State) setup(c *cli.Context) error {
	path := c.String("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	settings, err := resolve(c, cfg)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if settings.Verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Level: level, Format: cfg.Log.Format, Output: c.App.ErrWriter})
	logger.SetDefault(log)

	transport := st.Transport
	if transport == nil {
		if transport, err = newTransport(settings); err != nil {
			return err
		}
	}
	loc := locale.New(cfg.Language)

	st.cfg = cfg
	st.cfgPath = path
	st.settings = settings
	st.log = log
	st.localizer = loc
	st.facade = client.New(st.Session,
		client.WithTransport(transport),
		client.WithLogger(log),
		client.WithMetrics(st.Metrics),
		client.WithPlaceholder(loc.Placeholder()),
	)
	return nil
}

func newTransport(s Settings) (client.Doer, error) {
	if s.CAFile == "" {
		return client.NewHTTPTransport(s.Timeout), nil
	}
	tlsCfg, err := tlsroots.ClientConfig(s.CAFile)
	if err != nil {
		return nil, fmt.Errorf("load CA file: %w", err)
	}
	return client.NewTLSTransport(s.Timeout, tlsCfg), nil
}

// GetState retrieves the shared state from context.
func GetState(c *cli.Context) *State {
	if st, ok := c.App.Metadata[stateKey].(*State); ok {
		return st
	}
	return nil
}

// EnsureLoggedIn returns a facade over a logged-in session. An existing
// session is reused; otherwise the command authenticates, selects the
// center and loads its landmarks.
func EnsureLoggedIn(c *cli.Context) (*client.Facade, error) {
	st := GetState(c)
	if st == nil || st.facade == nil {
		return nil, errors.New("cli state not initialized")
	}
	if _, center, ok := st.Session.Snapshot(); ok && center.Landmarks().Loaded() {
		return st.facade, nil
	}
	if err := st.login(c); err != nil {
		return nil, err
	}
	return st.facade, nil
}

func (st *State) login(c *cli.Context) error {
	s := st.settings
	if s.Server == "" {
		return errors.New("server required (--server, SKYWALKER_SERVER or config server)")
	}
	if s.Login == "" {
		return errors.New("login required (--login or config login)")
	}
	if s.CenterID <= 0 {
		return errors.New("center required (--center or config center_id)")
	}

	password := s.Password
	if password == "" {
		var err error
		if password, err = st.ReadPassword(fmt.Sprintf("Password for %s: ", s.Login)); err != nil {
			return err
		}
	}

	ctx := c.Context
	spin := output.NewSpinner(c.App.ErrWriter, "Signing in to "+s.Server)
	spin.Start()

	token, err := client.Await(ctx, st.facade.Authenticate(ctx, s.Server, s.Login, password))
	if err != nil {
		spin.Fail("Sign in failed")
		if hint := loginHint(err); hint != "" {
			return fmt.Errorf("login failed (%s): %w", hint, err)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	st.Session.Login(token)
	st.Session.SelectCenter(domain.NewCenter(s.CenterID))

	landmarks, err := client.Await(ctx, st.facade.LoadLandmarks(ctx))
	if err != nil {
		st.logout()
		spin.Fail("Loading receivers failed")
		return fmt.Errorf("load receivers of center %d: %w", s.CenterID, err)
	}
	spin.Stop()

	st.log.Info("logged in", "server", token.ServerURL(), "center", s.CenterID, "receivers", len(landmarks))
	return nil
}

// logout forgets the session and the receivers it loaded.
func (st *State) logout() {
	if tok := st.Session.CurrentToken(); !tok.IsZero() {
		st.log.Debug("session closed", "server", tok.ServerURL())
	}
	st.Session.Logout()
	st.Metrics.SetLandmarks(0)
}

// loginHint names the settings to check for a failed authentication.
func loginHint(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "check login and password"
	case errors.Is(err, domain.ErrNoConnection):
		return "check server and ca_file"
	case errors.Is(err, domain.ErrTimeout):
		return "server did not answer in time"
	case errors.Is(err, domain.ErrInvalidResponseBody):
		return "server is not a SkyWalker API"
	}
	return ""
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("password required (--password or SKYWALKER_PASSWORD)")
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

// render writes data to the command output in the selected format.
func render(c *cli.Context, data any) error {
	st := GetState(c)
	format := output.FormatTable
	if st != nil {
		format = st.settings.Output
	}
	return output.NewFormatter(format).Format(c.App.Writer, data)
}

// text localizes id for the current command.
func text(c *cli.Context, id string, data map[string]any) string {
	if st := GetState(c); st != nil && st.localizer != nil {
		return st.localizer.Text(id, data)
	}
	return locale.New("").Text(id, data)
}

// PrintError prints an error message to w.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}
