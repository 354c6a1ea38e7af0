package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/skywalker-go/internal/cli/output"
	"github.com/yndnr/skywalker-go/internal/infra/locale"
)

// LoginCommand returns the login command.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:   "login",
		Usage:  "Authenticate and load the center's receivers",
		Action: loginAction,
	}
}

func loginAction(c *cli.Context) error {
	st := GetState(c)
	st.logout()

	if _, err := EnsureLoggedIn(c); err != nil {
		return err
	}

	tok, center, _ := st.Session.Snapshot()
	fmt.Fprintln(c.App.Writer, text(c, locale.LoggedIn, map[string]any{
		"Server":    tok.ServerURL(),
		"CenterID":  center.ID(),
		"Landmarks": center.Landmarks().Len(),
	}))
	return nil
}

// LogoutCommand returns the logout command.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Forget the token and the active center",
		Action: func(c *cli.Context) error {
			GetState(c).logout()
			fmt.Fprintln(c.App.Writer, text(c, locale.LoggedOut, nil))
			return nil
		},
	}
}

// sessionInfo is the whoami view. The token value is never shown.
type sessionInfo struct {
	LoggedIn  bool   `json:"logged_in" yaml:"logged_in"`
	Server    string `json:"server,omitempty" yaml:"server,omitempty"`
	CenterID  int    `json:"center_id,omitempty" yaml:"center_id,omitempty"`
	Receivers int    `json:"receivers" yaml:"receivers"`
}

func (s sessionInfo) Table() *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("logged_in", formatBool(s.LoggedIn))
	if s.LoggedIn {
		t.AddRow("server", s.Server)
		t.AddRow("center_id", formatInt(s.CenterID))
		t.AddRow("receivers", formatInt(s.Receivers))
	}
	return t
}

// WhoamiCommand returns the whoami command.
func WhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the current session",
		Action: func(c *cli.Context) error {
			var info sessionInfo
			if tok, center, ok := GetState(c).Session.Snapshot(); ok {
				info = sessionInfo{
					LoggedIn:  true,
					Server:    tok.ServerURL(),
					CenterID:  center.ID(),
					Receivers: center.Landmarks().Len(),
				}
			}
			return render(c, info)
		},
	}
}
