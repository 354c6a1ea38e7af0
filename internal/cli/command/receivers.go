package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/skywalker-go/internal/client"
)

// ReceiversCommand returns the receivers command.
func ReceiversCommand() *cli.Command {
	return &cli.Command{
		Name:    "receivers",
		Aliases: []string{"rdhubs"},
		Usage:   "List the receivers (landmarks) of the active center",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "refresh",
				Usage: "Fetch the list again instead of using the loaded one",
			},
		},
		Action: receiversAction,
	}
}

func receiversAction(c *cli.Context) error {
	facade, err := EnsureLoggedIn(c)
	if err != nil {
		return err
	}

	if c.Bool("refresh") {
		if _, err := client.Await(c.Context, facade.LoadLandmarks(c.Context)); err != nil {
			return fmt.Errorf("list receivers: %w", err)
		}
	}

	center := facade.Session().CurrentCenter()
	return render(c, landmarkList(center.Landmarks().All()))
}
