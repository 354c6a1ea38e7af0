package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/skywalker-go/internal/client"
)

// TagsCommand returns the tags subcommand group.
func TagsCommand() *cli.Command {
	return &cli.Command{
		Name:  "tags",
		Usage: "Tag management",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List the tags of the active center",
				Action:  tagsList,
			},
			{
				Name:      "register",
				Usage:     "Register this device as a beacon tag",
				ArgsUsage: "NAME",
				Action:    tagsRegister,
			},
		},
	}
}

func tagsList(c *cli.Context) error {
	facade, err := EnsureLoggedIn(c)
	if err != nil {
		return err
	}

	tags, err := client.Await(c.Context, facade.AvailableTags(c.Context))
	if err != nil {
		return fmt.Errorf("list tags: %w", err)
	}
	return render(c, tagList(tags))
}

func tagsRegister(c *cli.Context) error {
	name := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if name == "" {
		return fmt.Errorf("tag name required")
	}

	facade, err := EnsureLoggedIn(c)
	if err != nil {
		return err
	}

	frame, err := client.Await(c.Context, facade.RegisterAsBeacon(c.Context, name))
	if err != nil {
		return fmt.Errorf("register beacon: %w", err)
	}
	return render(c, beaconView{
		Name:  name,
		UUID:  frame.UUID.String(),
		Major: frame.Major,
		Minor: frame.Minor,
	})
}
