package command

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/skywalker-go/internal/client"
	"github.com/yndnr/skywalker-go/internal/core/domain"
)

// PositionCommand returns the position command.
func PositionCommand() *cli.Command {
	return &cli.Command{
		Name:      "position",
		Aliases:   []string{"pos"},
		Usage:     "Show the last known position of one or more tags",
		ArgsUsage: "TAG_ID...",
		Action:    positionAction,
	}
}

func parseTagIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid tag id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func positionAction(c *cli.Context) error {
	ids, err := parseTagIDs(c.Args().Slice())
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("at least one tag id required")
	}

	facade, err := EnsureLoggedIn(c)
	if err != nil {
		return err
	}

	// Issue every request before waiting on any of them.
	pending := make([]<-chan client.Result[domain.Position], len(ids))
	for i, id := range ids {
		pending[i] = facade.LastPosition(c.Context, domain.Tag{ID: id})
	}

	rows := make(positionList, 0, len(ids))
	var failed error
	for i, ch := range pending {
		tag := domain.Tag{ID: ids[i]}
		pos, err := client.Await(c.Context, ch)
		switch {
		case err == nil:
			rows = append(rows, newPositionRow(tag, &pos, statusOK))
		case errors.Is(err, client.ErrNoUpdate):
			rows = append(rows, newPositionRow(tag, nil, statusNoUpdate))
		default:
			rows = append(rows, newPositionRow(tag, nil, domain.KindOf(err).String()))
			failed = errors.Join(failed, fmt.Errorf("tag %d: %w", tag.ID, err))
		}
	}

	if err := render(c, rows); err != nil {
		return err
	}
	return failed
}
