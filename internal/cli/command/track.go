package command

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/skywalker-go/internal/client"
	"github.com/yndnr/skywalker-go/internal/core/domain"
	"github.com/yndnr/skywalker-go/internal/infra/shutdown"
	"github.com/yndnr/skywalker-go/internal/telemetry/logger"
	"github.com/yndnr/skywalker-go/internal/telemetry/metric"
	"github.com/yndnr/skywalker-go/pkg/cmap"
)

const trackShutdownTimeout = 5 * time.Second

// TrackCommand returns the track command.
func TrackCommand() *cli.Command {
	return &cli.Command{
		Name:  "track",
		Usage: "Poll tag positions until interrupted",
		Flags: []cli.Flag{
			&cli.IntSliceFlag{
				Name:    "tag",
				Aliases: []string{"t"},
				Usage:   "Tag ID to track (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Track every tag of the center",
			},
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Delay between polls of one tag (default from config track.interval)",
			},
			&cli.IntFlag{
				Name:  "rounds",
				Usage: "Stop after polling every tag this many times (0 = until interrupted)",
			},
			&cli.StringFlag{
				Name:  "metrics-listen",
				Usage: "Serve Prometheus metrics on this address (e.g., :9100)",
			},
		},
		Action: trackAction,
	}
}

// boardEntry is the latest known state of one tracked tag.
type boardEntry struct {
	Tag      domain.Tag
	Position *domain.Position
	Status   string
	Polls    int
	Updated  time.Time
}

// tracker polls each tag on its own chain: the next poll of a tag is
// scheduled from the completion of the previous one, so at most one
// request per tag is in flight.
type tracker struct {
	facade   *client.Facade
	board    *cmap.Map[int, boardEntry]
	metrics  *metric.Registry
	log      logger.Logger
	interval time.Duration
	rounds   int

	chains sync.WaitGroup
}

func newTracker(facade *client.Facade, metrics *metric.Registry, log logger.Logger, interval time.Duration, rounds int) *tracker {
	return &tracker{
		facade:   facade,
		board:    cmap.New[int, boardEntry](),
		metrics:  metrics,
		log:      log,
		interval: interval,
		rounds:   rounds,
	}
}

func (t *tracker) start(ctx context.Context, tags []domain.Tag) {
	for _, tag := range tags {
		t.board.Set(tag.ID, boardEntry{Tag: tag, Status: statusPending})
	}
	for _, tag := range tags {
		t.chains.Add(1)
		t.poll(ctx, tag, 1)
	}
}

func (t *tracker) poll(ctx context.Context, tag domain.Tag, round int) {
	ch := t.facade.LastPosition(ctx, tag)
	go func() {
		r := <-ch
		if ctx.Err() != nil {
			t.chains.Done()
			return
		}
		t.record(tag, r)

		if t.rounds > 0 && round >= t.rounds {
			t.chains.Done()
			return
		}

		timer := time.NewTimer(t.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			t.chains.Done()
		case <-timer.C:
			t.poll(ctx, tag, round+1)
		}
	}()
}

// record applies one poll result. A missing nearest receiver leaves the
// last known position in place.
func (t *tracker) record(tag domain.Tag, r client.Result[domain.Position]) {
	var result string
	t.board.Update(tag.ID, func(e boardEntry, _ bool) boardEntry {
		e.Tag = tag
		e.Polls++
		switch {
		case r.Err == nil:
			pos := r.Value
			e.Position = &pos
			e.Status = statusOK
			e.Updated = time.Now()
			result = metric.PositionUpdated
		case errors.Is(r.Err, client.ErrNoUpdate):
			if e.Position == nil {
				e.Status = statusNoUpdate
			}
			result = metric.PositionUnchanged
		default:
			e.Status = domain.KindOf(r.Err).String()
			result = metric.PositionFailed
		}
		return e
	})
	t.metrics.PositionUpdate(result)
	if r.Err != nil && !errors.Is(r.Err, client.ErrNoUpdate) {
		t.log.Warn("position poll failed", "tag", tag.ID, "error", r.Err)
	}
}

// located counts tags with a known position.
func (t *tracker) located() int {
	n := 0
	t.board.Range(func(_ int, e boardEntry) bool {
		if e.Position != nil {
			n++
		}
		return true
	})
	return n
}

// snapshot returns the board sorted by tag id.
func (t *tracker) snapshot() positionList {
	entries := make([]boardEntry, 0, t.board.Count())
	t.board.Range(func(_ int, e boardEntry) bool {
		entries = append(entries, e)
		return true
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Tag.ID < entries[j].Tag.ID })

	rows := make(positionList, len(entries))
	for i, e := range entries {
		rows[i] = newPositionRow(e.Tag, e.Position, e.Status)
	}
	return rows
}

// selectTags filters the center's tags by the requested ids.
func selectTags(available []domain.Tag, ids []int, all bool) ([]domain.Tag, error) {
	if all {
		return available, nil
	}
	byID := make(map[int]domain.Tag, len(available))
	for _, tag := range available {
		byID[tag.ID] = tag
	}
	selected := make([]domain.Tag, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		tag, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("tag %d is not in the active center", id)
		}
		if !seen[id] {
			seen[id] = true
			selected = append(selected, tag)
		}
	}
	return selected, nil
}

func trackAction(c *cli.Context) error {
	ids := c.IntSlice("tag")
	all := c.Bool("all")
	if len(ids) == 0 && !all {
		return fmt.Errorf("select tags with --tag ID or --all")
	}

	st := GetState(c)
	interval := st.cfg.Track.Interval
	if c.IsSet("interval") {
		interval = c.Duration("interval")
	}
	if interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}

	facade, err := EnsureLoggedIn(c)
	if err != nil {
		return err
	}

	available, err := client.Await(c.Context, facade.AvailableTags(c.Context))
	if err != nil {
		return fmt.Errorf("list tags: %w", err)
	}
	tags, err := selectTags(available, ids, all)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return fmt.Errorf("no tags to track")
	}

	tr := newTracker(facade, st.Metrics, st.log, interval, c.Int("rounds"))
	collector := metric.NewBoardCollector(tr.located)
	if err := st.Metrics.Register(collector); err != nil {
		return fmt.Errorf("register board metrics: %w", err)
	}
	defer st.Metrics.Unregister(collector)

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	h := shutdown.NewHandler(trackShutdownTimeout)
	h.SetLogger(st.log)

	if addr := c.String("metrics-listen"); addr != "" {
		srv, err := serveMetrics(addr, st.Metrics, st.log)
		if err != nil {
			return err
		}
		h.OnShutdown("metrics server", srv.Shutdown)
	}
	h.OnShutdown("pollers", func(sctx context.Context) error {
		cancel()
		return facade.Wait(sctx)
	})

	tr.start(ctx, tags)
	go func() {
		tr.chains.Wait()
		h.Trigger()
	}()

	var rendered chan struct{}
	if c.Int("rounds") == 0 {
		rendered = make(chan struct{})
		go func() {
			defer close(rendered)
			renderLoop(ctx, c, tr, interval)
		}()
	}

	if err := h.Wait(c.Context); err != nil {
		st.log.Warn("track shutdown incomplete", "error", err)
	}
	cancel()
	if rendered != nil {
		<-rendered
	}
	return render(c, tr.snapshot())
}

func renderLoop(ctx context.Context, c *cli.Context, tr *tracker, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := render(c, tr.snapshot()); err != nil {
				return
			}
			fmt.Fprintln(c.App.Writer)
		}
	}
}

func serveMetrics(addr string, reg *metric.Registry, log logger.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listen: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", "error", err)
		}
	}()
	log.Info("serving metrics", "addr", ln.Addr().String())
	return srv, nil
}
