package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/skywalker-go/internal/core/domain"
	"github.com/yndnr/skywalker-go/internal/infra/buildinfo"
	"github.com/yndnr/skywalker-go/internal/telemetry/logger"
	"github.com/yndnr/skywalker-go/internal/telemetry/metric"
)

// Operation names used in errors, logs and metrics.
const (
	OpAuthenticate   = "auth"
	OpRegisterBeacon = "beacon.register"
	OpListReceivers  = "receivers.list"
	OpListTags       = "tags.list"
	OpLastPosition   = "position.get"
)

// Facade issues authenticated requests against the SkyWalker REST API.
type Facade struct {
	session     *domain.Session
	transport   Doer
	log         logger.Logger
	metrics     *metric.Registry
	placeholder string
	userAgent   string

	inflight sync.WaitGroup
}

// Option configures a Facade.
type Option func(*Facade)

// WithTransport sets the HTTP transport.
func WithTransport(d Doer) Option {
	return func(f *Facade) {
		f.transport = d
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(f *Facade) {
		f.log = l
	}
}

// WithMetrics records request metrics on r.
func WithMetrics(r *metric.Registry) Option {
	return func(f *Facade) {
		f.metrics = r
	}
}

// WithPlaceholder sets the name given to tags the server sent without one.
func WithPlaceholder(name string) Option {
	return func(f *Facade) {
		f.placeholder = name
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Facade) {
		f.userAgent = ua
	}
}

// New creates a facade bound to session.
func New(session *domain.Session, opts ...Option) *Facade {
	f := &Facade{
		session:     session,
		transport:   NewHTTPTransport(DefaultTimeout),
		log:         logger.Default(),
		placeholder: DefaultPlaceholder,
		userAgent:   buildinfo.UserAgent(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Session returns the session the facade reads credentials from.
func (f *Facade) Session() *domain.Session {
	return f.session
}

// Wait blocks until every in-flight request has delivered its result or
// ctx is done.
func (f *Facade) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		f.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Authenticate asks serverURL for a token. It is the only operation allowed
// while logged out and it does not install the token in the session.
func (f *Facade) Authenticate(ctx context.Context, serverURL, login, password string) <-chan Result[domain.Token] {
	req := request{
		op:     OpAuthenticate,
		method: http.MethodPost,
		url:    NormalizeServerURL(serverURL) + "/api/authentication",
		body: map[string]string{
			"login":    login,
			"password": password,
		},
	}
	return dispatch(f, ctx, req, func(body []byte) (domain.Token, error) {
		return domain.NewToken(serverURL, string(body)), nil
	})
}

// RegisterAsBeacon registers the device as a tag named displayName and
// returns the frame it must broadcast.
func (f *Facade) RegisterAsBeacon(ctx context.Context, displayName string) <-chan Result[domain.BeaconFrame] {
	tok, center := f.mustSession(OpRegisterBeacon)
	req := request{
		op:     OpRegisterBeacon,
		method: http.MethodPost,
		url:    centerURL(tok, center.ID(), "/tags/"),
		body:   map[string]string{"name": displayName},
		token:  &tok,
	}
	return dispatch(f, ctx, req, decodeBeaconFrame)
}

// CenterReceivers lists the landmarks of centerID in server order.
// The caller decides whether to install them; see LoadLandmarks.
func (f *Facade) CenterReceivers(ctx context.Context, centerID int) <-chan Result[[]domain.Landmark] {
	tok, _ := f.mustSession(OpListReceivers)
	return dispatch(f, ctx, receiversRequest(tok, centerID), decodeLandmarks)
}

// LoadLandmarks fetches the active center's landmarks and installs them in
// its directory with a single atomic replace. A failed load leaves the
// directory untouched.
func (f *Facade) LoadLandmarks(ctx context.Context) <-chan Result[[]domain.Landmark] {
	tok, center := f.mustSession(OpListReceivers)
	dir := center.Landmarks()
	decode := func(body []byte) ([]domain.Landmark, error) {
		landmarks, err := decodeLandmarks(body)
		if err != nil {
			return nil, err
		}
		dir.Replace(landmarks)
		return landmarks, nil
	}
	return dispatchThen(f, ctx, receiversRequest(tok, center.ID()), decode, func(error) {
		f.metrics.SetLandmarks(dir.Len())
	})
}

// AvailableTags lists the tags of the active center.
func (f *Facade) AvailableTags(ctx context.Context) <-chan Result[[]domain.Tag] {
	tok, center := f.mustSession(OpListTags)
	req := request{
		op:     OpListTags,
		method: http.MethodGet,
		url:    centerURL(tok, center.ID(), "/tags"),
		token:  &tok,
	}
	return dispatch(f, ctx, req, decodeTags(f.placeholder))
}

// LastPosition resolves tag's nearest landmark in the active center.
// When the server reports no nearest landmark the result carries ErrNoUpdate.
func (f *Facade) LastPosition(ctx context.Context, tag domain.Tag) <-chan Result[domain.Position] {
	tok, center := f.mustSession(OpLastPosition)
	req := request{
		op:     OpLastPosition,
		method: http.MethodGet,
		url:    centerURL(tok, center.ID(), fmt.Sprintf("/tags/%d", tag.ID)),
		token:  &tok,
	}
	return dispatch(f, ctx, req, decodePosition(tag, center))
}

// mustSession returns a consistent token and center, or panics.
func (f *Facade) mustSession(op string) (domain.Token, *domain.Center) {
	tok, center, ok := f.session.Snapshot()
	if !ok {
		panic(fmt.Errorf("%s: %w", op, domain.ErrNotLoggedIn))
	}
	return tok, center
}

func receiversRequest(tok domain.Token, centerID int) request {
	return request{
		op:     OpListReceivers,
		method: http.MethodGet,
		url:    centerURL(tok, centerID, "/rdhubs"),
		token:  &tok,
	}
}

func centerURL(tok domain.Token, centerID int, suffix string) string {
	return fmt.Sprintf("%s/api/centers/%d%s", NormalizeServerURL(tok.ServerURL()), centerID, suffix)
}

// dispatch runs req on its own goroutine, decodes the body with decode and
// delivers exactly one Result before closing the returned channel.
func dispatch[T any](f *Facade, ctx context.Context, req request, decode func([]byte) (T, error)) <-chan Result[T] {
	return dispatchThen(f, ctx, req, decode, nil)
}

// dispatchThen is dispatch with done called on the request goroutine
// before the result is delivered.
func dispatchThen[T any](f *Facade, ctx context.Context, req request, decode func([]byte) (T, error), done func(error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	f.inflight.Add(1)
	go func() {
		defer f.inflight.Done()
		defer close(ch)
		v, err := execute(f, ctx, req, decode)
		if done != nil {
			done(err)
		}
		ch <- Result[T]{Value: v, Err: err}
	}()
	return ch
}

func execute[T any](f *Facade, ctx context.Context, req request, decode func([]byte) (T, error)) (T, error) {
	var zero T
	log := f.log.WithContext(ctx).With("request_id", ulid.Make().String(), "operation", req.op)

	start := time.Now()
	body, status, err := f.roundTrip(ctx, req)
	var v T
	if err == nil {
		v, err = decode(body)
	}
	elapsed := time.Since(start)

	switch {
	case err == nil:
		f.metrics.ObserveRequest(req.op, metric.OutcomeSuccess, elapsed)
		log.Debug("request completed", "status", status, "duration", elapsed)
		return v, nil
	case errors.Is(err, ErrNoUpdate):
		f.metrics.ObserveRequest(req.op, metric.OutcomeNoUpdate, elapsed)
		log.Debug("request completed without update", "status", status, "duration", elapsed)
		return zero, err
	default:
		kind := Classify(err)
		f.metrics.ObserveRequest(req.op, kind.String(), elapsed)
		log.Warn("request failed", "kind", kind.String(), "status", status, "duration", elapsed, "error", err)
		return zero, domain.NewError(kind, req.op, err)
	}
}
