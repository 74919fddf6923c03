// Package session drives the lifecycle of one room membership.
//
// All mutable state is owned by a single loop goroutine. Public methods and
// network continuations hand closures to that loop; continuations carry the
// attempt generation they were started under and are dropped when it changed.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dkeye/roomclient/internal/app"
	"github.com/dkeye/roomclient/internal/chat"
	"github.com/dkeye/roomclient/internal/core"
	"github.com/dkeye/roomclient/internal/domain"
	"github.com/dkeye/roomclient/internal/media"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

var (
	ErrClosed         = errors.New("session controller closed")
	ErrBusy           = errors.New("session already active")
	ErrNotJoined      = errors.New("session not joined")
	ErrPassiveRole    = errors.New("role does not publish media")
	ErrMediaNotReady  = errors.New("local media not published yet")
	ErrLeaveCancelled = errors.New("leave cancelled")
	ErrEmptyMessage   = errors.New("empty chat message")
	ErrRateLimited    = errors.New("chat rate limited")
	ErrCredential     = errors.New("credential unavailable")
)

type Options struct {
	// SignalURL maps an environment to the signaling endpoint.
	SignalURL      func(env domain.Env) string
	BaseURL        string
	ConnectTimeout time.Duration
	JoinTimeout    time.Duration
	PublishTimeout time.Duration
}

type Deps struct {
	Tokens     core.TokenSource
	Clients    core.ClientFactory
	Publishers core.PublisherFactory
	Navigator  core.Navigator
	Confirmer  core.Confirmer
	Policy     app.Policy
	Limiter    *app.RateLimiter
	Media      *media.Store
}

type Controller struct {
	opts Options
	deps Deps

	cmds      chan func()
	done      chan struct{}
	loopDone  chan struct{}
	closeOnce sync.Once
	bg        conc.WaitGroup

	baseCtx    context.Context
	cancelBase context.CancelFunc

	// loop-owned
	state         domain.ConnectionState
	gen           uint64
	info          domain.LoginInfo
	joinStarted   bool
	attempt       int
	local         domain.LocalParticipant
	roster        *app.Roster
	chat          *chat.Log
	chatOpen      bool
	unread        bool
	shareURL      string
	client        core.SignalClient
	unsub         func()
	pub           core.MediaPublisher
	attemptCtx    context.Context
	attemptCancel context.CancelFunc
	observers     map[*observer]struct{}
}

func New(opts Options, deps Deps) *Controller {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 15 * time.Second
	}
	if opts.JoinTimeout <= 0 {
		opts.JoinTimeout = 10 * time.Second
	}
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = 20 * time.Second
	}
	if deps.Policy == nil {
		deps.Policy = app.NoReconnect{}
	}
	if deps.Media == nil {
		deps.Media = media.NewStore(nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		opts:       opts,
		deps:       deps,
		cmds:       make(chan func()),
		done:       make(chan struct{}),
		loopDone:   make(chan struct{}),
		baseCtx:    ctx,
		cancelBase: cancel,
		roster:     app.NewRoster(),
		chat:       chat.NewLog(),
		observers:  make(map[*observer]struct{}),
	}
	go c.run()
	return c
}

func (c *Controller) run() {
	defer close(c.loopDone)
	for {
		select {
		case fn := <-c.cmds:
			fn()
		case <-c.done:
			return
		}
	}
}

// do runs fn on the loop and waits for it.
func (c *Controller) do(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	wrapped := func() {
		defer close(ran)
		fn()
	}
	select {
	case c.cmds <- wrapped:
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	<-ran
	return nil
}

// post hands a continuation to the loop without waiting for it to run.
func (c *Controller) post(fn func()) {
	select {
	case c.cmds <- fn:
	case <-c.done:
	}
}

// Close tears the session down without confirmation and stops the controller.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		_ = c.do(context.Background(), func() {
			if c.state != domain.StateDisconnected {
				c.reset("close")
				c.setState(domain.StateDisconnected)
			}
			for o := range c.observers {
				close(o.ch)
				delete(c.observers, o)
			}
		})
		c.cancelBase()
		close(c.done)
		<-c.loopDone
		c.bg.Wait()
		log.Info().Str("module", "session").Msg("controller closed")
	})
}

func (c *Controller) setState(s domain.ConnectionState) {
	if c.state == s {
		return
	}
	log.Info().Str("module", "session").Str("from", c.state.String()).Str("to", s.String()).Msg("state")
	c.state = s
	transitionsTotal.WithLabelValues(s.String()).Inc()
	c.publishSnapshot()
}

func (c *Controller) withTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = c.baseCtx
	}
	return context.WithTimeout(parent, d)
}
