package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dkeye/roomclient/internal/app"
	"github.com/dkeye/roomclient/internal/chat"
	"github.com/dkeye/roomclient/internal/core"
	"github.com/dkeye/roomclient/internal/domain"
	"github.com/dkeye/roomclient/internal/params"
	"github.com/rs/zerolog/log"
)

// Join fetches a credential and starts a connection attempt. It returns once
// the attempt is under way; progress is reported through snapshots.
func (c *Controller) Join(ctx context.Context, info domain.LoginInfo) error {
	if r, ok := domain.ParseRole(string(info.Role)); ok {
		info.Role = r
	}
	if e, ok := domain.ParseEnv(string(info.Env)); ok {
		info.Env = e
	}
	if err := params.ValidateLogin(info); err != nil {
		return err
	}

	var busy bool
	if err := c.do(ctx, func() { busy = c.state != domain.StateDisconnected }); err != nil {
		return err
	}
	if busy {
		return ErrBusy
	}

	if !info.Role.IsPassive() {
		cur := c.deps.Media.Current()
		if err := c.deps.Media.Update(ctx, cur.WithDevices(info.SelectedAudioDevice, info.SelectedVideoDevice), false); err != nil {
			log.Warn().Err(err).Str("module", "session").Msg("device selection not applied")
		}
	}

	tok, err := c.fetchToken(ctx, info)
	if err != nil {
		_ = c.do(ctx, func() { c.notice(LevelError, "Token", err.Error()) })
		return fmt.Errorf("%w: %w", ErrCredential, err)
	}

	var startErr error
	if err := c.do(ctx, func() {
		if c.state != domain.StateDisconnected {
			startErr = ErrBusy
			return
		}
		startErr = c.beginAttempt(info, tok)
	}); err != nil {
		return err
	}
	return startErr
}

func (c *Controller) fetchToken(ctx context.Context, info domain.LoginInfo) (domain.Token, error) {
	tok, err := c.deps.Tokens.Fetch(ctx, domain.TokenRequest{
		RoomID:   info.RoomID,
		UserName: info.DisplayName,
		Env:      info.Env,
		Role:     info.Role,
	})
	if err != nil {
		log.Error().Err(err).Str("module", "session").Str("room", string(info.RoomID)).Msg("token fetch failed")
		return "", err
	}
	return tok, nil
}

// beginAttempt builds a fresh client and dials it. Loop only.
func (c *Controller) beginAttempt(info domain.LoginInfo, tok domain.Token) error {
	local, err := domain.NewLocalParticipant(info.DisplayName, info.Role)
	if err != nil {
		return err
	}
	if c.client != nil {
		c.teardown("replaced")
	}
	c.gen++
	gen := c.gen
	c.info = info
	c.joinStarted = false
	c.local = *local

	client := c.deps.Clients(c.opts.SignalURL(info.Env), tok, info.DisplayName)
	events, unsub := client.Subscribe()
	c.client, c.unsub = client, unsub
	c.attemptCtx, c.attemptCancel = context.WithCancel(c.baseCtx)
	ctx := c.attemptCtx

	log.Info().Str("module", "session").Str("room", string(info.RoomID)).Str("env", string(info.Env)).
		Str("role", string(info.Role)).Uint64("gen", gen).Msg("connecting")
	c.setState(domain.StateConnecting)

	c.bg.Go(func() { c.forward(ctx, gen, events) })
	c.bg.Go(func() {
		cctx, cancel := c.withTimeout(ctx, c.opts.ConnectTimeout)
		defer cancel()
		if err := client.Connect(cctx); err != nil {
			c.post(func() { c.onConnectFailed(gen, err) })
		}
	})
	return nil
}

// forward relays client events to the loop in receive order.
func (c *Controller) forward(ctx context.Context, gen uint64, events <-chan core.Event) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.post(func() { c.handleEvent(gen, ev) })
		case <-ctx.Done():
			return
		case <-c.done:
			return
		}
	}
}

func (c *Controller) onConnectFailed(gen uint64, err error) {
	if gen != c.gen {
		return
	}
	log.Error().Err(err).Str("module", "session").Msg("connect failed")
	c.notice(LevelError, "Connection failed", err.Error())
	c.teardown("connect failed")
	if c.attempt > 0 && c.tryReconnect() {
		return
	}
	c.reset("connect failed")
	c.setState(domain.StateDisconnected)
}

func (c *Controller) onConnect() {
	if c.joinStarted {
		log.Debug().Str("module", "session").Msg("duplicate connect ignored")
		return
	}
	if c.state != domain.StateConnecting {
		return
	}
	c.joinStarted = true
	gen, client, room, ctx := c.gen, c.client, c.info.RoomID, c.attemptCtx
	c.setState(domain.StateJoining)

	c.bg.Go(func() {
		jctx, cancel := c.withTimeout(ctx, c.opts.JoinTimeout)
		defer cancel()
		err := client.Join(jctx, room)
		c.post(func() { c.onJoinResult(gen, err) })
	})
}

func (c *Controller) onJoinResult(gen uint64, err error) {
	if gen != c.gen || c.state != domain.StateJoining {
		return
	}
	if err != nil {
		log.Warn().Err(err).Str("module", "session").Str("room", string(c.info.RoomID)).Msg("join failed")
		c.notice(LevelWarn, "Join failed", err.Error())
		return
	}

	c.attempt = 0
	if c.info.Role.IsPassive() {
		c.local.AudioEnabled, c.local.VideoEnabled = false, false
	} else {
		c.local.VideoEnabled = !c.info.AudioOnly
		c.local.AudioEnabled = !c.info.VideoOnly
	}
	c.shareURL = params.ShareURL(c.opts.BaseURL, c.info.RoomID, c.info.Env, c.info.Role)
	c.navigate(c.shareURL)
	c.setState(domain.StateJoined)
	c.notice(LevelInfo, "Connected!", fmt.Sprintf("Welcome to the %s room => %s", c.info.DisplayRoomName(), c.info.RoomID))

	if !c.info.Role.IsPassive() {
		c.startPublish()
	}
}

func (c *Controller) startPublish() {
	if c.deps.Publishers == nil {
		return
	}
	pub, err := c.deps.Publishers(c.client, c.deps.Media.Current(), core.InitialMedia{
		Audio: c.local.AudioEnabled,
		Video: c.local.VideoEnabled,
	})
	if err != nil {
		log.Error().Err(err).Str("module", "session").Msg("publisher create failed")
		c.notice(LevelError, "Media", err.Error())
		return
	}
	c.pub = pub
	c.deps.Media.Attach(pub)

	gen, ctx := c.gen, c.attemptCtx
	c.bg.Go(func() {
		pctx, cancel := c.withTimeout(ctx, c.opts.PublishTimeout)
		defer cancel()
		if err := pub.Publish(pctx); err != nil {
			c.post(func() { c.onPublishFailed(gen, err) })
		}
	})
}

func (c *Controller) onPublishFailed(gen uint64, err error) {
	if gen != c.gen {
		return
	}
	log.Error().Err(err).Str("module", "session").Msg("publish failed")
	c.notice(LevelError, "Media", err.Error())
}

// Leave asks for confirmation, then ends the membership.
func (c *Controller) Leave(ctx context.Context) error {
	var active bool
	if err := c.do(ctx, func() { active = c.leavable() }); err != nil {
		return err
	}
	if !active {
		return ErrNotJoined
	}
	if c.deps.Confirmer != nil && !c.deps.Confirmer.Confirm(ctx, "Leave Now?", "Do you want to leave the room?") {
		return ErrLeaveCancelled
	}

	var err error
	if doErr := c.do(ctx, func() {
		if !c.leavable() {
			err = ErrNotJoined
			return
		}
		c.setState(domain.StateLeaving)
		c.navigate(c.opts.BaseURL)
		c.reset("leave")
		c.setState(domain.StateDisconnected)
	}); doErr != nil {
		return doErr
	}
	return err
}

func (c *Controller) navigate(url string) {
	if c.deps.Navigator == nil {
		return
	}
	if err := c.deps.Navigator.Push(url); err != nil {
		log.Error().Err(err).Str("module", "session").Str("url", url).Msg("navigator push failed")
	}
}

func (c *Controller) leavable() bool {
	return c.state != domain.StateDisconnected && c.state != domain.StateLeaving
}

// teardown drops the transport and media of the current attempt. Loop only.
func (c *Controller) teardown(reason string) {
	c.gen++
	if c.attemptCancel != nil {
		c.attemptCancel()
		c.attemptCancel = nil
	}
	c.deps.Media.Detach()
	if c.pub != nil {
		if err := c.pub.Close(); err != nil {
			log.Warn().Err(err).Str("module", "session").Msg("publisher close")
		}
		c.pub = nil
	}
	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}
	if c.client != nil {
		c.client.Disconnect()
		c.client = nil
	}
	c.roster.Clear()
	c.joinStarted = false
	c.local.AudioPending, c.local.VideoPending, c.local.ScreenPending = false, false, false
	log.Info().Str("module", "session").Str("reason", reason).Msg("teardown")
}

// reset ends the membership: transport, media and all session fields. Loop only.
func (c *Controller) reset(reason string) {
	c.teardown(reason)
	c.info = domain.LoginInfo{}
	c.local = domain.LocalParticipant{}
	c.chat = chat.NewLog()
	c.unread = false
	c.shareURL = ""
	c.attempt = 0
	c.deps.Limiter.Reset()
}

// tryReconnect schedules the next attempt if the policy allows it. Loop only.
func (c *Controller) tryReconnect() bool {
	c.attempt++
	action, delay := c.deps.Policy.OnDisconnected(c.attempt)
	if action != app.Reconnect {
		return false
	}
	c.setState(domain.StateReconnecting)
	c.notice(LevelWarn, "Reconnecting", fmt.Sprintf("attempt %d in %s", c.attempt, delay))

	gen, info, ctx := c.gen, c.info, c.baseCtx
	c.bg.Go(func() {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return
		}
		tok, err := c.fetchToken(ctx, info)
		c.post(func() { c.onReconnectToken(gen, tok, err) })
	})
	return true
}

func (c *Controller) onReconnectToken(gen uint64, tok domain.Token, err error) {
	if gen != c.gen || c.state != domain.StateReconnecting {
		return
	}
	if err != nil {
		if c.tryReconnect() {
			return
		}
		c.notice(LevelError, "Disconnected", "could not reconnect")
		c.reset("reconnect exhausted")
		c.setState(domain.StateDisconnected)
		return
	}
	if err := c.beginAttempt(c.info, tok); err != nil {
		log.Error().Err(err).Str("module", "session").Msg("reconnect aborted")
		c.reset("reconnect aborted")
		c.setState(domain.StateDisconnected)
	}
}
