package session

import (
	"context"

	"github.com/dkeye/roomclient/internal/core"
	"github.com/dkeye/roomclient/internal/domain"
	"github.com/rs/zerolog/log"
)

func (c *Controller) SetAudioEnabled(ctx context.Context, enabled bool) error {
	return c.toggle(ctx, core.TrackAudio, enabled)
}

func (c *Controller) SetVideoEnabled(ctx context.Context, enabled bool) error {
	return c.toggle(ctx, core.TrackVideo, enabled)
}

func (c *Controller) SetScreenShare(ctx context.Context, enabled bool) error {
	return c.toggle(ctx, core.TrackScreen, enabled)
}

// UpdateMediaSettings replaces the settings and, with reapply, renegotiates the active publish.
func (c *Controller) UpdateMediaSettings(ctx context.Context, settings domain.MediaSettings, reapply bool) error {
	err := c.deps.Media.Update(ctx, settings, reapply)
	_ = c.do(ctx, func() {
		if err != nil {
			c.notice(LevelError, "Settings", err.Error())
		}
		c.publishSnapshot()
	})
	return err
}

// toggle flips the flag right away and confirms or rolls it back when the request finishes.
func (c *Controller) toggle(ctx context.Context, kind core.TrackKind, enabled bool) error {
	var err error
	if doErr := c.do(ctx, func() { err = c.applyToggle(kind, enabled) }); doErr != nil {
		return doErr
	}
	return err
}

func (c *Controller) applyToggle(kind core.TrackKind, enabled bool) error {
	if c.state != domain.StateJoined {
		return ErrNotJoined
	}
	if c.info.Role.IsPassive() {
		return ErrPassiveRole
	}
	pub := c.pub
	if pub == nil && kind == core.TrackScreen {
		return ErrMediaNotReady
	}

	prev := c.flag(kind)
	if prev == enabled {
		return nil
	}
	c.setFlag(kind, enabled)
	if pub == nil {
		// applied by the publish when it starts
		c.publishSnapshot()
		return nil
	}
	c.setPending(kind, true)
	c.publishSnapshot()

	gen, ctx := c.gen, c.attemptCtx
	c.bg.Go(func() {
		var err error
		if kind == core.TrackScreen {
			err = pub.SetScreenShare(ctx, enabled)
		} else {
			err = pub.SetTrackEnabled(ctx, kind, enabled)
		}
		c.post(func() { c.onToggleResult(gen, kind, enabled, prev, err) })
	})
	return nil
}

func (c *Controller) onToggleResult(gen uint64, kind core.TrackKind, requested, prev bool, err error) {
	if gen != c.gen {
		return
	}
	c.setPending(kind, false)
	if err != nil {
		log.Warn().Err(err).Str("module", "session").Str("kind", string(kind)).Bool("requested", requested).Msg("toggle failed")
		if c.flag(kind) == requested {
			c.setFlag(kind, prev)
			toggleRollbacksTotal.WithLabelValues(string(kind)).Inc()
		}
		c.notice(LevelWarn, "Media", err.Error())
	}
	c.publishSnapshot()
}

func (c *Controller) flag(kind core.TrackKind) bool {
	switch kind {
	case core.TrackAudio:
		return c.local.AudioEnabled
	case core.TrackVideo:
		return c.local.VideoEnabled
	default:
		return c.local.ScreenSharing
	}
}

func (c *Controller) setFlag(kind core.TrackKind, v bool) {
	switch kind {
	case core.TrackAudio:
		c.local.AudioEnabled = v
	case core.TrackVideo:
		c.local.VideoEnabled = v
	default:
		c.local.ScreenSharing = v
	}
}

func (c *Controller) setPending(kind core.TrackKind, v bool) {
	switch kind {
	case core.TrackAudio:
		c.local.AudioPending = v
	case core.TrackVideo:
		c.local.VideoPending = v
	default:
		c.local.ScreenPending = v
	}
}
