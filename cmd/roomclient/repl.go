package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	router "github.com/dkeye/roomclient/internal/adapters/http"
	"github.com/dkeye/roomclient/internal/app/session"
	"github.com/mattn/go-shellwords"
)

var (
	errQuit       = errors.New("quit")
	errUsage      = errors.New("usage")
	errUnknownCmd = errors.New("unknown command, try 'help'")
)

const helpText = `commands:
  say <text>                       send a chat message
  audio on|off                     microphone
  video on|off                     camera
  share on|off                     screen share
  chat open|close                  chat panel
  peers                            remote participants
  messages                         chat history
  settings <key> <value> [--reapply]
                                   keys: resolution bandwidth codec frame_rate audio_device video_device dev_mode
  status                           session summary
  leave                            leave the room
  quit                             exit`

type repl struct {
	sess  router.Session
	lines <-chan string
	out   io.Writer
}

func (r *repl) run(ctx context.Context) error {
	for {
		fmt.Fprint(r.out, "❯ ")
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-r.lines:
			if !ok {
				// stdin closed: keep serving the control API until a signal
				<-ctx.Done()
				return nil
			}
			err := r.exec(ctx, line)
			if errors.Is(err, errQuit) {
				return err
			}
			if err != nil {
				fmt.Fprintln(r.out, "error:", err)
			}
		}
	}
}

func (r *repl) exec(ctx context.Context, line string) error {
	args, err := shellwords.Parse(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "say":
		if len(args) < 2 {
			return fmt.Errorf("%w: say <text>", errUsage)
		}
		return r.sess.SendMessage(ctx, strings.Join(args[1:], " "))
	case "audio", "video", "share":
		if len(args) != 2 {
			return fmt.Errorf("%w: %s on|off", errUsage, args[0])
		}
		on, err := parseOnOff(args[1])
		if err != nil {
			return err
		}
		switch args[0] {
		case "audio":
			return r.sess.SetAudioEnabled(ctx, on)
		case "video":
			return r.sess.SetVideoEnabled(ctx, on)
		default:
			return r.sess.SetScreenShare(ctx, on)
		}
	case "chat":
		if len(args) != 2 || (args[1] != "open" && args[1] != "close") {
			return fmt.Errorf("%w: chat open|close", errUsage)
		}
		return r.sess.SetChatOpen(ctx, args[1] == "open")
	case "peers":
		snap := r.sess.Snapshot()
		if len(snap.Remote) == 0 {
			fmt.Fprintln(r.out, "no peers")
		}
		for _, p := range snap.Remote {
			fmt.Fprintf(r.out, "%s\t%s\tpublishing=%t\n", p.ID, p.Name, p.Active)
		}
		return nil
	case "messages":
		for _, m := range r.sess.Snapshot().Chat {
			fmt.Fprintf(r.out, "[%d %s] %s: %s\n", m.ID, m.At.Format("15:04:05"), m.SenderName, m.Body)
		}
		return nil
	case "settings":
		return r.settings(ctx, args[1:])
	case "status":
		printStatus(r.out, r.sess.Snapshot())
		return nil
	case "leave":
		return r.sess.Leave(ctx)
	case "help":
		fmt.Fprintln(r.out, helpText)
		return nil
	case "quit", "exit":
		return errQuit
	default:
		return errUnknownCmd
	}
}

func (r *repl) settings(ctx context.Context, args []string) error {
	reapply := false
	rest := args[:0:0]
	for _, a := range args {
		if a == "--reapply" {
			reapply = true
			continue
		}
		rest = append(rest, a)
	}
	if len(rest) != 2 {
		return fmt.Errorf("%w: settings <key> <value> [--reapply]", errUsage)
	}

	s := r.sess.Snapshot().Media
	key, val := rest[0], rest[1]
	switch key {
	case "resolution":
		s.Resolution = val
	case "codec":
		s.Codec = strings.ToLower(val)
	case "audio_device":
		s.SelectedAudioDevice = val
	case "video_device":
		s.SelectedVideoDevice = val
	case "bandwidth", "frame_rate":
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
		if key == "bandwidth" {
			s.Bandwidth = n
		} else {
			s.FrameRate = n
		}
	case "dev_mode":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("dev_mode: %w", err)
		}
		s.DevMode = b
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return r.sess.UpdateMediaSettings(ctx, s, reapply)
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("%w: expected on or off, got %q", errUsage, s)
}

func printStatus(w io.Writer, s session.Snapshot) {
	fmt.Fprintf(w, "state:  %s\n", s.State)
	if s.RoomID != "" {
		fmt.Fprintf(w, "room:   %s (%s, %s as %s)\n", s.RoomID, s.RoomName, s.Env, s.Role)
	}
	if s.ShareURL != "" {
		fmt.Fprintf(w, "share:  %s\n", s.ShareURL)
	}
	fmt.Fprintf(w, "local:  audio=%s video=%s screen=%s\n",
		flag(s.Local.AudioEnabled, s.Local.AudioPending),
		flag(s.Local.VideoEnabled, s.Local.VideoPending),
		flag(s.Local.ScreenSharing, s.Local.ScreenPending))
	fmt.Fprintf(w, "peers:  %d  messages: %d  unread: %t\n", len(s.Remote), len(s.Chat), s.HasUnread)
	m := s.Media
	fmt.Fprintf(w, "media:  %s %dkbps %s %dfps\n", m.Resolution, m.Bandwidth, m.Codec, m.FrameRate)
}

func flag(on, pending bool) string {
	v := "off"
	if on {
		v = "on"
	}
	if pending {
		v += "*"
	}
	return v
}
