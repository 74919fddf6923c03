package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dkeye/roomclient/internal/app/session"
	"github.com/dkeye/roomclient/internal/domain"
)

// printUpdates writes notices and state changes until ctx is done.
func printUpdates(ctx context.Context, sess interface {
	Subscribe(int) (<-chan session.Update, func())
}, w io.Writer) {
	updates, unsub := sess.Subscribe(64)
	defer unsub()

	last := domain.ConnectionState(-1)
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			switch {
			case u.Notice != nil:
				fmt.Fprintf(w, "\n[%s] %s: %s\n", u.Notice.Level, u.Notice.Title, u.Notice.Body)
			case u.Snapshot != nil && u.Snapshot.State != last:
				last = u.Snapshot.State
				fmt.Fprintf(w, "\n-- %s\n", last)
			}
		}
	}
}
