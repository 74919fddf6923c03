package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// readLines feeds stdin to both the REPL and the confirmer so they never race on the reader.
func readLines(r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}

type lineConfirmer struct {
	lines <-chan string
	out   io.Writer
}

func (c lineConfirmer) Confirm(ctx context.Context, title, body string) bool {
	fmt.Fprintf(c.out, "%s %s [y/N] ", title, body)
	select {
	case <-ctx.Done():
		return false
	case line, ok := <-c.lines:
		if !ok {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}

type yesConfirmer struct{}

func (yesConfirmer) Confirm(context.Context, string, string) bool { return true }
