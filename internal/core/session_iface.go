package core

import (
	"context"

	"github.com/dkeye/roomclient/internal/domain"
)

// TokenSource issues the credential for one join attempt.
type TokenSource interface {
	Fetch(ctx context.Context, req domain.TokenRequest) (domain.Token, error)
}

// Navigator owns the canonical location of the client (the shareable URL).
type Navigator interface {
	Push(url string) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, title, body string) bool
}
