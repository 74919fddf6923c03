package params

import (
	"errors"
	"net/url"
	"strings"

	"github.com/dkeye/roomclient/internal/domain"
)

var ErrNoRoom = errors.New("shareable url has no room")

// Resume is what a shareable URL carries.
type Resume struct {
	RoomID domain.RoomID
	Env    domain.Env
	Role   domain.Role
}

// ShareURL builds base/?room=..&env=..&role=.. keeping that key order.
func ShareURL(base string, room domain.RoomID, env domain.Env, role domain.Role) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(base, "/"))
	b.WriteString("/?room=")
	b.WriteString(url.QueryEscape(string(room)))
	b.WriteString("&env=")
	b.WriteString(url.QueryEscape(string(env)))
	b.WriteString("&role=")
	b.WriteString(url.QueryEscape(string(role)))
	return b.String()
}

// ParseShareURL reads a shareable URL back. Missing env or role fall back to prod/guest.
func ParseShareURL(raw string) (Resume, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Resume{}, fail(FieldURL).Err()
	}
	if res := Validate(u.RawQuery); !res.Valid {
		return Resume{}, res.Err()
	}
	q, err := parseQuery(u.RawQuery)
	if err != nil {
		return Resume{}, fail(FieldURL).Err()
	}
	if q.Get("room") == "" {
		return Resume{}, ErrNoRoom
	}
	out := Resume{RoomID: domain.RoomID(q.Get("room")), Env: domain.EnvProd, Role: domain.RoleGuest}
	if e, ok := domain.ParseEnv(q.Get("env")); ok {
		out.Env = e
	}
	if r, ok := domain.ParseRole(q.Get("role")); ok {
		out.Role = r
	}
	return out, nil
}
