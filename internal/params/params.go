// Package params validates inbound room parameters and builds the shareable URL.
package params

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/dkeye/roomclient/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const (
	FieldRole = "Role"
	FieldEnv  = "environment"
	FieldRoom = "Room ID"
	FieldURL  = "URL"
)

var ErrInvalidParams = errors.New("invalid room parameters")

var roomPattern = regexp.MustCompile(`^[A-Za-z0-9\-.:_]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("roomid", func(fl validator.FieldLevel) bool {
		return roomPattern.MatchString(fl.Field().String())
	})
	return v
}

// Result reports the first failing field, if any.
type Result struct {
	Valid bool   `json:"valid"`
	Field string `json:"field,omitempty"`
}

func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidParams, r.Field)
}

func ok() Result { return Result{Valid: true} }

func fail(field string) Result { return Result{Field: field} }

// Validate checks role, then env, then room of a raw query string.
// Absent parameters are not checked.
func Validate(rawQuery string) Result {
	q, err := parseQuery(rawQuery)
	if err != nil {
		log.Warn().Err(err).Str("module", "params").Msg("unparsable query")
		return fail(FieldURL)
	}
	return ValidateValues(q.Get("role"), q.Get("env"), q.Get("room"))
}

// parseQuery splits on '&' only, so a ';' stays part of the value.
// The only failure is a bad escape.
func parseQuery(rawQuery string) (url.Values, error) {
	q := url.Values{}
	for _, pair := range strings.Split(strings.TrimPrefix(rawQuery, "?"), "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, err
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			return nil, err
		}
		q.Add(key, val)
	}
	return q, nil
}

func ValidateValues(role, env, room string) Result {
	if role != "" {
		if err := validate.Var(strings.ToLower(role), "oneof="+roleList()); err != nil {
			return fail(FieldRole)
		}
	}
	if env != "" {
		if err := validate.Var(strings.ToLower(env), "oneof="+envList()); err != nil {
			return fail(FieldEnv)
		}
	}
	if room != "" {
		if err := validate.Var(room, "roomid"); err != nil {
			return fail(FieldRoom)
		}
	}
	return ok()
}

// ValidateLogin checks a join request before any network activity.
func ValidateLogin(info domain.LoginInfo) error {
	if err := domain.CheckDisplayName(info.DisplayName); err != nil {
		return err
	}
	if err := validate.Struct(info); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return ValidateValues(string(info.Role), string(info.Env), string(info.RoomID)).Err()
}

func roleList() string {
	parts := make([]string, 0, len(domain.Roles()))
	for _, r := range domain.Roles() {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, " ")
}

func envList() string {
	parts := make([]string, 0, len(domain.Envs()))
	for _, e := range domain.Envs() {
		parts = append(parts, string(e))
	}
	return strings.Join(parts, " ")
}
