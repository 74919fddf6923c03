package params

import (
	"testing"

	"github.com/dkeye/roomclient/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	type testCase struct {
		name  string
		query string
		want  Result
	}

	cases := []testCase{
		{name: "all valid", query: "room=abc-123&env=prod&role=guest", want: Result{Valid: true}},
		{name: "leading question mark", query: "?room=abc-123&env=prod&role=guest", want: Result{Valid: true}},
		{name: "case insensitive", query: "room=abc&env=PROD&role=Guest", want: Result{Valid: true}},
		{name: "empty query", query: "", want: Result{Valid: true}},
		{name: "room only", query: "room=a.b:c_d-1", want: Result{Valid: true}},
		{name: "bad room", query: "room=abc%20123&env=prod&role=guest", want: Result{Field: FieldRoom}},
		{name: "bad role", query: "room=abc&env=prod&role=admin", want: Result{Field: FieldRole}},
		{name: "bad env", query: "room=abc&env=mars&role=guest", want: Result{Field: FieldEnv}},
		{name: "role checked before env", query: "env=mars&role=admin", want: Result{Field: FieldRole}},
		{name: "env checked before room", query: "room=a/b&env=mars", want: Result{Field: FieldEnv}},
		{name: "bad encoding", query: "room=%zz", want: Result{Field: FieldURL}},
		{name: "semicolon in room", query: "room=a;b", want: Result{Field: FieldRoom}},
		{name: "semicolon in role", query: "role=bad;x", want: Result{Field: FieldRole}},
		{name: "semicolon in unrelated key", query: "role=host&x=1;2", want: Result{Valid: true}},
		{name: "bad encoding in unrelated key", query: "role=host&x=%zz", want: Result{Field: FieldURL}},
		{name: "plus decodes to space", query: "room=a+b", want: Result{Field: FieldRoom}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Validate(tc.query))
		})
	}
}

func TestResultErr(t *testing.T) {
	assert.NoError(t, Result{Valid: true}.Err())
	err := Result{Field: FieldRoom}.Err()
	assert.ErrorIs(t, err, ErrInvalidParams)
	assert.Contains(t, err.Error(), FieldRoom)
}

func TestValidateLogin(t *testing.T) {
	assert := assert.New(t)

	good := domain.LoginInfo{RoomID: "abc-123", DisplayName: "Alice", Role: domain.RoleGuest, Env: domain.EnvProd}
	assert.NoError(ValidateLogin(good))

	noName := good
	noName.DisplayName = ""
	assert.ErrorIs(ValidateLogin(noName), domain.ErrDisplayNameEmpty)

	badRoom := good
	badRoom.RoomID = "abc 123"
	assert.ErrorIs(ValidateLogin(badRoom), ErrInvalidParams)

	badRole := good
	badRole.Role = "admin"
	assert.ErrorIs(ValidateLogin(badRole), ErrInvalidParams)

	noRoom := good
	noRoom.RoomID = ""
	assert.ErrorIs(ValidateLogin(noRoom), ErrInvalidParams)
}

func TestShareURL(t *testing.T) {
	got := ShareURL("https://meet.example.com/", "abc-123", domain.EnvProd, domain.RoleGuest)
	assert.Equal(t, "https://meet.example.com/?room=abc-123&env=prod&role=guest", got)

	res, err := ParseShareURL(got)
	require.NoError(t, err)
	assert.Equal(t, Resume{RoomID: "abc-123", Env: domain.EnvProd, Role: domain.RoleGuest}, res)
}

func TestParseShareURL(t *testing.T) {
	_, err := ParseShareURL("https://meet.example.com/")
	assert.ErrorIs(t, err, ErrNoRoom)

	_, err = ParseShareURL("https://meet.example.com/?room=abc&role=admin")
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = ParseShareURL("https://meet.example.com/?room=abc;def")
	assert.ErrorIs(t, err, ErrInvalidParams)

	res, err := ParseShareURL("https://meet.example.com/?room=abc&env=qa&role=VIEWER&x=1;2")
	require.NoError(t, err)
	assert.Equal(t, domain.EnvQA, res.Env)

	res, err = ParseShareURL("https://meet.example.com/?room=abc&role=VIEWER")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleViewer, res.Role)
	assert.Equal(t, domain.EnvProd, res.Env)
}
