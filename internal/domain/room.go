package domain

import "strings"

type (
	RoomID string
	Role   string
	Env    string
)

const DefaultRoomName = "100ms"

const (
	RoleHost       Role = "host"
	RoleGuest      Role = "guest"
	RoleTeacher    Role = "teacher"
	RoleStudent    Role = "student"
	RoleViewer     Role = "viewer"
	RoleLiveRecord Role = "live-record"
)

const (
	EnvProd    Env = "prod"
	EnvQA      Env = "qa"
	EnvStaging Env = "staging"
	EnvDev     Env = "dev"
)

func Roles() []Role {
	return []Role{RoleHost, RoleGuest, RoleTeacher, RoleStudent, RoleViewer, RoleLiveRecord}
}

func Envs() []Env {
	return []Env{EnvProd, EnvQA, EnvStaging, EnvDev}
}

// ParseRole matches case-insensitively.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles() {
		if strings.EqualFold(string(r), s) {
			return r, true
		}
	}
	return "", false
}

func ParseEnv(s string) (Env, bool) {
	for _, e := range Envs() {
		if strings.EqualFold(string(e), s) {
			return e, true
		}
	}
	return "", false
}

// IsPassive reports roles that never publish local media.
func (r Role) IsPassive() bool {
	return r == RoleViewer || r == RoleLiveRecord
}
