package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the roles allowed on one route pattern. No roles means any signed-in user.
type Permission struct {
	Roles  []string `json:"roles"`
	Path   string   `json:"path"`
	Method string   `json:"method"`
	Skip   bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions matches a chi route pattern. Trailing slashes are ignored.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	path = strings.TrimSuffix(path, "/")

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return strings.TrimSuffix(rp.Path, "/") == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

func (p Permission) Allows(role string) bool {
	return len(p.Roles) == 0 || slices.Contains(p.Roles, role)
}

func Get() *PermissionData {
	return parse(permissionsData)
}

func parse(data []byte) *PermissionData {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
