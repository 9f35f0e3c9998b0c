// Package permissions holds the role table of every route, embedded in the binary.
package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the roles allowed on one route pattern. Skip makes the
// route public, and an empty role list lets any authenticated caller through.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

func (p Permission) Allows(role string) bool {
	return p.Skip || len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	byRoute map[string]Permission
}

// FindPermissions returns the entry for a chi route pattern, or the zero
// Permission when the route is not listed.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.byRoute == nil {
		r.index()
	}

	return r.byRoute[method+" "+path]
}

func (r *PermissionData) index() {
	r.byRoute = make(map[string]Permission, len(r.Endpoints))

	for _, endpoint := range r.Endpoints {
		r.byRoute[endpoint.Method+" "+endpoint.Path] = endpoint
	}
}

var load = sync.OnceValue(func() *PermissionData {
	var data PermissionData

	if err := json.Unmarshal(permissionsData, &data); err != nil {
		log.Error().Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	data.index()

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("Loaded route permissions")

	return &data
})

func Get() *PermissionData {
	return load()
}
