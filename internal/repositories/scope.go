package repositories

import "encoding/json"

// ScopeRole is the data store role a request runs as
type ScopeRole string

const (
	RoleService       ScopeRole = "service_role"
	RoleAuthenticated ScopeRole = "authenticated"
	RoleAnon          ScopeRole = "anon"
)

// AccessScope carries the caller's credentials down to the data store.
// Service scope sees every row; any other scope only sees rows owned by UserID.
type AccessScope struct {
	Role   ScopeRole
	UserID string
	// Claims is the verified JWT claim set as JSON, published to the
	// session so row level security policies can read it.
	Claims string
}

// ServiceScope returns an unrestricted scope
func ServiceScope() AccessScope {
	return AccessScope{Role: RoleService, Claims: `{"role":"service_role"}`}
}

// AnonScope returns the scope of a caller without credentials
func AnonScope() AccessScope {
	return AccessScope{Role: RoleAnon, Claims: `{"role":"anon"}`}
}

// UserScope returns a scope restricted to the given user's rows
func UserScope(userID string, claims map[string]interface{}) AccessScope {
	raw, err := json.Marshal(claims)
	if err != nil || claims == nil {
		raw, _ = json.Marshal(map[string]string{"role": string(RoleAuthenticated), "sub": userID})
	}
	return AccessScope{Role: RoleAuthenticated, UserID: userID, Claims: string(raw)}
}

// IsService reports whether the scope bypasses ownership filtering
func (s AccessScope) IsService() bool {
	return s.Role == RoleService
}

// String returns the role name
func (s AccessScope) String() string {
	if s.Role == "" {
		return string(RoleAnon)
	}
	return string(s.Role)
}
