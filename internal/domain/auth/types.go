package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

// Role represents a dashboard authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleAmbassador Role = "ambassador"
)

// Valid reports whether the role is one of the three recognized values.
// An identity carrying any other role is never trusted.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleAmbassador:
		return true
	default:
		return false
	}
}

// DashboardPath returns the landing page for the role after login.
func (r Role) DashboardPath() string {
	switch r {
	case RoleSuperadmin:
		return "/superadmin"
	case RoleAdmin:
		return "/admin"
	case RoleAmbassador:
		return "/ambassador"
	default:
		return "/auth/login"
	}
}

// Identity represents the authenticated principal as issued by the remote
// authority. SubjectID is the stable identifier (the authority's uid).
type Identity struct {
	SubjectID string `json:"uid"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Trusted reports whether the identity is complete enough to act on:
// non-empty subject and email, and a recognized role. Anything less is
// treated as no identity at all.
func (id Identity) Trusted() bool {
	return id.SubjectID != "" && id.Email != "" && id.Role.Valid()
}

// CredentialRecord is the persisted pair of bearer token and cached
// identity. The two are written and cleared together; a record missing
// either half is treated as absent by the store.
type CredentialRecord struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`
}

// Complete reports whether both halves of the pair are present and the
// identity is trustworthy.
func (r CredentialRecord) Complete() bool {
	return r.Token != "" && r.Identity.Trusted()
}

// Session is the per-browser view of "who is logged in", produced by
// hydrating a credential record. Identity is nil when the visitor is not
// authenticated or the persisted record could not be trusted.
type Session struct {
	ID       string
	Identity *Identity
}

// Authenticated reports whether the session carries a trusted identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.Identity != nil && s.Identity.Trusted()
}
