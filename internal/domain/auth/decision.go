package auth

// Decision is the outcome of evaluating access to a protected view.
// It is transient: recomputed per request, never persisted.
type Decision int

const (
	// DecisionPending means no decision has been made yet.
	DecisionPending Decision = iota
	// DecisionAdmitted grants access to the protected view.
	DecisionAdmitted
	// DecisionDeniedUnauthenticated denies access because no trusted
	// identity is present; callers redirect to login.
	DecisionDeniedUnauthenticated
	// DecisionDeniedForbidden denies access because the identity's role
	// is not allowed for the view; the credentials are cleared.
	DecisionDeniedForbidden
)

// String returns a stable name for logging and metric tags.
func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionAdmitted:
		return "admitted"
	case DecisionDeniedUnauthenticated:
		return "denied_unauthenticated"
	case DecisionDeniedForbidden:
		return "denied_forbidden"
	default:
		return "unknown"
	}
}

// RoleSet is an allowed-role set for a protected view.
type RoleSet []Role

// Contains reports whether the set includes the given role.
func (rs RoleSet) Contains(r Role) bool {
	for _, allowed := range rs {
		if allowed == r {
			return true
		}
	}
	return false
}

// Key returns a stable string form of the set, used to scope
// verification-attempt tracking to a specific allowed-role set.
func (rs RoleSet) Key() string {
	key := ""
	for _, r := range rs {
		key += string(r) + ","
	}
	return key
}
