// internal/shop/session.go
package shop

// State is the identity state a reconciler operates in
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

// Session is the tagged identity state consumed by both reconcilers.
// UserID is only meaningful when State is StateAuthenticated.
type Session struct {
	State  State
	UserID uint
}

// AnonymousSession returns the anonymous session state
func AnonymousSession() Session {
	return Session{State: StateAnonymous}
}

// AuthenticatedSession returns an authenticated session for the given user
func AuthenticatedSession(userID uint) Session {
	return Session{State: StateAuthenticated, UserID: userID}
}

// Authenticated reports whether the session carries an identity
func (s Session) Authenticated() bool {
	return s.State == StateAuthenticated
}
