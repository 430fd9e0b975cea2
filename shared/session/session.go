// Package session carries the authenticated caller as an explicit value
// instead of loose context entries, so authorization rules stay testable
// without a request pipeline.
package session

import (
	"context"

	"nyumbani/shared/constant"
)

type Session struct {
	UserID string
	Email  string
	Role   string
}

func (s Session) IsSuperAdmin() bool {
	return s.Role == constant.RoleSuperAdmin
}

func (s Session) IsAdmin() bool {
	return s.Role == constant.RoleAdmin || s.Role == constant.RoleSuperAdmin
}

func (s Session) IsTenant() bool {
	return s.Role == constant.RoleTenant
}

type sessionKey struct{}

// WithContext attaches the session to the context. Only the auth middleware
// should call this.
func WithContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext extracts the session placed by the auth middleware. The second
// return reports whether a session was present at all.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)

	return s, ok
}
