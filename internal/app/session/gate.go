// Package session holds the per-client authentication state that role-gated
// operations consult.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/pkg/apperrors"
)

// Status is the authentication status of a gate
type Status string

const (
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// Errors returned by Require
var (
	ErrNotAuthenticated = apperrors.NewCustomError(apperrors.ErrUnauthenticated, apperrors.MsgNotAuthenticated)
	ErrRoleNotPermitted = apperrors.NewForbiddenError(apperrors.MsgRoleNotPermitted)
)

// State is a snapshot of a gate. Data is the role-specific identifier: the
// USN for students, the employer id for employers.
type State struct {
	Status Status
	Role   models.Role
	Data   string
}

// MarshalJSON renders role and data as null while unauthenticated
func (s State) MarshalJSON() ([]byte, error) {
	view := struct {
		Status Status       `json:"status"`
		Role   *models.Role `json:"role"`
		Data   *string      `json:"data"`
	}{Status: s.Status}
	if s.Status == StatusAuthenticated {
		view.Role = &s.Role
		view.Data = &s.Data
	}
	return json.Marshal(view)
}

// Gate is the mutable session record of one client. It only changes through
// SetAuthenticated and SetUnauthenticated.
type Gate struct {
	mu    sync.RWMutex
	state State
}

// NewGate returns an unauthenticated gate
func NewGate() *Gate {
	return &Gate{state: State{Status: StatusUnauthenticated}}
}

// SetAuthenticated records a signed-in principal
func (g *Gate) SetAuthenticated(role models.Role, data string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = State{Status: StatusAuthenticated, Role: role, Data: data}
}

// SetUnauthenticated clears the principal
func (g *Gate) SetUnauthenticated() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = State{Status: StatusUnauthenticated}
}

// Snapshot returns the current state
func (g *Gate) Snapshot() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Allows reports whether the gate is authenticated with one of roles
func (g *Gate) Allows(roles ...models.Role) bool {
	return g.Require(roles...) == nil
}

// Require refuses an unauthenticated gate or a role outside roles
func (g *Gate) Require(roles ...models.Role) error {
	state := g.Snapshot()
	if state.Status != StatusAuthenticated {
		return ErrNotAuthenticated
	}
	for _, role := range roles {
		if state.Role == role {
			return nil
		}
	}
	return ErrRoleNotPermitted
}

// UserProber resolves the identity behind an access token
type UserProber interface {
	GetUser(ctx context.Context, accessToken string) (*models.Identity, error)
}

// Probe builds a gate from the current identity of accessToken. Any failure
// leaves the gate unauthenticated and is returned alongside it.
func Probe(ctx context.Context, prober UserProber, accessToken string) (*Gate, error) {
	gate := NewGate()
	if accessToken == "" {
		return gate, ErrNotAuthenticated
	}

	identity, err := prober.GetUser(ctx, accessToken)
	if err != nil {
		return gate, err
	}
	if !identity.Role.IsValid() || identity.Subject == "" {
		return gate, ErrNotAuthenticated
	}

	gate.SetAuthenticated(identity.Role, identity.Subject)
	return gate, nil
}
