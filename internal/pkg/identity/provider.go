package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/pkg/apperrors"
	"github.com/yigit/placementportal/internal/pkg/auth"
)

// Provider errors
var (
	ErrInvalidLogin   = apperrors.NewUnauthorizedError("Invalid login credentials")
	ErrSessionExpired = apperrors.NewCustomError(apperrors.ErrTokenExpired, "Session expired")
	ErrSessionInvalid = apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Invalid session")
	ErrSessionRevoked = apperrors.NewCustomError(apperrors.ErrTokenRevoked, "Session has been signed out")
	ErrWeakPassword   = apperrors.NewValidationError("Password should be at least 6 characters")
)

const minPasswordLength = 6

// Store persists identities
type Store interface {
	Create(ctx context.Context, identity *models.Identity) error
	GetByEmail(ctx context.Context, email string) (*models.Identity, error)
	GetByID(ctx context.Context, id string) (*models.Identity, error)
}

// RevocationStore remembers signed-out token ids until they expire
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Metadata is attached to an identity at sign-up
type Metadata struct {
	Role    models.Role
	Subject string
}

// Session is the result of a successful sign-in
type Session struct {
	AccessToken string           `json:"access_token"`
	ExpiresAt   time.Time        `json:"expires_at"`
	Identity    *models.Identity `json:"user"`
}

// SignOutHook observes completed sign-outs
type SignOutHook func(ctx context.Context, identityID, email string)

// Provider authenticates identities with passwords and issues revocable
// bearer tokens.
type Provider struct {
	store       Store
	revocations RevocationStore
	tokens      *auth.JWTService
	logger      zerolog.Logger

	mu    sync.RWMutex
	hooks []SignOutHook
}

// NewProvider creates a new Provider
func NewProvider(store Store, revocations RevocationStore, tokens *auth.JWTService, logger zerolog.Logger) *Provider {
	return &Provider{
		store:       store,
		revocations: revocations,
		tokens:      tokens,
		logger:      logger,
	}
}

// OnSignOut registers a hook run after each successful sign-out
func (p *Provider) OnSignOut(hook SignOutHook) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hooks = append(p.hooks, hook)
}

// NormalizeEmail is the form an email is stored and looked up under. Profile
// rows must use the same form as their identity.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// SignUp creates an identity carrying the role and subject metadata
func (p *Provider) SignUp(ctx context.Context, email, password string, meta Metadata) (*models.Identity, error) {
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	if !meta.Role.IsValid() || meta.Subject == "" {
		return nil, fmt.Errorf("%w: identity metadata requires a role and subject", apperrors.ErrBadRequest)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	identity := &models.Identity{
		ID:           uuid.New().String(),
		Email:        NormalizeEmail(email),
		PasswordHash: hash,
		Role:         meta.Role,
		Subject:      meta.Subject,
		CreatedAt:    time.Now().UTC(),
	}
	if err := p.store.Create(ctx, identity); err != nil {
		return nil, err
	}

	p.logger.Info().Str("identityID", identity.ID).Str("role", string(identity.Role)).Msg("Identity signed up")
	return identity, nil
}

// SignInWithPassword checks the credentials and issues an access token
func (p *Provider) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	identity, err := p.store.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, ErrInvalidLogin
		}
		return nil, err
	}

	if !auth.CheckPassword(identity.PasswordHash, password) {
		return nil, ErrInvalidLogin
	}

	issued, err := p.tokens.GenerateAccessToken(identity.ID, identity.Email, string(identity.Role), identity.Subject)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken: issued.Token,
		ExpiresAt:   issued.ExpiresAt,
		Identity:    identity,
	}, nil
}

func (p *Provider) claims(accessToken string) (*auth.Claims, error) {
	claims, err := p.tokens.ValidateToken(accessToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, ErrSessionExpired
		}
		return nil, ErrSessionInvalid
	}
	return claims, nil
}

// GetUser resolves the identity behind an access token. Signed-out and
// expired tokens are refused.
func (p *Provider) GetUser(ctx context.Context, accessToken string) (*models.Identity, error) {
	claims, err := p.claims(accessToken)
	if err != nil {
		return nil, err
	}

	revoked, err := p.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrSessionRevoked
	}

	identity, err := p.store.GetByID(ctx, claims.IdentityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}
	return identity, nil
}

// SignOut revokes the access token. An already expired token needs no
// revocation.
func (p *Provider) SignOut(ctx context.Context, accessToken string) error {
	claims, err := p.claims(accessToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenExpired) {
			return nil
		}
		return err
	}

	if err := p.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return err
	}

	p.mu.RLock()
	hooks := append([]SignOutHook(nil), p.hooks...)
	p.mu.RUnlock()
	for _, hook := range hooks {
		hook(ctx, claims.IdentityID, claims.Email)
	}

	p.logger.Info().Str("identityID", claims.IdentityID).Msg("Identity signed out")
	return nil
}
