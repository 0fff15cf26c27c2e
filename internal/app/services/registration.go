package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/app/repositories"
	"github.com/yigit/placementportal/internal/pkg/apperrors"
	"github.com/yigit/placementportal/internal/pkg/identity"
)

// Role mismatch errors returned by the role-specific logins
var (
	ErrInvalidStudentLogin  = apperrors.NewUnauthorizedError(apperrors.MsgInvalidStudentLogin)
	ErrInvalidEmployerLogin = apperrors.NewUnauthorizedError(apperrors.MsgInvalidEmployerLogin)
)

// registrar holds the steps shared by student and employer sign-up
type registrar struct {
	tx        TxManager
	directory EmailDirectory
	provider  IdentityProvider
	logger    zerolog.Logger
}

// register claims email for a new profile. Inside one transaction it
// serialises on the email, refuses an email already held by any student or
// employer, makes sure an identity exists for the credentials and then runs
// insert. A failing insert rolls the new identity back with it.
func (r registrar) register(ctx context.Context, email, password string, meta identity.Metadata, insert func(ctx context.Context) error) error {
	return r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := r.directory.LockEmail(ctx, email); err != nil {
			return err
		}

		inUse, err := r.directory.EmailInUse(ctx, email)
		if err != nil {
			return err
		}
		if inUse {
			return repositories.ErrEmailInUse
		}

		if err := r.ensureIdentity(ctx, email, password, meta); err != nil {
			return err
		}

		return insert(ctx)
	})
}

// ensureIdentity reuses an identity whose credentials already match and signs
// up a new one otherwise. A matching identity bound to another role or
// subject is refused.
func (r registrar) ensureIdentity(ctx context.Context, email, password string, meta identity.Metadata) error {
	existing, err := r.provider.SignInWithPassword(ctx, email, password)
	if err == nil {
		r.signOutQuietly(ctx, existing.AccessToken)
		if existing.Identity.Role != meta.Role || existing.Identity.Subject != meta.Subject {
			r.logger.Warn().Str("identityID", existing.Identity.ID).Str("role", string(meta.Role)).Msg("Existing identity belongs to another profile")
			return repositories.ErrIdentityExists
		}
		r.logger.Info().Str("identityID", existing.Identity.ID).Str("role", string(meta.Role)).Msg("Reusing existing identity for registration")
		return nil
	}
	if !errors.Is(err, identity.ErrInvalidLogin) {
		return err
	}

	_, err = r.provider.SignUp(ctx, email, password, meta)
	return err
}

// signInAs authenticates and refuses identities of another role. A refused
// session is signed out before returning mismatch.
func (r registrar) signInAs(ctx context.Context, email, password string, role models.Role, mismatch error) (*identity.Session, error) {
	session, err := r.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if session.Identity.Role != role {
		r.signOutQuietly(ctx, session.AccessToken)
		r.logger.Warn().Str("email", email).Str("expectedRole", string(role)).Str("role", string(session.Identity.Role)).Msg("Login refused for role mismatch")
		return nil, mismatch
	}
	return session, nil
}

func (r registrar) signOutQuietly(ctx context.Context, accessToken string) {
	if err := r.provider.SignOut(ctx, accessToken); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to sign out session")
	}
}
