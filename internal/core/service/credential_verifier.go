package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/careerstack/identity-federation/internal/core/domain"
	"github.com/careerstack/identity-federation/internal/core/ports"
)

// CredentialVerifier checks a submitted credential against the master
// identity record. Unknown email and wrong password both return
// ErrInvalidCredentials so the response never reveals which accounts exist.
type CredentialVerifier struct {
	store ports.MasterStore
}

func NewCredentialVerifier(store ports.MasterStore) *CredentialVerifier {
	return &CredentialVerifier{store: store}
}

func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (*domain.UnifiedUser, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := v.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
