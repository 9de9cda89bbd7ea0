package usecase

import (
	"context"

	"go.uber.org/zap"

	"campusmart/internal/domain"
	apperrors "campusmart/internal/errors"
	"campusmart/internal/notify"
	"campusmart/internal/store"
)

const verifyMessage = "Please verify your account to continue."

type RolesClient interface {
	Roles(ctx context.Context) (domain.Roles, error)
}

// SessionUseCase owns the session's role state and its teardown.
type SessionUseCase struct {
	client   RolesClient
	store    *store.Store
	notifier notify.Notifier
	logger   *zap.Logger
}

func NewSessionUseCase(client RolesClient, st *store.Store, notifier notify.Notifier, logger *zap.Logger) *SessionUseCase {
	return &SessionUseCase{client: client, store: st, notifier: notifier, logger: logger}
}

func (uc *SessionUseCase) Roles() domain.Roles {
	return uc.store.Roles()
}

// RefreshRoles reloads the entrepreneur and deliverer state. A
// verification-required refusal prompts the user and leaves the current
// roles in place; a 404 means the user holds no roles.
func (uc *SessionUseCase) RefreshRoles(ctx context.Context) (domain.Roles, error) {
	roles, err := uc.client.Roles(ctx)
	if err == nil {
		uc.store.Dispatch(store.SetRoles{Roles: roles})
		return roles, nil
	}

	if apperrors.IsVerificationRequired(err) {
		uc.logger.Info("role refresh needs account verification")
		uc.notifier.VerificationRequired(apperrors.UserMessage(err, verifyMessage))
		return uc.store.Roles(), err
	}
	if ne, ok := apperrors.IsNormalizedError(err); ok && ne.IsNotFound() {
		uc.store.Dispatch(store.SetRoles{Roles: domain.Roles{}})
		return domain.Roles{}, nil
	}

	uc.logger.Warn("refreshing roles failed", zap.Error(err))
	return uc.store.Roles(), err
}

// Logout drops all session state. Mutations still in flight finish
// against the old session and are discarded.
func (uc *SessionUseCase) Logout() {
	uc.store.Reset()
}
