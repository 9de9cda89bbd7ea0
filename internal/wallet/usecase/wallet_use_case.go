package usecase

import (
	"context"

	"go.uber.org/zap"

	"campusmart/internal/domain"
	"campusmart/internal/retry"
	"campusmart/internal/store"
)

type WalletClient interface {
	Wallet(ctx context.Context) (domain.Wallet, error)
}

type WalletUseCase struct {
	client WalletClient
	store  *store.Store
	policy retry.Policy
	sleep  retry.Sleeper
	logger *zap.Logger
}

func NewWalletUseCase(client WalletClient, st *store.Store, policy retry.Policy, logger *zap.Logger) *WalletUseCase {
	return &WalletUseCase{client: client, store: st, policy: policy, logger: logger}
}

// WithSleeper overrides the backoff wait, for tests.
func (uc *WalletUseCase) WithSleeper(sleep retry.Sleeper) *WalletUseCase {
	uc.sleep = sleep
	return uc
}

// Wallet refetches the wallet and caches it in the store. A user without a
// wallet yet gets the zeroed defaults from the client.
func (uc *WalletUseCase) Wallet(ctx context.Context) (domain.Wallet, error) {
	opts := uc.policy.Options(retry.Named("fetch_wallet"), retry.WithLogger(uc.logger))
	if uc.sleep != nil {
		opts = append(opts, retry.WithSleeper(uc.sleep))
	}

	wallet, err := retry.Do(ctx, uc.client.Wallet, opts...)
	if err != nil {
		uc.logger.Warn("fetching wallet failed", zap.Error(err))
		return domain.Wallet{}, err
	}

	uc.store.Dispatch(store.SetWallet{Wallet: wallet})
	cached, _ := uc.store.Wallet()
	return cached, nil
}
