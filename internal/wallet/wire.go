package wallet

import (
	"go.uber.org/zap"

	"campusmart/internal/config"
	"campusmart/internal/retry"
	"campusmart/internal/store"
	"campusmart/internal/wallet/controller"
	"campusmart/internal/wallet/usecase"
)

func NewModule(client usecase.WalletClient, st *store.Store, cfg *config.Config, logger *zap.Logger) *controller.WalletController {
	policy := retry.Policy{MaxRetries: cfg.Retry.MaxRetries, InitialDelay: cfg.Retry.InitialDelay}
	uc := usecase.NewWalletUseCase(client, st, policy, logger)
	return controller.NewWalletController(uc, logger)
}
