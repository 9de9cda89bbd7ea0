package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"campusmart/internal/commons"
	"campusmart/internal/domain"
)

type WalletUseCase interface {
	Wallet(ctx context.Context) (domain.Wallet, error)
}

type WalletController struct {
	useCase WalletUseCase
	logger  *zap.Logger
}

func NewWalletController(useCase WalletUseCase, logger *zap.Logger) *WalletController {
	return &WalletController{useCase: useCase, logger: logger}
}

func (c *WalletController) GetWallet(w http.ResponseWriter, r *http.Request) {
	traceID := commons.NewTraceID()

	wallet, err := c.useCase.Wallet(r.Context())
	if err != nil {
		commons.WriteError(w, c.logger, traceID, err)
		return
	}

	commons.WriteData(w, c.logger, traceID, http.StatusOK, wallet)
}
