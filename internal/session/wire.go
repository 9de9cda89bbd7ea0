package session

import (
	"go.uber.org/zap"

	"campusmart/internal/notify"
	"campusmart/internal/session/controller"
	"campusmart/internal/session/usecase"
	"campusmart/internal/store"
)

func NewModule(client usecase.RolesClient, st *store.Store, notifier notify.Notifier, logger *zap.Logger) *controller.SessionController {
	uc := usecase.NewSessionUseCase(client, st, notifier, logger)
	return controller.NewSessionController(uc, logger)
}
