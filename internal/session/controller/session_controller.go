package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"campusmart/internal/commons"
	"campusmart/internal/domain"
)

type SessionUseCase interface {
	Roles() domain.Roles
	RefreshRoles(ctx context.Context) (domain.Roles, error)
	Logout()
}

type SessionController struct {
	useCase SessionUseCase
	logger  *zap.Logger
}

func NewSessionController(useCase SessionUseCase, logger *zap.Logger) *SessionController {
	return &SessionController{useCase: useCase, logger: logger}
}

func (c *SessionController) GetRoles(w http.ResponseWriter, r *http.Request) {
	commons.WriteData(w, c.logger, commons.NewTraceID(), http.StatusOK, c.useCase.Roles())
}

func (c *SessionController) RefreshRoles(w http.ResponseWriter, r *http.Request) {
	traceID := commons.NewTraceID()

	roles, err := c.useCase.RefreshRoles(r.Context())
	if err != nil {
		commons.WriteError(w, c.logger, traceID, err)
		return
	}

	commons.WriteData(w, c.logger, traceID, http.StatusOK, roles)
}

func (c *SessionController) Logout(w http.ResponseWriter, r *http.Request) {
	c.useCase.Logout()
	c.logger.Info("session ended")
	w.WriteHeader(http.StatusNoContent)
}
