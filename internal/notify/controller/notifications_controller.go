package controller

import (
	"net/http"

	"go.uber.org/zap"

	"campusmart/internal/commons"
	"campusmart/internal/notify"
)

type Drainer interface {
	Drain() []notify.Notification
}

type NotificationsController struct {
	feed   Drainer
	logger *zap.Logger
}

func NewNotificationsController(feed Drainer, logger *zap.Logger) *NotificationsController {
	return &NotificationsController{feed: feed, logger: logger}
}

// ListNotifications hands out pending notifications oldest first. Each is
// returned once.
func (c *NotificationsController) ListNotifications(w http.ResponseWriter, r *http.Request) {
	commons.WriteData(w, c.logger, commons.NewTraceID(), http.StatusOK, c.feed.Drain())
}
