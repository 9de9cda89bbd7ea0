package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campusmart/internal/notify"
)

func TestListNotifications_DrainsFeed(t *testing.T) {
	feed := notify.NewFeed(5, zap.NewNop())
	feed.Error("Could not create the listing. Please try again.")
	feed.Success("Delivery confirmed.")
	c := NewNotificationsController(feed, zap.NewNop())

	rec := httptest.NewRecorder()
	c.ListNotifications(rec, httptest.NewRequest(http.MethodGet, "/notifications", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []notify.Notification `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, notify.KindError, body.Data[0].Kind)
	assert.Equal(t, notify.KindSuccess, body.Data[1].Kind)

	rec = httptest.NewRecorder()
	c.ListNotifications(rec, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}
