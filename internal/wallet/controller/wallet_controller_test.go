package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"campusmart/internal/domain"
	apperrors "campusmart/internal/errors"
)

type mockWalletUseCase struct {
	WalletFunc func(ctx context.Context) (domain.Wallet, error)
}

func (m *mockWalletUseCase) Wallet(ctx context.Context) (domain.Wallet, error) {
	return m.WalletFunc(ctx)
}

func TestGetWallet_ZeroedDefaults(t *testing.T) {
	c := NewWalletController(&mockWalletUseCase{
		WalletFunc: func(context.Context) (domain.Wallet, error) { return domain.ZeroWallet(), nil },
	}, zap.NewNop())
	rec := httptest.NewRecorder()

	c.GetWallet(rec, httptest.NewRequest(http.MethodGet, "/wallet", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"balance":"0"`)
	assert.Contains(t, rec.Body.String(), `"currency":"GHS"`)
	assert.Contains(t, rec.Body.String(), `"transactions":[]`)
}

func TestGetWallet_Timeout(t *testing.T) {
	c := NewWalletController(&mockWalletUseCase{
		WalletFunc: func(context.Context) (domain.Wallet, error) {
			return domain.Wallet{}, &apperrors.NormalizedError{Timeout: true}
		},
	}, zap.NewNop())
	rec := httptest.NewRecorder()

	c.GetWallet(rec, httptest.NewRequest(http.MethodGet, "/wallet", nil))

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}
