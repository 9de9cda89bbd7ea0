package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WalletTransaction struct {
	ID          ID              `json:"id"`
	Kind        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Wallet struct {
	Balance      decimal.Decimal     `json:"balance"`
	Escrow       decimal.Decimal     `json:"escrow"`
	Currency     string              `json:"currency,omitempty"`
	Transactions []WalletTransaction `json:"transactions"`
}

// ZeroWallet is what the client shows before the backend has created a
// wallet for the user.
func ZeroWallet() Wallet {
	return Wallet{
		Balance:      decimal.Zero,
		Escrow:       decimal.Zero,
		Currency:     DefaultCurrency,
		Transactions: []WalletTransaction{},
	}
}
