package economy

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInsufficientFunds is returned when a purchase costs more than the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrCorruptSave is returned when a persisted or imported value cannot be decoded.
	ErrCorruptSave = errors.New("corrupt save")

	ErrUnknownAsset   = errors.New("unknown asset")
	ErrUnknownUpgrade = errors.New("unknown upgrade")
)

// PurchaseError reports a rejected purchase with the price that was asked.
type PurchaseError struct {
	Item    string
	Price   float64
	Balance float64
}

func (e *PurchaseError) Error() string {
	return fmt.Sprintf("buy %s: price %.0f, balance %.0f: %v",
		e.Item, e.Price, math.Floor(e.Balance), ErrInsufficientFunds)
}

// Unwrap lets errors.Is match ErrInsufficientFunds.
func (e *PurchaseError) Unwrap() error {
	return ErrInsufficientFunds
}
