package core

import "errors"

var (
	ErrInvalidAmount            = errors.New("invalid amount")
	ErrInvalidCategory          = errors.New("invalid category")
	ErrInvalidPayer             = errors.New("invalid payer")
	ErrInvalidPaymentMethod     = errors.New("invalid payment method")
	ErrInvalidInstallmentCount  = errors.New("invalid installment count")
	ErrNotFound                 = errors.New("record not found")
	// ErrPersistence marks a failure from the backing record store. Store
	// errors are wrapped with it so callers can match on the class while the
	// cause stays in the chain.
	ErrPersistence = errors.New("persistence failure")
)
