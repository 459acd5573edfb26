package models

import (
	"errors"
	"strings"
)

type PaymentStatus string
type StockStatus string

const (
	PaymentPending   PaymentStatus = "pending"   // awaiting payment
	PaymentPaid      PaymentStatus = "paid"      // payment confirmed by admin
	PaymentCancelled PaymentStatus = "cancelled" // line cancelled, label only

	StockPending StockStatus = "pending" // not yet received from supplier
	StockArrived StockStatus = "arrived" // in stock, ready for fulfilment
)

// ParsePaymentStatus maps a request string to a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch strings.ToLower(s) {
	case string(PaymentPending):
		return PaymentPending, nil
	case string(PaymentPaid):
		return PaymentPaid, nil
	case string(PaymentCancelled):
		return PaymentCancelled, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// ParseStockStatus maps a request string to a StockStatus.
func ParseStockStatus(s string) (StockStatus, error) {
	switch strings.ToLower(s) {
	case string(StockPending):
		return StockPending, nil
	case string(StockArrived):
		return StockArrived, nil
	default:
		return "", errors.New("invalid stock status")
	}
}

// Transition policies gate status writes on order items. The defaults allow
// any value to move to any other value, including backwards (paid -> pending);
// swap them out for a stricter table if the back-office ever needs one.
type PaymentTransitionPolicy func(from, to PaymentStatus) error
type StockTransitionPolicy func(from, to StockStatus) error

var (
	AllowAnyPaymentTransition PaymentTransitionPolicy = func(PaymentStatus, PaymentStatus) error { return nil }
	AllowAnyStockTransition   StockTransitionPolicy   = func(StockStatus, StockStatus) error { return nil }
)
