package services

import (
	"context"

	"github.com/neuronstudy/backend/models"
)

// PaymentProvider confirms a charge before a paid course is unlocked.
// The real gateway is out of scope; enrollment only cares about the
// succeeded/declined signal.
type PaymentProvider interface {
	Charge(ctx context.Context, userID, courseID string, amount float64) error
}

// SimulatedPayments approves or declines every charge based on one switch.
type SimulatedPayments struct {
	Approve bool
}

func (p SimulatedPayments) Charge(ctx context.Context, userID, courseID string, amount float64) error {
	if p.Approve {
		return nil
	}
	return models.ErrPaymentDeclined
}
