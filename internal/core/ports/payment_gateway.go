package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// PaymentGateway is the external payment collaborator. Refunds triggered by
// lifecycle transitions are best-effort: a failure is recorded, never
// propagated into the transition that caused it.
type PaymentGateway interface {
	// CreatePaymentIntent registers a charge and returns the gateway's
	// payment reference.
	CreatePaymentIntent(ctx context.Context, amount kernel.Money, currency string) (string, error)

	// Refund returns money against a previous payment. A nil amount means
	// a full refund.
	Refund(ctx context.Context, paymentReference string, amount *kernel.Money) error
}
