package api

import (
	"context"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/models"
)

// InitializePayment asks the backend to open a payment session for the
// order. The returned reference correlates the popup with verification.
func (c *Client) InitializePayment(ctx context.Context, orderID string) (*models.PaymentSession, error) {
	var session models.PaymentSession
	if err := c.post(ctx, "/api/payments/initialize/"+orderID, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// VerifyPayment checks the payment state for a reference with the provider.
// A non-success verification is not an error; inspect the result's Status.
func (c *Client) VerifyPayment(ctx context.Context, reference string) (*models.PaymentVerification, error) {
	var verification models.PaymentVerification
	if err := c.get(ctx, "/api/payments/verify/"+reference, nil, &verification); err != nil {
		return nil, err
	}
	return &verification, nil
}
