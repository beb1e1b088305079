package gateway

import (
	"context"
	"math"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
)

// DepositChecker cross-checks a gateway callback against the processor
// before a verification is auto-approved.
type DepositChecker interface {
	DepositApproved(ctx context.Context, depositID int, amount float64) (bool, error)
}

// MercadoPagoChecker looks the deposit up through the Mercado Pago API and
// requires an approved status with a matching amount.
type MercadoPagoChecker struct {
	payments mppayment.Client
}

func NewMercadoPagoChecker(accessToken string) (*MercadoPagoChecker, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}
	return &MercadoPagoChecker{payments: mppayment.NewClient(cfg)}, nil
}

func (c *MercadoPagoChecker) DepositApproved(ctx context.Context, depositID int, amount float64) (bool, error) {
	resource, err := c.payments.Get(ctx, depositID)
	if err != nil {
		return false, err
	}

	if resource.Status != "approved" {
		return false, nil
	}
	// tolerate sub-cent float drift
	return math.Abs(resource.TransactionAmount-amount) < 0.005, nil
}

// SandboxChecker trusts the redirect. Used when no access token is
// configured or the callback carries in_sandbox.
type SandboxChecker struct{}

func (SandboxChecker) DepositApproved(ctx context.Context, depositID int, amount float64) (bool, error) {
	return true, nil
}

var (
	_ DepositChecker = (*MercadoPagoChecker)(nil)
	_ DepositChecker = SandboxChecker{}
)
