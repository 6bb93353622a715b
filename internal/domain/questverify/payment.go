package questverify

import (
	"context"
	"net/http"
	"strings"

	"github.com/questhive/backend/pkg/api"
	"github.com/questhive/backend/pkg/xcontext"
)

func claimAPIKey(claim map[string]any) string {
	for _, name := range []string{"api_key", "apiKey"} {
		if key, ok := claim[name].(string); ok {
			return strings.TrimSpace(key)
		}
	}

	return ""
}

// checkKeyFormat rejects keys that cannot possibly be valid before any
// network call is made with them.
func checkKeyFormat(ctx context.Context, key string) (Result, bool) {
	prefix := xcontext.Configs(ctx).Payment.SecretKeyPrefix
	if key == "" {
		return rejected("Provide your payment provider secret key"), false
	}

	if !strings.HasPrefix(key, prefix) {
		return rejected("The key must start with %s", prefix), false
	}

	return Result{}, true
}

// Payment Key Verifier
type paymentKeyVerifier struct {
	factory Factory
}

func newPaymentKeyVerifier(
	ctx context.Context, factory Factory, data map[string]any,
) (*paymentKeyVerifier, error) {
	return &paymentKeyVerifier{factory: factory}, nil
}

func (v *paymentKeyVerifier) Verify(ctx context.Context, claim map[string]any) (Result, error) {
	key := claimAPIKey(claim)
	if result, ok := checkKeyFormat(ctx, key); !ok {
		return result, nil
	}

	cfg := xcontext.Configs(ctx).Payment
	callCtx, cancel := context.WithTimeout(ctx, cfg.CallTimeout)
	defer cancel()

	resp, err := v.factory.apiGenerator.New(cfg.APIDomain, "/v1/account").
		Header("Authorization", "Bearer "+key).
		GET(callCtx)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot call payment provider: %v", err)
		return rejected("Cannot reach the payment provider, please try again"), nil
	}

	switch {
	case resp.Code == http.StatusOK:
		return accepted("Payment key verified"), nil

	case resp.Code == http.StatusUnauthorized || resp.Code == http.StatusForbidden:
		return rejected("The provided key is invalid"), nil

	default:
		return rejected("Unexpected response from the payment provider (status %d)", resp.Code), nil
	}
}

// Payment Product Verifier
type paymentProductVerifier struct {
	factory Factory
}

func newPaymentProductVerifier(
	ctx context.Context, factory Factory, data map[string]any,
) (*paymentProductVerifier, error) {
	return &paymentProductVerifier{factory: factory}, nil
}

func (v *paymentProductVerifier) Verify(ctx context.Context, claim map[string]any) (Result, error) {
	key := claimAPIKey(claim)
	if result, ok := checkKeyFormat(ctx, key); !ok {
		return result, nil
	}

	cfg := xcontext.Configs(ctx).Payment
	callCtx, cancel := context.WithTimeout(ctx, cfg.CallTimeout)
	defer cancel()

	resp, err := v.factory.apiGenerator.New(cfg.APIDomain, "/v1/products").
		Header("Authorization", "Bearer "+key).
		Query(api.Parameter{"active": "true", "limit": "10"}).
		GET(callCtx)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot call payment provider: %v", err)
		return rejected("Cannot reach the payment provider, please try again"), nil
	}

	if resp.Code == http.StatusUnauthorized || resp.Code == http.StatusForbidden {
		return rejected("The provided key is invalid"), nil
	}

	if resp.Code != http.StatusOK {
		return rejected("Unexpected response from the payment provider (status %d)", resp.Code), nil
	}

	products, err := resp.Body.GetArray("data")
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid product listing: %v", err)
		return rejected("Unexpected response from the payment provider"), nil
	}

	if len(products) == 0 {
		return rejected("No active product found on this account"), nil
	}

	return accepted("Active product verified"), nil
}
