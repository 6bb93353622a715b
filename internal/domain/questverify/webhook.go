package questverify

import (
	"context"
	"time"

	"github.com/questhive/backend/pkg/api"
	"github.com/questhive/backend/pkg/urlguard"
	"github.com/questhive/backend/pkg/xcontext"
)

// Webhook Verifier
type webhookVerifier struct {
	factory Factory
}

func newWebhookVerifier(
	ctx context.Context, factory Factory, data map[string]any,
) (*webhookVerifier, error) {
	return &webhookVerifier{factory: factory}, nil
}

func (v *webhookVerifier) Verify(ctx context.Context, claim map[string]any) (Result, error) {
	webhookURL, ok := claim["webhook_url"].(string)
	if !ok || webhookURL == "" {
		return rejected("Provide your webhook URL"), nil
	}

	// The guard must run before any request leaves the platform. A blocked
	// target is never contacted, and its rejection reason is returned in
	// the same shape as any other failure.
	if err := urlguard.Validate(webhookURL, urlguard.External); err != nil {
		return rejected("Webhook URL rejected: %v", err), nil
	}

	callCtx, cancel := context.WithTimeout(ctx, xcontext.Configs(ctx).Quest.WebhookTimeout)
	defer cancel()

	resp, err := v.factory.apiGenerator.New(webhookURL, "").
		Body(api.JSON{
			"event":     "questhive.webhook_test",
			"timestamp": time.Now().Unix(),
		}).
		POST(callCtx)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot call webhook: %v", err)
		return rejected("Your webhook could not be reached"), nil
	}

	if resp.Code < 200 || resp.Code >= 300 {
		return rejected("Your webhook answered with status %d", resp.Code), nil
	}

	return accepted("Webhook responded successfully"), nil
}
