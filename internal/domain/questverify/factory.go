package questverify

import (
	"context"
	"fmt"

	"github.com/questhive/backend/internal/entity"
	"github.com/questhive/backend/internal/repository"
	"github.com/questhive/backend/pkg/api"
	"github.com/questhive/backend/pkg/crypto"
	"github.com/questhive/backend/pkg/xredis"
)

type Factory struct {
	serverProfileRepo repository.UserServerProfileRepository

	secretBox    *crypto.SecretBox
	apiGenerator api.Generator
	redisClient  xredis.Client
}

// NewFactory bundles the capabilities verifiers need. redisClient may be
// nil; the server-status verifier then skips the replay cache and relies on
// timestamp freshness alone.
func NewFactory(
	serverProfileRepo repository.UserServerProfileRepository,
	secretBox *crypto.SecretBox,
	apiGenerator api.Generator,
	redisClient xredis.Client,
) Factory {
	return Factory{
		serverProfileRepo: serverProfileRepo,
		secretBox:         secretBox,
		apiGenerator:      apiGenerator,
		redisClient:       redisClient,
	}
}

// New builds the verifier for the quest's stored verification type. The
// switch is exhaustive over the registered types; an unknown value is a
// configuration fault of the quest record, not a user error.
func New(ctx context.Context, factory Factory, quest entity.Quest) (Verifier, error) {
	switch quest.VerificationType {
	case entity.VerifyManual:
		return newManualVerifier(ctx, quest.VerificationConfig)

	case entity.VerifyPaymentKey:
		return newPaymentKeyVerifier(ctx, factory, quest.VerificationConfig)

	case entity.VerifyPaymentProduct:
		return newPaymentProductVerifier(ctx, factory, quest.VerificationConfig)

	case entity.VerifyWebhook:
		return newWebhookVerifier(ctx, factory, quest.VerificationConfig)

	case entity.VerifyServerStatus:
		return newServerStatusVerifier(ctx, factory, quest.VerificationConfig)

	default:
		return nil, fmt.Errorf("invalid verification type %s of quest %s",
			quest.VerificationType, quest.Slug)
	}
}
