package questverify

import (
	"context"
	"testing"

	"github.com/questhive/backend/pkg/api"
	"github.com/questhive/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func paymentFactory(client *testutil.MockAPIClient) Factory {
	return NewFactory(nil, nil, testutil.NewMockAPIGenerator(client), nil)
}

func Test_paymentKeyVerifier_KeyFormat(t *testing.T) {
	ctx := testutil.MockContext()

	// A nil GETFunc makes the mock panic on any call; format rejections must
	// never reach the network.
	verifier, err := newPaymentKeyVerifier(ctx, paymentFactory(testutil.NewMockAPIClient()), nil)
	require.NoError(t, err)

	result, err := verifier.Verify(ctx, map[string]any{})
	require.NoError(t, err)
	require.False(t, result.Valid)
	require.Equal(t, "Provide your payment provider secret key", result.Message)

	result, err = verifier.Verify(ctx, map[string]any{"api_key": "pk_live_123"})
	require.NoError(t, err)
	require.False(t, result.Valid)
	require.Equal(t, "The key must start with sk_", result.Message)
}

func Test_paymentKeyVerifier_AccountCall(t *testing.T) {
	ctx := testutil.MockContext()

	tests := []struct {
		name    string
		code    int
		valid   bool
		message string
	}{
		{name: "valid key", code: 200, valid: true, message: "Payment key verified"},
		{name: "invalid key", code: 401, valid: false, message: "The provided key is invalid"},
		{name: "forbidden key", code: 403, valid: false, message: "The provided key is invalid"},
		{name: "provider error", code: 500, valid: false,
			message: "Unexpected response from the payment provider (status 500)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testutil.NewMockAPIClient()
			client.GETFunc = func(ctx context.Context) (*api.Response, error) {
				return &api.Response{Code: tt.code, Body: api.JSON{}}, nil
			}

			verifier, err := newPaymentKeyVerifier(ctx, paymentFactory(client), nil)
			require.NoError(t, err)

			result, err := verifier.Verify(ctx, map[string]any{"api_key": "sk_test_123"})
			require.NoError(t, err)
			require.Equal(t, tt.valid, result.Valid)
			require.Equal(t, tt.message, result.Message)
			require.Equal(t, "Bearer sk_test_123", client.Headers["Authorization"])
		})
	}
}

func Test_paymentProductVerifier(t *testing.T) {
	ctx := testutil.MockContext()

	tests := []struct {
		name    string
		body    api.JSON
		valid   bool
		message string
	}{
		{
			name:    "active product exists",
			body:    api.JSON{"data": []any{map[string]any{"id": "prod_1"}}},
			valid:   true,
			message: "Active product verified",
		},
		{
			name:    "no active product",
			body:    api.JSON{"data": []any{}},
			valid:   false,
			message: "No active product found on this account",
		},
		{
			name:    "missing data field",
			body:    api.JSON{},
			valid:   false,
			message: "Unexpected response from the payment provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testutil.NewMockAPIClient()
			client.GETFunc = func(ctx context.Context) (*api.Response, error) {
				return &api.Response{Code: 200, Body: tt.body}, nil
			}

			verifier, err := newPaymentProductVerifier(ctx, paymentFactory(client), nil)
			require.NoError(t, err)

			result, err := verifier.Verify(ctx, map[string]any{"apiKey": "sk_test_123"})
			require.NoError(t, err)
			require.Equal(t, tt.valid, result.Valid)
			require.Equal(t, tt.message, result.Message)
			require.Equal(t, "true", client.Queries["active"])
		})
	}
}
