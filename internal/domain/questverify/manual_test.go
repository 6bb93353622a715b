package questverify

import (
	"testing"

	"github.com/questhive/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_manualVerifier(t *testing.T) {
	ctx := testutil.MockContext()
	verifier, err := newManualVerifier(ctx, nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		claim map[string]any
		valid bool
	}{
		{name: "confirmed", claim: map[string]any{"confirmed": true}, valid: true},
		{name: "not confirmed", claim: map[string]any{"confirmed": false}, valid: false},
		{name: "confirmed is not a bool", claim: map[string]any{"confirmed": "true"}, valid: false},
		{name: "empty claim", claim: map[string]any{}, valid: false},
		{name: "nil claim", claim: nil, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := verifier.Verify(ctx, tt.claim)
			require.NoError(t, err)
			require.Equal(t, tt.valid, result.Valid)
			require.NotEmpty(t, result.Message)
		})
	}
}
