package questverify

import "context"

// Manual Verifier
type manualVerifier struct{}

func newManualVerifier(context.Context, map[string]any) (*manualVerifier, error) {
	return &manualVerifier{}, nil
}

func (v *manualVerifier) Verify(ctx context.Context, claim map[string]any) (Result, error) {
	if confirmed, ok := claim["confirmed"].(bool); ok && confirmed {
		return accepted("Quest completion confirmed"), nil
	}

	return rejected("You must confirm that you completed this quest"), nil
}
