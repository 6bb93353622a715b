package middleware

import (
	"testing"

	"github.com/questhive/backend/pkg/errorx"
	"github.com/questhive/backend/pkg/testutil"
	"github.com/questhive/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_Authenticate(t *testing.T) {
	authenticate := Authenticate()

	_, err := authenticate(testutil.MockContext())
	require.Error(t, err)
	errx, ok := err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.Unauthenticated, errx.Code)

	ctx, err := authenticate(testutil.MockContextWithUserID("user-1"))
	require.NoError(t, err)
	require.Equal(t, "user-1", xcontext.RequestUserID(ctx))
}
