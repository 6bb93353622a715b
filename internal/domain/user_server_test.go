package domain

import (
	"testing"

	"github.com/questhive/backend/internal/model"
	"github.com/questhive/backend/internal/repository"
	"github.com/questhive/backend/pkg/crypto"
	"github.com/questhive/backend/pkg/errorx"
	"github.com/questhive/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestUserServerDomain(t *testing.T) UserServerDomain {
	secretBox, err := crypto.NewSecretBox("base-secret-for-testing")
	require.NoError(t, err)

	return NewUserServerDomain(repository.NewUserServerProfileRepository(), secretBox)
}

func Test_UpdateProfile_IssuesTokenOnce(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.CreateUser(ctx, nil)
	ctx = withUser(ctx, user.ID)

	userServerDomain := newTestUserServerDomain(t)

	resp, err := userServerDomain.UpdateProfile(ctx, &model.UpdateServerProfileRequest{
		ServerURL: "https://myserver.example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "https://myserver.example.com", resp.ServerURL)
	require.Len(t, resp.ServerToken, 64)

	// At rest only the ciphertext is kept.
	profile, err := repository.NewUserServerProfileRepository().Get(ctx, user.ID)
	require.NoError(t, err)
	require.NotEqual(t, resp.ServerToken, profile.ServerToken)
	require.Contains(t, profile.ServerToken, "encrypted:")

	secretBox, err := crypto.NewSecretBox("base-secret-for-testing")
	require.NoError(t, err)
	decrypted, err := secretBox.Decrypt(profile.ServerToken)
	require.NoError(t, err)
	require.Equal(t, resp.ServerToken, decrypted)

	// The read API never returns the token again.
	getResp, err := userServerDomain.GetProfile(ctx, &model.GetServerProfileRequest{})
	require.NoError(t, err)
	require.Equal(t, "https://myserver.example.com", getResp.ServerURL)
	require.True(t, getResp.HasServerToken)
}

func Test_UpdateProfile_RotatesToken(t *testing.T) {
	ctx := withUser(testutil.MockContext(), "user-1")
	userServerDomain := newTestUserServerDomain(t)

	first, err := userServerDomain.UpdateProfile(ctx, &model.UpdateServerProfileRequest{
		ServerURL: "https://myserver.example.com",
	})
	require.NoError(t, err)

	second, err := userServerDomain.UpdateProfile(ctx, &model.UpdateServerProfileRequest{
		ServerURL: "http://localhost:3000",
	})
	require.NoError(t, err)
	require.NotEqual(t, first.ServerToken, second.ServerToken)

	profile, err := repository.NewUserServerProfileRepository().Get(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3000", profile.ServerURL)
}

func Test_UpdateProfile_RejectsUnsafeURL(t *testing.T) {
	ctx := withUser(testutil.MockContext(), "user-1")
	userServerDomain := newTestUserServerDomain(t)

	for _, serverURL := range []string{
		"http://example.com",
		"https://169.254.169.254",
		"https://db.internal",
		"ftp://example.com",
	} {
		_, err := userServerDomain.UpdateProfile(ctx, &model.UpdateServerProfileRequest{
			ServerURL: serverURL,
		})
		require.Error(t, err)
		errx, ok := err.(errorx.Error)
		require.True(t, ok)
		require.Equal(t, errorx.BadRequest, errx.Code)
	}
}

func Test_GetProfile_EmptyWithoutProfile(t *testing.T) {
	ctx := withUser(testutil.MockContext(), "user-1")

	resp, err := newTestUserServerDomain(t).GetProfile(ctx, &model.GetServerProfileRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.ServerURL)
	require.False(t, resp.HasServerToken)
}
