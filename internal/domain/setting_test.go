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

func newTestSettingDomain(t *testing.T) SettingDomain {
	secretBox, err := crypto.NewSecretBox("base-secret-for-testing")
	require.NoError(t, err)

	return NewSettingDomain(repository.NewSettingRepository(), secretBox)
}

func Test_Setting_PlainRoundTrip(t *testing.T) {
	ctx := testutil.MockContext()
	settingDomain := newTestSettingDomain(t)

	_, err := settingDomain.Upsert(ctx, &model.UpsertSettingRequest{
		Key:   "support_email",
		Value: "support@example.com",
	})
	require.NoError(t, err)

	resp, err := settingDomain.Get(ctx, &model.GetSettingRequest{Key: "support_email"})
	require.NoError(t, err)
	require.Equal(t, "support@example.com", resp.Value)
}

func Test_Setting_EncryptedRoundTrip(t *testing.T) {
	ctx := testutil.MockContext()
	settingDomain := newTestSettingDomain(t)

	_, err := settingDomain.Upsert(ctx, &model.UpsertSettingRequest{
		Key:         "provider_api_key",
		Value:       "sk_live_secret",
		IsEncrypted: true,
	})
	require.NoError(t, err)

	// The stored value is ciphertext.
	setting, err := repository.NewSettingRepository().Get(ctx, "provider_api_key")
	require.NoError(t, err)
	require.NotEqual(t, "sk_live_secret", setting.Value)
	require.Contains(t, setting.Value, "encrypted:")

	resp, err := settingDomain.Get(ctx, &model.GetSettingRequest{Key: "provider_api_key"})
	require.NoError(t, err)
	require.Equal(t, "sk_live_secret", resp.Value)
}

func Test_Setting_CacheInvalidatedOnUpsert(t *testing.T) {
	ctx := testutil.MockContext()
	settingDomain := newTestSettingDomain(t)

	_, err := settingDomain.Upsert(ctx, &model.UpsertSettingRequest{
		Key:   "flag",
		Value: "plain",
	})
	require.NoError(t, err)

	resp, err := settingDomain.Get(ctx, &model.GetSettingRequest{Key: "flag"})
	require.NoError(t, err)
	require.Equal(t, "plain", resp.Value)

	// Redefining the key as encrypted must not serve the stale cache entry.
	_, err = settingDomain.Upsert(ctx, &model.UpsertSettingRequest{
		Key:         "flag",
		Value:       "now hidden",
		IsEncrypted: true,
	})
	require.NoError(t, err)

	resp, err = settingDomain.Get(ctx, &model.GetSettingRequest{Key: "flag"})
	require.NoError(t, err)
	require.Equal(t, "now hidden", resp.Value)
}

func Test_Setting_NotFound(t *testing.T) {
	ctx := testutil.MockContext()

	_, err := newTestSettingDomain(t).Get(ctx, &model.GetSettingRequest{Key: "missing"})
	require.Error(t, err)
	errx, ok := err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_Setting_EmptyKeyRejected(t *testing.T) {
	ctx := testutil.MockContext()

	_, err := newTestSettingDomain(t).Upsert(ctx, &model.UpsertSettingRequest{Value: "x"})
	require.Error(t, err)
	errx, ok := err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.BadRequest, errx.Code)
}
