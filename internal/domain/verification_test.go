package domain

import (
	"testing"

	"github.com/questhive/backend/internal/domain/questreward"
	"github.com/questhive/backend/internal/domain/questverify"
	"github.com/questhive/backend/internal/entity"
	"github.com/questhive/backend/internal/model"
	"github.com/questhive/backend/internal/repository"
	"github.com/questhive/backend/pkg/crypto"
	"github.com/questhive/backend/pkg/errorx"
	"github.com/questhive/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestVerificationDomain(t *testing.T) VerificationDomain {
	secretBox, err := crypto.NewSecretBox("base-secret-for-testing")
	require.NoError(t, err)

	factory := questverify.NewFactory(
		repository.NewUserServerProfileRepository(),
		secretBox,
		testutil.NewMockAPIGenerator(testutil.NewMockAPIClient()),
		nil,
	)

	evaluator := questreward.NewEvaluator(
		repository.NewQuestRepository(),
		repository.NewChapterRepository(),
		repository.NewQuestProgressRepository(),
		repository.NewRewardRepository(),
	)

	return NewVerificationDomain(
		repository.NewQuestRepository(),
		repository.NewQuestProgressRepository(),
		factory,
		evaluator,
	)
}

func Test_Verify_ManualQuest(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.CreateUser(ctx, nil)
	quest := testutil.CreateQuest(ctx, &entity.Quest{Slug: "setup-monitoring"})
	ctx = withUser(ctx, user.ID)

	resp, err := newTestVerificationDomain(t).Verify(ctx, &model.VerifyQuestRequest{
		QuestSlug: "setup-monitoring",
		Data:      map[string]any{"confirmed": true},
	})
	require.NoError(t, err)
	require.True(t, resp.Success)

	progress, err := repository.NewQuestProgressRepository().Get(ctx, user.ID, quest.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ProgressCompleted, progress.Status)
	require.True(t, progress.CompletedAt.Valid)
	require.Equal(t, "manual", progress.Metadata["verification_type"])
}

func Test_Verify_FailedClaimRecordsNothing(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.CreateUser(ctx, nil)
	quest := testutil.CreateQuest(ctx, &entity.Quest{Slug: "setup-monitoring"})
	ctx = withUser(ctx, user.ID)

	resp, err := newTestVerificationDomain(t).Verify(ctx, &model.VerifyQuestRequest{
		QuestSlug: "setup-monitoring",
		Data:      map[string]any{"confirmed": false},
	})
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.NotEmpty(t, resp.Message)

	_, err = repository.NewQuestProgressRepository().Get(ctx, user.ID, quest.ID)
	require.Error(t, err)
}

func Test_Verify_ClaimCannotChooseVerifier(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.CreateUser(ctx, nil)
	testutil.CreateQuest(ctx, &entity.Quest{Slug: "setup-monitoring"})
	ctx = withUser(ctx, user.ID)

	// The claim names another verification type; the stored quest record
	// still routes to the manual verifier, which ignores the field.
	resp, err := newTestVerificationDomain(t).Verify(ctx, &model.VerifyQuestRequest{
		QuestSlug: "setup-monitoring",
		Data: map[string]any{
			"type":      "server_status",
			"confirmed": false,
		},
	})
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, "You must confirm that you completed this quest", resp.Message)
}

func Test_Verify_PrerequisiteNotMet(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.CreateUser(ctx, nil)
	prerequisite := testutil.CreateQuest(ctx, &entity.Quest{Slug: "basics"})
	testutil.CreateQuest(ctx, &entity.Quest{
		Slug:                "advanced",
		PrerequisiteQuestID: nullString(prerequisite.ID),
	})
	ctx = withUser(ctx, user.ID)

	verificationDomain := newTestVerificationDomain(t)

	_, err := verificationDomain.Verify(ctx, &model.VerifyQuestRequest{
		QuestSlug: "advanced",
		Data:      map[string]any{"confirmed": true},
	})
	require.Error(t, err)
	errx, ok := err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.PrerequisiteNotMet, errx.Code)

	// Completing the prerequisite unlocks the quest.
	resp, err := verificationDomain.Verify(ctx, &model.VerifyQuestRequest{
		QuestSlug: "basics",
		Data:      map[string]any{"confirmed": true},
	})
	require.NoError(t, err)
	require.True(t, resp.Success)

	resp, err = verificationDomain.Verify(ctx, &model.VerifyQuestRequest{
		QuestSlug: "advanced",
		Data:      map[string]any{"confirmed": true},
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
}

func Test_Verify_GrantsRewards(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.CreateUser(ctx, nil)
	quest := testutil.CreateQuest(ctx, &entity.Quest{Slug: "setup-monitoring"})
	reward := testutil.CreateReward(ctx, &entity.Reward{
		Name: "Monitoring badge",
		Condition: entity.RewardCondition{
			Type: entity.QuestRewardCondition,
			Data: entity.Map{"quest_id": quest.ID},
		},
	})
	ctx = withUser(ctx, user.ID)

	verificationDomain := newTestVerificationDomain(t)

	resp, err := verificationDomain.Verify(ctx, &model.VerifyQuestRequest{
		QuestSlug: "setup-monitoring",
		Data:      map[string]any{"confirmed": true},
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Len(t, resp.Rewards, 1)
	require.Equal(t, reward.ID, resp.Rewards[0].ID)

	// Re-verifying the same quest grants nothing new.
	resp, err = verificationDomain.Verify(ctx, &model.VerifyQuestRequest{
		QuestSlug: "setup-monitoring",
		Data:      map[string]any{"confirmed": true},
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Empty(t, resp.Rewards)
}

func Test_Verify_InactiveQuest(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.CreateUser(ctx, nil)
	testutil.CreateQuest(ctx, &entity.Quest{Slug: "old-quest", Status: entity.QuestArchived})
	ctx = withUser(ctx, user.ID)

	_, err := newTestVerificationDomain(t).Verify(ctx, &model.VerifyQuestRequest{
		QuestSlug: "old-quest",
		Data:      map[string]any{"confirmed": true},
	})
	require.Error(t, err)
	errx, ok := err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.Unavailable, errx.Code)
}

func Test_Verify_NotFoundQuest(t *testing.T) {
	ctx := withUser(testutil.MockContext(), "user-1")

	_, err := newTestVerificationDomain(t).Verify(ctx, &model.VerifyQuestRequest{
		QuestSlug: "no-such-quest",
	})
	require.Error(t, err)
	errx, ok := err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_Verify_Unauthenticated(t *testing.T) {
	ctx := testutil.MockContext()

	_, err := newTestVerificationDomain(t).Verify(ctx, &model.VerifyQuestRequest{
		QuestSlug: "setup-monitoring",
	})
	require.Error(t, err)
	errx, ok := err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}
