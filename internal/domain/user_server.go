package domain

import (
	"context"
	"errors"

	"github.com/questhive/backend/internal/entity"
	"github.com/questhive/backend/internal/model"
	"github.com/questhive/backend/internal/repository"
	"github.com/questhive/backend/pkg/crypto"
	"github.com/questhive/backend/pkg/errorx"
	"github.com/questhive/backend/pkg/urlguard"
	"github.com/questhive/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserServerDomain interface {
	UpdateProfile(ctx context.Context, req *model.UpdateServerProfileRequest) (*model.UpdateServerProfileResponse, error)
	GetProfile(ctx context.Context, req *model.GetServerProfileRequest) (*model.GetServerProfileResponse, error)
}

type userServerDomain struct {
	serverProfileRepo repository.UserServerProfileRepository
	secretBox         *crypto.SecretBox
}

func NewUserServerDomain(
	serverProfileRepo repository.UserServerProfileRepository,
	secretBox *crypto.SecretBox,
) *userServerDomain {
	return &userServerDomain{serverProfileRepo: serverProfileRepo, secretBox: secretBox}
}

// UpdateProfile registers the user's server URL and issues a fresh shared
// token. The plaintext token appears only in this response; the database
// keeps its ciphertext.
func (d *userServerDomain) UpdateProfile(
	ctx context.Context, req *model.UpdateServerProfileRequest,
) (*model.UpdateServerProfileResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "User is not authenticated")
	}

	if err := urlguard.Validate(req.ServerURL, urlguard.UserServer); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Server URL rejected: %v", err)
	}

	token := crypto.GenerateRandomToken()
	encryptedToken, err := d.secretBox.Encrypt(token)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encrypt server token: %v", err)
		return nil, errorx.Unknown
	}

	err = d.serverProfileRepo.Upsert(ctx, &entity.UserServerProfile{
		UserID:      userID,
		ServerURL:   req.ServerURL,
		ServerToken: encryptedToken,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert server profile: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateServerProfileResponse{
		ServerURL:   req.ServerURL,
		ServerToken: token,
	}, nil
}

func (d *userServerDomain) GetProfile(
	ctx context.Context, req *model.GetServerProfileRequest,
) (*model.GetServerProfileResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "User is not authenticated")
	}

	profile, err := d.serverProfileRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetServerProfileResponse{}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get server profile: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetServerProfileResponse{
		ServerURL:      profile.ServerURL,
		HasServerToken: profile.ServerToken != "",
	}, nil
}
