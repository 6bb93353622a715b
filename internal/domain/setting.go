package domain

import (
	"context"
	"errors"
	"sync"

	"github.com/puzpuzpuz/xsync"
	"github.com/questhive/backend/internal/entity"
	"github.com/questhive/backend/internal/model"
	"github.com/questhive/backend/internal/repository"
	"github.com/questhive/backend/pkg/crypto"
	"github.com/questhive/backend/pkg/errorx"
	"github.com/questhive/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SettingDomain interface {
	Upsert(ctx context.Context, req *model.UpsertSettingRequest) (*model.UpsertSettingResponse, error)
	Get(ctx context.Context, req *model.GetSettingRequest) (*model.GetSettingResponse, error)
}

type settingDomain struct {
	settingRepo repository.SettingRepository
	secretBox   *crypto.SecretBox

	// encryptedKeys caches which setting keys hold ciphertext, so reads
	// do not need the full row to know whether to decrypt.
	encryptedKeys *xsync.MapOf[string, bool]
	loadMutex     sync.Mutex
	loaded        bool
}

func NewSettingDomain(
	settingRepo repository.SettingRepository,
	secretBox *crypto.SecretBox,
) *settingDomain {
	return &settingDomain{
		settingRepo:   settingRepo,
		secretBox:     secretBox,
		encryptedKeys: xsync.NewMapOf[bool](),
	}
}

func (d *settingDomain) Upsert(
	ctx context.Context, req *model.UpsertSettingRequest,
) (*model.UpsertSettingResponse, error) {
	if req.Key == "" {
		return nil, errorx.New(errorx.BadRequest, "Setting key must not be empty")
	}

	value := req.Value
	if req.IsEncrypted {
		encrypted, err := d.secretBox.Encrypt(value)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot encrypt setting value: %v", err)
			return nil, errorx.Unknown
		}
		value = encrypted
	}

	err := d.settingRepo.Upsert(ctx, &entity.Setting{
		Key:         req.Key,
		Value:       value,
		IsEncrypted: req.IsEncrypted,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert setting: %v", err)
		return nil, errorx.Unknown
	}

	d.invalidateCache()
	return &model.UpsertSettingResponse{}, nil
}

func (d *settingDomain) Get(
	ctx context.Context, req *model.GetSettingRequest,
) (*model.GetSettingResponse, error) {
	setting, err := d.settingRepo.Get(ctx, req.Key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found setting")
		}

		xcontext.Logger(ctx).Errorf("Cannot get setting: %v", err)
		return nil, errorx.Unknown
	}

	value := setting.Value
	if encrypted, err := d.isEncryptedKey(ctx, setting.Key); err != nil {
		return nil, err
	} else if encrypted {
		plaintext, err := d.secretBox.Decrypt(setting.Value)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot decrypt setting %s: %v", setting.Key, err)
			return nil, errorx.Unknown
		}
		value = plaintext
	}

	return &model.GetSettingResponse{Key: setting.Key, Value: value}, nil
}

func (d *settingDomain) isEncryptedKey(ctx context.Context, key string) (bool, error) {
	d.loadMutex.Lock()
	if !d.loaded {
		keys, err := d.settingRepo.GetEncryptedKeys(ctx)
		if err != nil {
			d.loadMutex.Unlock()
			xcontext.Logger(ctx).Errorf("Cannot load encrypted setting keys: %v", err)
			return false, errorx.Unknown
		}

		for _, k := range keys {
			d.encryptedKeys.Store(k, true)
		}
		d.loaded = true
	}
	d.loadMutex.Unlock()

	encrypted, _ := d.encryptedKeys.Load(key)
	return encrypted, nil
}

func (d *settingDomain) invalidateCache() {
	d.loadMutex.Lock()
	defer d.loadMutex.Unlock()
	d.encryptedKeys = xsync.NewMapOf[bool]()
	d.loaded = false
}
