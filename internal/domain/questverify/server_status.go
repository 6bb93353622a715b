package questverify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/questhive/backend/pkg/api"
	"github.com/questhive/backend/pkg/crypto"
	"github.com/questhive/backend/pkg/urlguard"
	"github.com/questhive/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	headerSignature = "X-Questhive-Signature"
	headerTimestamp = "X-Questhive-Timestamp"
	headerNonce     = "X-Questhive-Nonce"

	statusCheckAction = "status_check"
)

// Server Status Verifier
type serverStatusVerifier struct {
	factory Factory

	// RequiredFields lists the keys that must be present and true in the
	// data object the user server returns.
	RequiredFields []string `mapstructure:"required_fields"`
}

func newServerStatusVerifier(
	ctx context.Context, factory Factory, data map[string]any,
) (*serverStatusVerifier, error) {
	verifier := serverStatusVerifier{factory: factory}
	if err := mapstructure.Decode(data, &verifier); err != nil {
		return nil, err
	}

	return &verifier, nil
}

func (v *serverStatusVerifier) Verify(ctx context.Context, claim map[string]any) (Result, error) {
	profile, err := v.factory.serverProfileRepo.Get(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rejected("Configure your server profile before attempting this quest"), nil
		}

		return Result{}, err
	}

	if err := urlguard.Validate(profile.ServerURL, urlguard.UserServer); err != nil {
		return rejected("Server URL rejected: %v", err), nil
	}

	token, err := v.factory.secretBox.Decrypt(profile.ServerToken)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrypt server token of user %s: %v",
			xcontext.RequestUserID(ctx), err)
		return rejected("Your server token is unusable, please re-issue it"), nil
	}

	result, err := v.challenge(ctx, profile.ServerURL, token)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot challenge user server: %v", err)
		return rejected("Your server could not be reached"), nil
	}

	return result, nil
}

// challenge sends a signed request to the user server and checks the signed
// response. Every check failure comes back as a rejection, never an error;
// errors only cover transport faults.
func (v *serverStatusVerifier) challenge(
	ctx context.Context, serverURL, token string,
) (Result, error) {
	cfg := xcontext.Configs(ctx).Quest

	now := time.Now().Unix()
	nonce := crypto.GenerateRandomToken()
	body := api.JSON{
		"action":    statusCheckAction,
		"timestamp": now,
		"nonce":     nonce,
	}

	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return Result{}, err
	}

	timestamp := strconv.FormatInt(now, 10)
	signature := crypto.SignHMAC(token, timestamp, nonce, string(bodyJSON))

	callCtx, cancel := context.WithTimeout(ctx, cfg.ServerStatusTimeout)
	defer cancel()

	resp, err := v.factory.apiGenerator.New(serverURL, cfg.ServerStatusPath).
		Header(headerSignature, signature).
		Header(headerTimestamp, timestamp).
		Header(headerNonce, nonce).
		Body(body).
		POST(callCtx)
	if err != nil {
		return Result{}, err
	}

	if resp.Code < 200 || resp.Code >= 300 {
		return rejected("Your server answered with status %d", resp.Code), nil
	}

	return v.checkResponse(ctx, token, resp)
}

func (v *serverStatusVerifier) checkResponse(
	ctx context.Context, token string, resp *api.Response,
) (Result, error) {
	respSignature, sigErr := resp.Body.GetString("signature")
	respTimestamp, tsErr := resp.Body.GetInt64("timestamp")
	respData, dataErr := resp.Body.GetJSON("data")
	if sigErr != nil || tsErr != nil || dataErr != nil {
		return rejected("Your server returned a malformed response"), nil
	}

	staleness := xcontext.Configs(ctx).Quest.ResponseMaxStaleness
	age := time.Since(time.Unix(respTimestamp, 0))
	if age > staleness || age < -staleness {
		return rejected("Your server returned a stale or future-dated response"), nil
	}

	dataJSON, err := json.Marshal(respData)
	if err != nil {
		return Result{}, err
	}

	timestamp := strconv.FormatInt(respTimestamp, 10)
	if !crypto.VerifyHMAC(token, respSignature, timestamp, string(dataJSON)) {
		return rejected("Your server response failed signature verification"), nil
	}

	// A response signature is accepted once within the freshness window. If
	// the cache is unavailable the timestamp check above still bounds the
	// replay surface.
	if v.factory.redisClient != nil {
		first, err := v.factory.redisClient.SetNX(
			ctx, "questverify:replay:"+respSignature, "1", staleness)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot record response signature: %v", err)
		} else if !first {
			return rejected("Your server response was already used"), nil
		}
	}

	return v.checkRequiredFields(respData)
}

func (v *serverStatusVerifier) checkRequiredFields(data api.JSON) (Result, error) {
	var missing, unmet []string
	for _, field := range v.RequiredFields {
		value, ok := data[field]
		if !ok {
			missing = append(missing, field)
			continue
		}

		if b, ok := value.(bool); !ok || !b {
			unmet = append(unmet, field)
		}
	}

	result := Result{Data: data}
	switch {
	case len(missing) > 0:
		result.Message = fmt.Sprintf("Your server status is missing fields: %v", missing)

	case len(unmet) > 0:
		result.Message = fmt.Sprintf("Your server reports failing checks: %v", unmet)

	default:
		result.Valid = true
		result.Message = "Server status verified"
	}

	return result, nil
}
