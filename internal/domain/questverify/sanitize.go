package questverify

import (
	"net/url"
	"strings"
	"time"

	"github.com/questhive/backend/internal/entity"
	"golang.org/x/exp/slices"
)

var sensitiveKeyParts = []string{
	"apikey", "api_key", "token", "password", "secret", "credential", "key",
}

// SanitizeClaimMetadata reduces a raw completion claim to what is safe to
// persist on the progress record. Credentials never reach the database, URLs
// are stripped to their origin, and the stored map is stamped with how and
// when the quest was verified.
func SanitizeClaimMetadata(
	claim map[string]any, verificationType entity.VerificationType, now time.Time,
) entity.Map {
	sanitized := entity.Map{}
	for key, value := range claim {
		lowerKey := strings.ToLower(key)
		if isSensitiveKey(lowerKey) {
			continue
		}

		switch v := value.(type) {
		case bool:
			sanitized[key] = v

		case float64:
			sanitized[key] = v

		case int:
			sanitized[key] = v

		case int64:
			sanitized[key] = v

		case string:
			if strings.Contains(lowerKey, "url") {
				if origin, ok := urlOrigin(v); ok {
					sanitized[key] = origin
				}
			}
			// Other free-form strings are dropped, they may carry anything.
		}
	}

	sanitized["verification_type"] = string(verificationType)
	sanitized["verified_at"] = now.UTC().Format(time.RFC3339)

	return sanitized
}

func isSensitiveKey(lowerKey string) bool {
	return slices.ContainsFunc(sensitiveKeyParts, func(part string) bool {
		return strings.Contains(lowerKey, part)
	})
}

// urlOrigin keeps only the scheme and host of a URL, dropping path, query,
// and fragment which may embed per-user identifiers.
func urlOrigin(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}

	return u.Scheme + "://" + u.Host, true
}
