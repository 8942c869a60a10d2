package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// BuildBuilderHmacSignature computes the builder-credential request proof:
// hex(HMAC-SHA256(secret, timestamp+method+path+body)). The secret is used
// as a raw string.
func BuildBuilderHmacSignature(secret, timestamp, method, path, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + method + path + body))
	return hex.EncodeToString(mac.Sum(nil))
}

// BuildUserHmacSignature computes the user-credential (L2) request proof.
//
// The message is timestamp+method+path with the body appended only when
// non-empty. The secret is interpreted as base64url first; if it decodes,
// the HMAC is base64url-encoded. Secrets that are not valid base64url fall
// back to raw-string keying with a hex-encoded HMAC.
func BuildUserHmacSignature(secret, timestamp, method, path, body string) string {
	message := timestamp + method + path
	if body != "" {
		message += body
	}

	if key, err := base64.URLEncoding.DecodeString(secret); err == nil {
		mac := hmac.New(sha256.New, key)
		mac.Write([]byte(message))
		return base64.URLEncoding.EncodeToString(mac.Sum(nil))
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
