package gateway

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/TwinDots/tdcardsave/internal/model"
)

// Sign computes the hex digest of body under the merchant's configured hash
// method. Plain methods hash sharedKey+body; HMAC methods key the MAC with
// the shared key.
func Sign(method model.HashMethod, sharedKey string, body []byte) (string, error) {
	var h hash.Hash
	switch method {
	case model.HashSHA1:
		h = sha1.New()
		h.Write([]byte(sharedKey))
	case model.HashMD5:
		h = md5.New()
		h.Write([]byte(sharedKey))
	case model.HashHMACSHA1:
		h = hmac.New(sha1.New, []byte(sharedKey))
	case model.HashHMACMD5:
		h = hmac.New(md5.New, []byte(sharedKey))
	default:
		return "", fmt.Errorf("unsupported hash method %q", method)
	}
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil)), nil
}
