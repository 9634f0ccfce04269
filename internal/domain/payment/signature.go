package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// SignatureHeader carries the provider's HMAC of the raw webhook body
const SignatureHeader = "x-paystack-signature"

// Sign returns the hex HMAC-SHA512 of body keyed with secret
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks signature against the HMAC of the raw body
func VerifySignature(body []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected, err := hex.DecodeString(Sign(body, secret))
	if err != nil {
		return false
	}
	got, err := hex.DecodeString(strings.TrimSpace(strings.ToLower(signature)))
	if err != nil {
		return false
	}
	return hmac.Equal(expected, got)
}
