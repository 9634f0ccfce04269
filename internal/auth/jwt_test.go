package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestMintAndParse(t *testing.T) {
	token, err := MintDevToken("a@x.com", "Ada", "secret", time.Hour)
	if err != nil {
		t.Fatalf("MintDevToken() error = %v", err)
	}

	claims, err := ParseClaims(token, "secret")
	if err != nil {
		t.Fatalf("ParseClaims() error = %v", err)
	}
	if claims.Email != "a@x.com" || claims.Name != "Ada" || claims.Subject != "dev:a@x.com" || claims.Issuer != DevIssuer {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseClaims_Rejects(t *testing.T) {
	valid, _ := MintDevToken("a@x.com", "", "secret", time.Hour)
	expired, _ := MintDevToken("a@x.com", "", "secret", -time.Minute)

	foreign, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email:            "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else"},
	}).SignedString([]byte("secret"))

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", valid, "other"},
		{"expired", expired, "secret"},
		{"wrong issuer", foreign, "secret"},
		{"garbage", "a.b.c", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseClaims(tt.token, tt.secret); err == nil {
				t.Error("ParseClaims() accepted the token")
			}
		})
	}
}

func TestMintDevToken_RequiresSecret(t *testing.T) {
	if _, err := MintDevToken("a@x.com", "", "", time.Hour); err == nil {
		t.Error("MintDevToken() without secret succeeded")
	}
}
