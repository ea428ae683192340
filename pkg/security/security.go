package security

import (
	"github.com/dgrijalva/jwt-go"
)

// TokenClaims is the authenticated identity carried through request context
// after the access token middleware has verified the caller.
type TokenClaims struct {
	jwt.StandardClaims
	Appid   string         `json:"appid"`
	AppName string         `json:"app_name"`
	User    string         `json:"user"`
	Fields  map[string]any `json:"fields"`
}

func NewTokenClaims(appid, appName, userID string, expiresAt int64) *TokenClaims {
	return &TokenClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt,
		},
		Appid:   appid,
		AppName: appName,
		User:    userID,
		Fields:  make(map[string]any),
	}
}
