package types

import (
	"github.com/memoirlab/memoir-api/pkg/security"
)

type User struct {
	ID        string `json:"id" db:"id"`
	Appid     string `json:"appid" db:"appid"`
	Name      string `json:"name" db:"name"`
	Email     string `json:"email" db:"email"`
	Password  string `json:"-" db:"password"`
	Salt      string `json:"-" db:"salt"`
	UpdatedAt int64  `json:"updated_at" db:"updated_at"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

const DEFAULT_ACCESS_TOKEN_VERSION = "v1"

type AccessToken struct {
	ID        int64  `json:"id" db:"id"`
	Appid     string `json:"appid" db:"appid"`
	UserID    string `json:"user_id" db:"user_id"`
	Version   string `json:"version" db:"version"`
	Token     string `json:"token" db:"token"`
	ExpiresAt int64  `json:"expires_at" db:"expires_at"`
	Info      string `json:"info" db:"info"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

func (t AccessToken) TokenClaims() (*security.TokenClaims, error) {
	return security.NewTokenClaims(t.Appid, "memoir", t.UserID, t.ExpiresAt), nil
}
