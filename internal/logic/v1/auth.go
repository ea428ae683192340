package v1

import (
	"context"
	"database/sql"

	"github.com/memoirlab/memoir-api/internal/core"
	"github.com/memoirlab/memoir-api/pkg/errors"
	"github.com/memoirlab/memoir-api/pkg/i18n"
	"github.com/memoirlab/memoir-api/pkg/types"
	"github.com/memoirlab/memoir-api/pkg/utils"
)

type AuthLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewAuthLogic(ctx context.Context, core *core.Core) *AuthLogic {
	l := &AuthLogic{
		ctx:  ctx,
		core: core,
	}

	return l
}

func (l *AuthLogic) GetAccessTokenDetail(appid, token string) (*types.AccessToken, error) {
	data, err := l.core.Store().AccessTokenStore().GetAccessToken(l.ctx, appid, token)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("AuthLogic.GetAccessTokenDetail.AccessTokenStore.GetAccessToken", i18n.ERROR_INTERNAL, err)
	}

	return data, nil
}

func (l *AuthLogic) GenAccessToken(appid, desc, userID string, expiresAt int64) (string, error) {
	tokenStore := l.core.Store().AccessTokenStore()
REGEN:
	accessToken := utils.RandomStr(100)
	exist, err := tokenStore.GetAccessToken(l.ctx, appid, accessToken)
	if err != nil && err != sql.ErrNoRows {
		return "", errors.New("AuthLogic.GenAccessToken.GetAccessToken", i18n.ERROR_INTERNAL, err)
	}

	if exist != nil {
		goto REGEN
	}

	err = tokenStore.Create(l.ctx, types.AccessToken{
		Appid:     appid,
		UserID:    userID,
		Version:   types.DEFAULT_ACCESS_TOKEN_VERSION,
		Token:     accessToken,
		ExpiresAt: expiresAt,
		Info:      desc,
	})

	if err != nil {
		return "", errors.New("AuthLogic.GenAccessToken.Create", i18n.ERROR_INTERNAL, err)
	}

	return accessToken, nil
}
