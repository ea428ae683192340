package v1

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/memoirlab/memoir-api/internal/core"
	"github.com/memoirlab/memoir-api/pkg/errors"
	"github.com/memoirlab/memoir-api/pkg/i18n"
	"github.com/memoirlab/memoir-api/pkg/types"
	"github.com/memoirlab/memoir-api/pkg/utils"
)

type UploadLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewUploadLogic(ctx context.Context, core *core.Core) *UploadLogic {
	l := &UploadLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: setupUserInfo(ctx, core),
	}

	return l
}

type UploadKey struct {
	Key      string `json:"key"`
	FullPath string `json:"full_path"`
}

// genClientFileName keeps the original extension but never the original
// name, concurrent uploads from one user must not collide.
func genClientFileName(fileName string) string {
	ext := utils.FileExt(fileName)
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%d-%s.%s", time.Now().UnixMilli(), utils.RandomStr(8), ext)
}

// GenClientUploadKey issues a presigned upload slot under the caller's own
// prefix. The file management row is written first so an upload that never
// lands can be traced back.
func (l *UploadLogic) GenClientUploadKey(fileName string) (UploadKey, error) {
	userID := l.GetUserInfo().User
	if userID == "" {
		return UploadKey{}, errors.New("UploadLogic.GenClientUploadKey.auth", i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized)
	}

	if !IsSupportedImage(fileName) {
		return UploadKey{}, errors.New("UploadLogic.GenClientUploadKey.FileType", i18n.ERROR_UNSUPPORTED_FILE_TYPE, nil).Code(http.StatusBadRequest)
	}

	filePath := userID
	fileName = genClientFileName(fileName)

	var meta core.UploadFileMeta
	err := l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		err := l.core.Store().FileManagementStore().Create(ctx, types.FileManagement{
			UserID: userID,
			File:   filepath.Join(filePath, fileName),
		})
		if err != nil {
			return errors.New("UploadLogic.GenClientUploadKey.FileManagementStore.Create", i18n.ERROR_INTERNAL, err)
		}

		meta, err = l.core.Plugins.FileUploader().GenUploadFileMeta(filePath, fileName)
		if err != nil {
			return errors.New("UploadLogic.GenClientUploadKey.FileUploader.GenUploadFileMeta", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return UploadKey{}, err
	}

	return UploadKey{
		Key:      meta.UploadEndpoint,
		FullPath: meta.FullPath,
	}, nil
}
