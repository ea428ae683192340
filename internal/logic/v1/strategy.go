package v1

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/memoirlab/memoir-api/internal/core"
	"github.com/memoirlab/memoir-api/pkg/errors"
	"github.com/memoirlab/memoir-api/pkg/i18n"
	"github.com/memoirlab/memoir-api/pkg/safe"
	"github.com/memoirlab/memoir-api/pkg/types"
	"github.com/memoirlab/memoir-api/pkg/utils"
)

const uploadConcurrency = 4

// CreationStrategy attaches images to a freshly created entry. The entry row
// is always committed before Attach runs, image rows can never reference a
// missing entry.
//
// Two variants exist: ServerMediatedUpload receives the raw file bytes and
// writes them to the bucket itself, ClientMediatedUpload receives paths the
// client already uploaded through a presigned key.
type CreationStrategy interface {
	Name() string
	Attach(ctx context.Context, entry types.Entry) ([]types.EntryImage, error)
}

type UploadFile struct {
	FileName string
	Content  []byte
}

var supportedImageExts = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
	"heic": true,
}

func IsSupportedImage(fileName string) bool {
	return supportedImageExts[utils.FileExt(fileName)]
}

// BuildEntryImagePath derives the deterministic object path of the n-th
// submitted file, 1 based. The path is keyed by entry id, so the entry row
// must exist first.
func BuildEntryImagePath(entryID string, index int, fileName string) (dir, file string) {
	ext := utils.FileExt(fileName)
	if ext == "" {
		ext = "bin"
	}
	return filepath.Join("entries", entryID), fmt.Sprintf("%d.%s", index, ext)
}

func NewServerMediatedUpload(core *core.Core, files []UploadFile) *ServerMediatedUpload {
	return &ServerMediatedUpload{
		core:  core,
		files: files,
	}
}

// ServerMediatedUpload uploads each submitted file, skipping the ones that
// fail. The entry keeps whatever subset landed.
type ServerMediatedUpload struct {
	core  *core.Core
	files []UploadFile
}

func (s *ServerMediatedUpload) Name() string {
	return "server"
}

func (s *ServerMediatedUpload) Attach(ctx context.Context, entry types.Entry) ([]types.EntryImage, error) {
	if len(s.files) == 0 {
		return nil, nil
	}

	storage := s.core.FileStorage()

	var mu sync.Mutex
	// slot per submitted file, empty when the upload got skipped
	uploaded := make([]string, len(s.files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for i, f := range s.files {
		i, f := i, f
		if len(f.Content) == 0 {
			continue
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			dir, file := BuildEntryImagePath(entry.ID, i+1, f.FileName)
			if err := storage.SaveFile(gctx, dir, file, f.Content, false); err != nil {
				s.core.Metrics().UploadFailed()
				slog.Error("Failed to upload entry image, skipped",
					slog.String("entry_id", entry.ID),
					slog.String("file", f.FileName),
					slog.String("error", err.Error()))
				return nil
			}

			mu.Lock()
			uploaded[i] = filepath.Join(dir, file)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	if ctx.Err() != nil {
		// caller walked away mid upload, remove what already landed so no
		// unreferenced objects stay behind
		s.rollbackUploaded(uploaded)
		return nil, errors.New("ServerMediatedUpload.Attach.ctx", i18n.ERROR_INTERNAL, ctx.Err())
	}

	var images []types.EntryImage
	for _, fullPath := range uploaded {
		if fullPath == "" {
			continue
		}
		images = append(images, types.EntryImage{
			ID:          utils.GenSpecIDStr(),
			EntryID:     entry.ID,
			StoragePath: fullPath,
			CreatedAt:   time.Now().Unix(),
		})
	}
	if len(images) == 0 {
		return nil, nil
	}

	if err := s.core.Store().EntryImageStore().BatchCreate(ctx, images); err != nil {
		return nil, errors.New("ServerMediatedUpload.Attach.EntryImageStore.BatchCreate", i18n.ERROR_INTERNAL, err)
	}
	return images, nil
}

func (s *ServerMediatedUpload) rollbackUploaded(uploaded []string) {
	var paths []string
	for _, v := range uploaded {
		if v != "" {
			paths = append(paths, v)
		}
	}
	if len(paths) == 0 {
		return
	}

	go safe.Run(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		if err := s.core.FileStorage().BatchDeleteFiles(ctx, paths); err != nil {
			slog.Error("Failed to roll back uploaded objects", slog.Any("paths", paths), slog.String("error", err.Error()))
		}
	})
}

func NewClientMediatedUpload(core *core.Core, paths []string) *ClientMediatedUpload {
	return &ClientMediatedUpload{
		core:  core,
		paths: paths,
	}
}

// ClientMediatedUpload trusts paths the client uploaded beforehand with a
// key from UploadLogic.GenClientUploadKey, it only writes the rows.
type ClientMediatedUpload struct {
	core  *core.Core
	paths []string
}

func (s *ClientMediatedUpload) Name() string {
	return "client"
}

func (s *ClientMediatedUpload) Attach(ctx context.Context, entry types.Entry) ([]types.EntryImage, error) {
	if len(s.paths) == 0 {
		return nil, nil
	}

	// upload keys are only ever issued under the caller's own prefix, any
	// other path would reference someone else's objects
	ownPrefix := entry.UserID + "/"
	for _, path := range s.paths {
		if !strings.HasPrefix(path, ownPrefix) {
			return nil, errors.New("ClientMediatedUpload.Attach.path", i18n.ERROR_PERMISSION_DENIED,
				fmt.Errorf("path %s not owned by user %s", path, entry.UserID)).Code(http.StatusForbidden)
		}
	}

	var images []types.EntryImage
	for _, path := range s.paths {
		images = append(images, types.EntryImage{
			ID:          utils.GenSpecIDStr(),
			EntryID:     entry.ID,
			StoragePath: path,
			CreatedAt:   time.Now().Unix(),
		})
	}

	if err := s.core.Store().EntryImageStore().BatchCreate(ctx, images); err != nil {
		return nil, errors.New("ClientMediatedUpload.Attach.EntryImageStore.BatchCreate", i18n.ERROR_INTERNAL, err)
	}

	// the objects are referenced now, drop them from the pending upload log
	go safe.Run(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		for _, path := range s.paths {
			if err := s.core.Store().FileManagementStore().DeleteByFile(ctx, path); err != nil {
				slog.Warn("Failed to clear file management record", slog.String("file", path), slog.String("error", err.Error()))
			}
		}
	})

	return images, nil
}
