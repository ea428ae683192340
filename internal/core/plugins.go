package core

import (
	"context"
	"time"

	"github.com/memoirlab/memoir-api/internal/core/srv"
)

type Cache = srv.Cache

type Plugins interface {
	Install(*Core) error
	Name() string
	DefaultAppid() string
	TryLock(ctx context.Context, key string) (bool, error)
	FileUploader() FileStorage
	Cache() Cache
	UseLimiter(key string, method string, defaultRatelimit int) Limiter
}

type UploadFileMeta struct {
	FullPath       string `json:"full_path"`
	UploadEndpoint string `json:"upload_endpoint"`
	Domain         string `json:"domain"`
}

// FileStorage is the object store gateway. Paths are private, reads go
// through GenGetObjectPreSignURL.
type FileStorage interface {
	GetStaticDomain() string
	GenUploadFileMeta(filePath, fileName string) (UploadFileMeta, error)
	GenGetObjectPreSignURL(filePath string, expires time.Duration) (string, error)
	SaveFile(ctx context.Context, filePath, fileName string, content []byte, overwrite bool) error
	DeleteFile(ctx context.Context, fullFilePath string) error
	BatchDeleteFiles(ctx context.Context, fullFilePaths []string) error
}

type Limiter interface {
	Allow() bool
}

type SetupFunc func() Plugins

func (c *Core) InstallPlugins(p Plugins) {
	p.Install(c)
	c.Plugins = p
}
