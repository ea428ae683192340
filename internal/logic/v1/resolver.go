package v1

import (
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/memoirlab/memoir-api/internal/core"
)

// Signed urls expire after a day, the ui re-requests on next render.
const SignedURLExpires = time.Hour * 24

const signConcurrency = 8

// ResolveSignedURLs turns private storage paths into time boxed urls. Each
// path resolves independently and in parallel; a failed or missing object
// yields a nil slot instead of failing the whole set, callers filter nils
// before display.
func ResolveSignedURLs(storage core.FileStorage, paths []string, onFail func()) []*string {
	urls := make([]*string, len(paths))

	g := errgroup.Group{}
	g.SetLimit(signConcurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			url, err := storage.GenGetObjectPreSignURL(path, SignedURLExpires)
			if err != nil {
				if onFail != nil {
					onFail()
				}
				slog.Warn("Failed to sign storage path", slog.String("path", path), slog.String("error", err.Error()))
				return nil
			}
			urls[i] = &url
			return nil
		})
	}
	g.Wait()

	return urls
}
