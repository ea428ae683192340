package v1_test

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/memoirlab/memoir-api/internal/core"
	v1 "github.com/memoirlab/memoir-api/internal/logic/v1"
)

type fakeStorage struct {
	failOn string
}

func (f *fakeStorage) GetStaticDomain() string {
	return "https://static.test"
}

func (f *fakeStorage) GenUploadFileMeta(filePath, fileName string) (core.UploadFileMeta, error) {
	return core.UploadFileMeta{FullPath: filePath + "/" + fileName}, nil
}

func (f *fakeStorage) GenGetObjectPreSignURL(filePath string, expires time.Duration) (string, error) {
	if f.failOn != "" && strings.Contains(filePath, f.failOn) {
		return "", fmt.Errorf("sign failed for %s", filePath)
	}
	return "https://signed.test/" + filePath, nil
}

func (f *fakeStorage) SaveFile(ctx context.Context, filePath, fileName string, content []byte, overwrite bool) error {
	return nil
}

func (f *fakeStorage) DeleteFile(ctx context.Context, fullFilePath string) error {
	return nil
}

func (f *fakeStorage) BatchDeleteFiles(ctx context.Context, fullFilePaths []string) error {
	return nil
}

func Test_ResolveSignedURLs(t *testing.T) {
	storage := &fakeStorage{}
	paths := []string{"entries/1/1.jpg", "entries/1/2.jpg", "entries/1/3.jpg"}

	urls := v1.ResolveSignedURLs(storage, paths, nil)
	assert.Len(t, urls, 3)
	for i, u := range urls {
		assert.NotNil(t, u)
		assert.Equal(t, "https://signed.test/"+paths[i], *u)
	}
}

func Test_ResolveSignedURLs_PartialFailure(t *testing.T) {
	storage := &fakeStorage{failOn: "2.jpg"}
	paths := []string{"entries/1/1.jpg", "entries/1/2.jpg", "entries/1/3.jpg"}

	var failures int64
	urls := v1.ResolveSignedURLs(storage, paths, func() {
		atomic.AddInt64(&failures, 1)
	})

	assert.Len(t, urls, 3)
	assert.NotNil(t, urls[0])
	assert.Nil(t, urls[1])
	assert.NotNil(t, urls[2])
	assert.Equal(t, int64(1), atomic.LoadInt64(&failures))
}

func Test_ResolveSignedURLs_Empty(t *testing.T) {
	urls := v1.ResolveSignedURLs(&fakeStorage{}, nil, nil)
	assert.Len(t, urls, 0)
}
