package s3

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testClient(t *testing.T) *S3 {
	if os.Getenv("TEST_MEMOIR_S3_ENDPOINT") == "" {
		t.Skip("TEST_MEMOIR_S3_ENDPOINT not set")
	}
	return NewS3Client(os.Getenv("TEST_MEMOIR_S3_ENDPOINT"), os.Getenv("TEST_MEMOIR_S3_REGION"), os.Getenv("TEST_MEMOIR_S3_BUCKET"), os.Getenv("TEST_MEMOIR_S3_ACCESS_KEY"), os.Getenv("TEST_MEMOIR_S3_SECRET_KEY"))
}

func Test_UploadKey(t *testing.T) {
	s3 := testClient(t)

	resp, err := s3.GenClientUploadKey("test", "aaa.png")
	if err != nil {
		t.Fatal(err)
	}

	t.Log(resp)
}

func Test_GenGetPreSignKey(t *testing.T) {
	s3 := testClient(t)

	if err := s3.Upload(context.Background(), "entries/test", "1.png", bytes.NewReader([]byte("png")), true); err != nil {
		t.Fatal(err)
	}

	resp, err := s3.GenGetObjectPreSignURL("entries/test/1.png", time.Hour*24)
	if err != nil {
		t.Fatal(err)
	}

	t.Log(resp)
}

// a path with no object behind it must error, not produce a url that 404s
func Test_GenGetPreSignKey_MissingObject(t *testing.T) {
	s3 := testClient(t)

	_, err := s3.GenGetObjectPreSignURL("entries/test/never-uploaded.png", time.Hour*24)
	assert.NotNil(t, err)
}
