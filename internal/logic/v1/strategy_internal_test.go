package v1

import (
	"context"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/memoirlab/memoir-api/pkg/errors"
	"github.com/memoirlab/memoir-api/pkg/types"
)

func Test_BuildEntryImagePath(t *testing.T) {
	dir, file := BuildEntryImagePath("8817123", 1, "sunset.JPG")
	assert.Equal(t, "entries/8817123", dir)
	assert.Equal(t, "1.jpg", file)

	dir, file = BuildEntryImagePath("8817123", 3, "noext")
	assert.Equal(t, "entries/8817123", dir)
	assert.Equal(t, "3.bin", file)
}

func Test_genClientFileName(t *testing.T) {
	name := genClientFileName("holiday photo.PNG")
	assert.Regexp(t, regexp.MustCompile(`^\d+-[0-9a-zA-Z]{8}\.png$`), name)

	a := genClientFileName("a.png")
	b := genClientFileName("a.png")
	assert.NotEqual(t, a, b)
}

func Test_ClientMediatedUpload_RejectsForeignPath(t *testing.T) {
	entry := types.Entry{ID: "e1", UserID: "owner"}

	s := NewClientMediatedUpload(nil, []string{"other-user/171234-abc.jpg"})
	_, err := s.Attach(context.Background(), entry)
	assert.NotNil(t, err)

	e, ok := err.(*errors.Error)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, e.StatusCode())

	s = NewClientMediatedUpload(nil, []string{"owner/1.jpg", "../owner/1.jpg"})
	_, err = s.Attach(context.Background(), entry)
	assert.NotNil(t, err)
}

func Test_IsSupportedImage(t *testing.T) {
	assert.True(t, IsSupportedImage("a.JPG"))
	assert.True(t, IsSupportedImage("b.webp"))
	assert.False(t, IsSupportedImage("c.exe"))
	assert.False(t, IsSupportedImage("noext"))
}

func Test_validateCreateArgs(t *testing.T) {
	l := &EntryLogic{}

	err := l.validateCreateArgs(CreateEntryArgs{
		Type:       types.ENTRY_TYPE_PHOTO,
		HappenedOn: "2025-06-01",
	})
	assert.Nil(t, err)

	err = l.validateCreateArgs(CreateEntryArgs{
		Type:       "video",
		HappenedOn: "2025-06-01",
	})
	assert.NotNil(t, err)

	err = l.validateCreateArgs(CreateEntryArgs{
		Type:       types.ENTRY_TYPE_QUOTE,
		Text:       "   ",
		HappenedOn: "2025-06-01",
	})
	assert.NotNil(t, err)

	err = l.validateCreateArgs(CreateEntryArgs{
		Type:       types.ENTRY_TYPE_PHOTO,
		HappenedOn: "06/01/2025",
	})
	assert.NotNil(t, err)
}
