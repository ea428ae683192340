package v1_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/memoirlab/memoir-api/internal/core"
	v1 "github.com/memoirlab/memoir-api/internal/logic/v1"
	"github.com/memoirlab/memoir-api/internal/plugins"
	"github.com/memoirlab/memoir-api/pkg/security"
	"github.com/memoirlab/memoir-api/pkg/types"
)

var (
	testCore     *core.Core
	testCoreOnce sync.Once
)

func setupCore(t *testing.T) *core.Core {
	dsn := os.Getenv("TEST_MEMOIR_PG_DSN")
	if dsn == "" {
		t.Skip("TEST_MEMOIR_PG_DSN not set")
	}
	os.Setenv("MEMOIR_API_POSTGRESQL_DSN", dsn)
	testCoreOnce.Do(func() {
		testCore = core.MustSetupCore(core.LoadBaseConfigFromENV())
		plugins.Setup(testCore.InstallPlugins, "selfhost")
	})
	return testCore
}

func testCtx(userID string) context.Context {
	return context.WithValue(context.Background(), v1.TOKEN_CONTEXT_KEY, security.TokenClaims{
		User:    userID,
		Appid:   "test",
		AppName: "memoir",
	})
}

func TestEntryLifecycle(t *testing.T) {
	core := setupCore(t)
	logic := v1.NewEntryLogic(testCtx("test-user"), core)

	paths := []string{
		"test-user/1717200000000-aaaaaaaa.jpg",
		"test-user/1717200000001-bbbbbbbb.jpg",
		"test-user/1717200000002-cccccccc.jpg",
	}

	detail, err := logic.CreateEntry(v1.CreateEntryArgs{
		Type:       types.ENTRY_TYPE_QUOTE,
		Text:       "the days are long but the years are short",
		HappenedOn: "2025-06-01",
	}, v1.NewClientMediatedUpload(core, paths))
	if err != nil {
		t.Fatal(err)
	}
	assert.NotEmpty(t, detail.ID)
	assert.Len(t, detail.Images, 3)

	list, err := logic.ListEntriesForDate("2025-06-01")
	if err != nil {
		t.Fatal(err)
	}
	assert.NotEmpty(t, list)
	// the date must read back exactly as stored, not as a timestamp
	assert.Equal(t, "2025-06-01", list[0].HappenedOn)

	// images come back in the order they were submitted
	assert.Len(t, list[0].Images, 3)
	for i, img := range list[0].Images {
		assert.Equal(t, paths[i], img.StoragePath)
	}

	dates, err := logic.CalendarMarks()
	if err != nil {
		t.Fatal(err)
	}
	assert.Contains(t, dates, "2025-06-01")

	updated, err := logic.UpdateEntryText(detail.ID, "the years are short")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "the years are short", *updated.Text)
	assert.Equal(t, "2025-06-01", updated.HappenedOn)

	if err := logic.DeleteEntry(detail.ID); err != nil {
		t.Fatal(err)
	}

	images, err := core.Store().EntryImageStore().ListByEntryIDs(context.Background(), []string{detail.ID})
	if err != nil {
		t.Fatal(err)
	}
	assert.Empty(t, images)

	_, err = logic.UpdateEntryText(detail.ID, "gone")
	assert.NotNil(t, err)
}

func TestEntryOwnership(t *testing.T) {
	core := setupCore(t)

	owner := v1.NewEntryLogic(testCtx("owner-user"), core)
	detail, err := owner.CreateEntry(v1.CreateEntryArgs{
		Type:       types.ENTRY_TYPE_PHOTO,
		HappenedOn: "2025-06-02",
	}, v1.NewClientMediatedUpload(core, nil))
	if err != nil {
		t.Fatal(err)
	}
	defer owner.DeleteEntry(detail.ID)

	other := v1.NewEntryLogic(testCtx("other-user"), core)
	err = other.DeleteEntry(detail.ID)
	assert.NotNil(t, err)

	_, err = other.UpdateEntryText(detail.ID, "not yours")
	assert.NotNil(t, err)
}
