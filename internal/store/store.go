package store

import (
	"context"

	"github.com/memoirlab/memoir-api/pkg/types"
)

type EntryStore interface {
	Create(ctx context.Context, data types.Entry) error
	GetEntry(ctx context.Context, userID, id string) (*types.Entry, error)
	ListByDate(ctx context.Context, userID, date string) ([]types.Entry, error)
	ListDates(ctx context.Context, userID string) ([]string, error)
	UpdateText(ctx context.Context, id, text string) error
	Delete(ctx context.Context, id string) error
}

type EntryImageStore interface {
	BatchCreate(ctx context.Context, images []types.EntryImage) error
	ListByEntryIDs(ctx context.Context, entryIDs []string) ([]types.EntryImage, error)
	ListPaths(ctx context.Context, entryID string) ([]string, error)
	DeleteByEntry(ctx context.Context, entryID string) error
}

type UserStore interface {
	Create(ctx context.Context, data types.User) error
	GetUser(ctx context.Context, appid, id string) (*types.User, error)
	GetByEmail(ctx context.Context, appid, email string) (*types.User, error)
}

type AccessTokenStore interface {
	Create(ctx context.Context, data types.AccessToken) error
	GetAccessToken(ctx context.Context, appid, token string) (*types.AccessToken, error)
	Total(ctx context.Context) (int64, error)
}

type FileManagementStore interface {
	Create(ctx context.Context, data types.FileManagement) error
	DeleteByFile(ctx context.Context, file string) error
}

type OrphanObjectStore interface {
	Create(ctx context.Context, data types.OrphanObject) error
	List(ctx context.Context, limit uint64) ([]types.OrphanObject, error)
	Delete(ctx context.Context, id int64) error
}
