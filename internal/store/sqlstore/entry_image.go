package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/memoirlab/memoir-api/pkg/register"
	"github.com/memoirlab/memoir-api/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.EntryImageStore = NewEntryImageStore(provider)
	})
}

type EntryImageStore struct {
	CommonFields
}

// NewEntryImageStore
func NewEntryImageStore(provider SqlProviderAchieve) *EntryImageStore {
	repo := &EntryImageStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_ENTRY_IMAGE)
	repo.SetAllColumns("id", "entry_id", "storage_path", "created_at")
	return repo
}

// BatchCreate inserts one row per image in a single statement, caller order
// is the carousel render order.
func (s *EntryImageStore) BatchCreate(ctx context.Context, images []types.EntryImage) error {
	if len(images) == 0 {
		return nil
	}

	query := sq.Insert(s.GetTable()).Columns("id", "entry_id", "storage_path", "created_at")
	for _, v := range images {
		if v.CreatedAt == 0 {
			v.CreatedAt = time.Now().Unix()
		}
		query = query.Values(v.ID, v.EntryID, v.StoragePath, v.CreatedAt)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	if err != nil {
		return err
	}
	return nil
}

// ListByEntryIDs is a batched lookup for rendering a day's entries. Empty
// input short circuits, an IN () query is invalid.
func (s *EntryImageStore) ListByEntryIDs(ctx context.Context, entryIDs []string) ([]types.EntryImage, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}

	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"entry_id": entryIDs}).
		OrderBy("id ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.EntryImage
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// ListPaths returns the storage paths attached to one entry so the caller
// can remove the matching objects from the bucket.
func (s *EntryImageStore) ListPaths(ctx context.Context, entryID string) ([]string, error) {
	query := sq.Select("storage_path").From(s.GetTable()).Where(sq.Eq{"entry_id": entryID}).OrderBy("id ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []string
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteByEntry
func (s *EntryImageStore) DeleteByEntry(ctx context.Context, entryID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"entry_id": entryID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
