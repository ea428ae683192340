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
		provider.stores.OrphanObjectStore = NewOrphanObjectStore(provider)
	})
}

type OrphanObjectStore struct {
	CommonFields
}

// NewOrphanObjectStore
func NewOrphanObjectStore(provider SqlProviderAchieve) *OrphanObjectStore {
	repo := &OrphanObjectStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_ORPHAN_OBJECT)
	repo.SetAllColumns("id", "storage_path", "created_at")
	return repo
}

// Create queues a storage path whose removal failed for a later reconcile
// pass.
func (s *OrphanObjectStore) Create(ctx context.Context, data types.OrphanObject) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns("storage_path", "created_at").
		Values(data.StoragePath, data.CreatedAt)

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

// List
func (s *OrphanObjectStore) List(ctx context.Context, limit uint64) ([]types.OrphanObject, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("id ASC")
	if limit != types.NO_PAGING {
		query = query.Limit(limit)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.OrphanObject
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// Delete
func (s *OrphanObjectStore) Delete(ctx context.Context, id int64) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
