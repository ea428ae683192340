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
		provider.stores.FileManagementStore = NewFileManagementStore(provider)
	})
}

type FileManagementStore struct {
	CommonFields
}

// NewFileManagementStore
func NewFileManagementStore(provider SqlProviderAchieve) *FileManagementStore {
	repo := &FileManagementStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_FILE_MANAGEMENT)
	repo.SetAllColumns("id", "user_id", "file", "created_at")
	return repo
}

// Create records an issued upload key.
func (s *FileManagementStore) Create(ctx context.Context, data types.FileManagement) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns("user_id", "file", "created_at").
		Values(data.UserID, data.File, data.CreatedAt)

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

// DeleteByFile clears the record once the file got attached to an entry.
func (s *FileManagementStore) DeleteByFile(ctx context.Context, file string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"file": file})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
