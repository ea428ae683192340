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
		provider.stores.EntryStore = NewEntryStore(provider)
	})
}

type EntryStore struct {
	CommonFields
}

// NewEntryStore
func NewEntryStore(provider SqlProviderAchieve) *EntryStore {
	repo := &EntryStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_ENTRY)
	repo.SetAllColumns("id", "user_id", "type", "text", "happened_on", "created_at")
	return repo
}

// selectColumns reads happened_on back as text. The column is a DATE, read
// raw it scans into the string field as an RFC3339 timestamp.
func (s *EntryStore) selectColumns() []string {
	return []string{"id", "user_id", "type", "text", "to_char(happened_on, 'YYYY-MM-DD') AS happened_on", "created_at"}
}

// Create inserts one entry row. The row must be committed before any image
// row referencing it is written.
func (s *EntryStore) Create(ctx context.Context, data types.Entry) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns("id", "user_id", "type", "text", "happened_on", "created_at").
		Values(data.ID, data.UserID, data.Type, data.Text, data.HappenedOn, data.CreatedAt)

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

// GetEntry
func (s *EntryStore) GetEntry(ctx context.Context, userID, id string) (*types.Entry, error) {
	query := sq.Select(s.selectColumns()...).From(s.GetTable()).Where(sq.Eq{"user_id": userID, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Entry
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListByDate returns one day's entries, most recent first.
func (s *EntryStore) ListByDate(ctx context.Context, userID, date string) ([]types.Entry, error) {
	query := sq.Select(s.selectColumns()...).From(s.GetTable()).
		Where(sq.Eq{"user_id": userID, "happened_on": date}).
		OrderBy("created_at DESC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Entry
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// ListDates returns the distinct dates that have at least one entry, used to
// mark the calendar.
func (s *EntryStore) ListDates(ctx context.Context, userID string) ([]string, error) {
	query := sq.Select("DISTINCT to_char(happened_on, 'YYYY-MM-DD') AS happened_on").From(s.GetTable()).Where(sq.Eq{"user_id": userID})

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

// UpdateText patches the text column only, other fields are immutable after
// creation.
func (s *EntryStore) UpdateText(ctx context.Context, id, text string) error {
	query := sq.Update(s.GetTable()).
		Set("text", text).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// Delete
func (s *EntryStore) Delete(ctx context.Context, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
