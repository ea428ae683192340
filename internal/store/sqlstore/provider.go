package sqlstore

import (
	"context"
	"embed"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/memoirlab/memoir-api/internal/store"
	"github.com/memoirlab/memoir-api/pkg/register"
	"github.com/memoirlab/memoir-api/pkg/sqlstore"
)

func init() {
	sq.StatementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

type CommonFields = sqlstore.CommonFields

type SqlProviderAchieve = sqlstore.SqlProviderAchieve

var ErrorSqlBuild = sqlstore.ErrorSqlBuild

var provider = &Provider{
	stores: &Stores{},
}

func GetProvider() *Provider {
	return provider
}

type Provider struct {
	*sqlstore.SqlProvider
	stores *Stores
}

type Stores struct {
	store.EntryStore
	store.EntryImageStore
	store.UserStore
	store.AccessTokenStore
	store.FileManagementStore
	store.OrphanObjectStore
}

type RegisterKey struct{}

func MustSetup(m sqlstore.ConnectConfig, s ...sqlstore.ConnectConfig) func() *Provider {
	provider.SqlProvider = sqlstore.MustSetupProvider(m, s...)

	for _, f := range register.ResolveFuncHandlers[*Provider](RegisterKey{}) {
		f(provider)
	}

	return func() *Provider {
		return provider
	}
}

//go:embed migrations/*.sql
var CreateTableFiles embed.FS

func (p *Provider) Install() error {
	for _, tableFile := range []string{
		"entries.sql",
		"entry_images.sql",
		"user.sql",
		"access_token.sql",
		"file_management.sql",
		"orphan_object.sql",
	} {
		sql, err := CreateTableFiles.ReadFile("migrations/" + tableFile)
		if err != nil {
			panic(err)
		}

		if _, err = p.GetMaster().Exec(string(sql)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return p.SqlProvider.Transaction(ctx, fn)
}

func (p *Provider) EntryStore() store.EntryStore {
	return p.stores.EntryStore
}

func (p *Provider) EntryImageStore() store.EntryImageStore {
	return p.stores.EntryImageStore
}

func (p *Provider) UserStore() store.UserStore {
	return p.stores.UserStore
}

func (p *Provider) AccessTokenStore() store.AccessTokenStore {
	return p.stores.AccessTokenStore
}

func (p *Provider) FileManagementStore() store.FileManagementStore {
	return p.stores.FileManagementStore
}

func (p *Provider) OrphanObjectStore() store.OrphanObjectStore {
	return p.stores.OrphanObjectStore
}
