package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/jmoiron/sqlx"

	"github.com/memoirlab/memoir-api/pkg/types"
)

type ConnectConfig struct {
	DSN          string `toml:"dsn"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// Executor is the subset of sqlx shared by *sqlx.DB and *sqlx.Tx, store
// methods run against it so they work inside and outside a transaction.
type Executor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
}

type SqlProvider struct {
	master   *sqlx.DB
	replicas []*sqlx.DB
	rr       uint64
}

func MustSetupProvider(master ConnectConfig, replicas ...ConnectConfig) *SqlProvider {
	p := &SqlProvider{
		master: mustConnect(master),
	}
	for _, cfg := range replicas {
		p.replicas = append(p.replicas, mustConnect(cfg))
	}
	return p
}

func mustConnect(cfg ConnectConfig) *sqlx.DB {
	db, err := sqlx.Connect("postgres", cfg.DSN)
	if err != nil {
		panic(fmt.Errorf("sqlstore connect: %w", err))
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	return db
}

func (p *SqlProvider) GetMaster() *sqlx.DB {
	return p.master
}

func (p *SqlProvider) GetReplica() *sqlx.DB {
	if len(p.replicas) == 0 {
		return p.master
	}
	next := atomic.AddUint64(&p.rr, 1)
	return p.replicas[next%uint64(len(p.replicas))]
}

type txContextKey struct{}

// Transaction runs fn with a master transaction carried in context. Store
// methods pick it up through CommonFields, nested calls join the same tx.
func (p *SqlProvider) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txContextKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := p.master.Beginx()
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err = fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func TxFromContext(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*sqlx.Tx)
	return tx, ok
}

type SqlProviderAchieve interface {
	GetMaster() *sqlx.DB
	GetReplica() *sqlx.DB
}

// CommonFields is embedded by every table store, it resolves the executor
// (tx from context or pooled connection) and holds table metadata.
type CommonFields struct {
	provider   SqlProviderAchieve
	table      string
	allColumns []string
}

func (c *CommonFields) SetProvider(p SqlProviderAchieve) {
	c.provider = p
}

func (c *CommonFields) SetTable(table types.Table) {
	c.table = table.Name()
}

func (c *CommonFields) SetAllColumns(columns ...string) {
	c.allColumns = columns
}

func (c *CommonFields) GetTable() string {
	return c.table
}

func (c *CommonFields) GetAllColumns() []string {
	return c.allColumns
}

func (c *CommonFields) GetMaster(ctx context.Context) Executor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return c.provider.GetMaster()
}

func (c *CommonFields) GetReplica(ctx context.Context) Executor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return c.provider.GetReplica()
}

func ErrorSqlBuild(err error) error {
	return fmt.Errorf("sql build error: %w", err)
}
