package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	kpool "github.com/ahdhani/boilerplate/pkg/conn/db/postgres/pool"
	kdb "github.com/ahdhani/boilerplate/pkg/db"
	kpgproduct "github.com/ahdhani/boilerplate/pkg/db/postgres/product"
	kpgschema "github.com/ahdhani/boilerplate/pkg/db/postgres/schema"
	"github.com/ahdhani/boilerplate/pkg/domain"
)

type dbPostgres struct {
	pool    *pgxpool.Pool
	product kdb.CrudInterface[domain.Product]
	schema  kdb.SchemaInterface
}

type Config struct {
	SchemaRepository string
}

func DefaultConfig() Config {
	return Config{}
}

type Option func(*Config) *Config

func WithSchemaRepository(repository string) Option {
	return func(c *Config) *Config {
		c.SchemaRepository = repository
		return c
	}
}

func New(
	ctx context.Context,
	url string,
	options ...Option,
) (kdb.Database, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	for _, option := range options {
		c = *option(&c)
	}

	p := kpool.Wrap(pool)
	var schema kdb.SchemaInterface = kpgschema.Null()
	if c.SchemaRepository != "" {
		schema = kpgschema.New(p, c.SchemaRepository)
	}

	return &dbPostgres{
		pool:    pool,
		product: kpgproduct.New(p),
		schema:  schema,
	}, nil
}

func (d *dbPostgres) Product() kdb.CrudInterface[domain.Product] {
	return d.product
}

func (d *dbPostgres) Schema() kdb.SchemaInterface {
	return d.schema
}

func (d *dbPostgres) Close() error {
	d.pool.Close()
	return nil
}
