// Package crud implements db.CrudInterface once, for every entity.
//
// An entity plugs in by declaring a Table descriptor: its table name,
// column layout and scan/insert mappings. The SQL, the unit-of-work
// handling and the error translation live here and are shared.
package crud

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgconn"
	pgerrcode "github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	kpool "github.com/ahdhani/boilerplate/pkg/conn/db/postgres/pool"
	"github.com/ahdhani/boilerplate/pkg/db"
	kerr "github.com/ahdhani/boilerplate/pkg/domain/errors"
)

// Table binds an entity type to its postgres table.
type Table[E any] struct {
	// table name, quoted into SQL as-is.
	Name string

	// columns selected for E, in the order Scan expects.
	// Server-assigned columns (id, timestamps) included.
	Columns []string

	// Scan reads one row laid out as Columns into an entity.
	Scan func(pgx.Row) (E, error)

	// columns supplied on insert. Server-assigned columns excluded.
	InsertColumns []string

	// InsertArgs lists the values for InsertColumns, in order.
	InsertArgs func(E) []interface{}
}

type crudPG[E any] struct {
	pool  kpool.Pool
	table Table[E]
}

var _ db.CrudInterface[struct{}] = &crudPG[struct{}]{}

func New[E any](pool kpool.Pool, table Table[E]) *crudPG[E] {
	return &crudPG[E]{pool: pool, table: table}
}

// Pages is how many pages of size pageSize hold recordCount records.
//
// 0 when pageSize <= 0. That input never comes from a route
// (query validation rejects it first), so no error is worth raising.
func Pages(recordCount int, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (recordCount + pageSize - 1) / pageSize
}

func (c *crudPG[E]) selectQuery() string {
	return fmt.Sprintf(
		`SELECT %s FROM %q`, quoteJoin(c.table.Columns), c.table.Name,
	)
}

func quoteJoin(columns []string) string {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = `"` + col + `"`
	}
	return strings.Join(quoted, ", ")
}

func placeholders(n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(ph, ", ")
}

func (c *crudPG[E]) GetOrNull(ctx context.Context, id int) (*E, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return c.getOrNull(ctx, conn, id)
}

func (c *crudPG[E]) getOrNull(ctx context.Context, q kpool.Queryer, id int) (*E, error) {
	row := q.QueryRow(
		ctx, c.selectQuery()+` WHERE "id" = $1`, id,
	)
	entity, err := c.table.Scan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (c *crudPG[E]) Get(ctx context.Context, id int) (*E, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return c.get(ctx, conn, id)
}

func (c *crudPG[E]) get(ctx context.Context, q kpool.Queryer, id int) (*E, error) {
	entity, err := c.getOrNull(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, kerr.Missing{
			Table: c.table.Name, Identity: fmt.Sprint(id),
		}
	}
	return entity, nil
}

func (c *crudPG[E]) Save(
	ctx context.Context, entity E, opts ...func(*db.SaveOption) *db.SaveOption,
) (*E, error) {
	option := db.DefaultSaveOption()
	for _, opt := range opts {
		option = *opt(&option)
	}

	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var id int
	if err := tx.QueryRow(
		ctx,
		fmt.Sprintf(
			`INSERT INTO %q (%s) VALUES (%s) RETURNING "id"`,
			c.table.Name,
			quoteJoin(c.table.InsertColumns),
			placeholders(len(c.table.InsertColumns)),
		),
		c.table.InsertArgs(entity)...,
	).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			// rollback happens via defer before this is seen by callers
			return nil, kerr.Conflict{
				Table:  c.table.Name,
				Detail: "A record with these details already exists.",
			}
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if !option.Refresh {
		saved := entity
		return &saved, nil
	}
	return c.get(ctx, conn, id)
}

func (c *crudPG[E]) List(ctx context.Context, pageNumber int, pageSize int) ([]E, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return c.list(ctx, conn, pageNumber, pageSize)
}

func (c *crudPG[E]) list(ctx context.Context, q kpool.Queryer, pageNumber int, pageSize int) ([]E, error) {
	rows, err := q.Query(
		ctx,
		c.selectQuery()+` ORDER BY "id" ASC LIMIT $1 OFFSET $2`,
		pageSize, pageNumber*pageSize,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []E{}
	for rows.Next() {
		entity, err := c.table.Scan(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, entity)
	}
	return records, rows.Err()
}

func (c *crudPG[E]) ListPaginated(
	ctx context.Context, pageNumber int, pageSize int,
) (db.Page[E], error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return db.Page[E]{}, err
	}
	defer conn.Release()

	// records and count come from one transaction,
	// so pageCount is consistent with recordCount.
	tx, err := conn.Begin(ctx)
	if err != nil {
		return db.Page[E]{}, err
	}
	defer tx.Rollback(ctx)

	records, err := c.list(ctx, tx, pageNumber, pageSize)
	if err != nil {
		return db.Page[E]{}, err
	}

	var recordCount int
	if err := tx.QueryRow(
		ctx, fmt.Sprintf(`SELECT count(*) FROM %q`, c.table.Name),
	).Scan(&recordCount); err != nil {
		return db.Page[E]{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return db.Page[E]{}, err
	}

	return db.Page[E]{
		Records:     records,
		RecordCount: recordCount,
		PageCount:   Pages(recordCount, pageSize),
	}, nil
}

func (c *crudPG[E]) Delete(ctx context.Context, id int) error {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// fetch first, so absence surfaces as Missing and not as no-op
	if _, err := c.get(ctx, tx, id); err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx, fmt.Sprintf(`DELETE FROM %q WHERE "id" = $1`, c.table.Name), id,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
