package crud_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	ktestcontext "github.com/ahdhani/boilerplate/internal/testutils/context"
	poolmocks "github.com/ahdhani/boilerplate/pkg/conn/db/postgres/pool/mocks"
	kdb "github.com/ahdhani/boilerplate/pkg/db"
	"github.com/ahdhani/boilerplate/pkg/db/postgres/crud"
	"github.com/ahdhani/boilerplate/pkg/db/postgres/product"
	"github.com/ahdhani/boilerplate/pkg/domain"
	kerr "github.com/ahdhani/boilerplate/pkg/domain/errors"
)

var (
	createdAt = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	updatedAt = time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)
)

// values laid out as product.Table().Columns expects.
func productRow(id int, name string) []interface{} {
	return []interface{}{id, createdAt, updatedAt, name, "about " + name, 1000, 10}
}

func TestCrud_Get(t *testing.T) {
	t.Run("it selects the record by id on an acquired connection", func(t *testing.T) {
		ctx, cancel := ktestcontext.WithTest(context.Background(), t)
		defer cancel()

		pool := poolmocks.NewPool()
		pool.Conn.Impl.QueryRow = func(_ context.Context, sql string, args ...interface{}) pgx.Row {
			return &poolmocks.Row{Values: productRow(42, "Test Product")}
		}

		testee := crud.New(pool, product.Table())

		actual, err := testee.Get(ctx, 42)
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		expected := domain.Product{
			Id: 42, CreatedAt: createdAt, UpdatedAt: updatedAt,
			Name: "Test Product", Description: "about Test Product",
			Price: 1000, Stock: 10,
		}
		if !actual.Equal(expected) {
			t.Errorf("unmatch: (actual, expected) = (%+v, %+v)", *actual, expected)
		}

		{
			calls := pool.Conn.Calls.QueryRow
			if calls.Times() != 1 {
				t.Fatalf("unmatch: queries: %+v", calls)
			}
			if sql := calls[0].Sql; !strings.Contains(sql, `FROM "product"`) ||
				!strings.Contains(sql, `WHERE "id" = $1`) {
				t.Errorf("unexpected sql: %s", sql)
			}
			if len(calls[0].Args) != 1 || calls[0].Args[0] != 42 {
				t.Errorf("unexpected args: %+v", calls[0].Args)
			}
		}
		if pool.Conn.Releases != 1 {
			t.Errorf("connection should be released once: %d", pool.Conn.Releases)
		}
	})

	t.Run("it reports a missing record", func(t *testing.T) {
		ctx, cancel := ktestcontext.WithTest(context.Background(), t)
		defer cancel()

		pool := poolmocks.NewPool()
		pool.Conn.Impl.QueryRow = func(context.Context, string, ...interface{}) pgx.Row {
			return &poolmocks.Row{Err: pgx.ErrNoRows}
		}

		testee := crud.New(pool, product.Table())

		if _, err := testee.Get(ctx, 42); !errors.Is(err, kerr.ErrMissing) {
			t.Errorf("unmatch: error: %+v is not ErrMissing", err)
		}
	})

	t.Run("GetOrNull answers nil for a missing record", func(t *testing.T) {
		ctx, cancel := ktestcontext.WithTest(context.Background(), t)
		defer cancel()

		pool := poolmocks.NewPool()
		pool.Conn.Impl.QueryRow = func(context.Context, string, ...interface{}) pgx.Row {
			return &poolmocks.Row{Err: pgx.ErrNoRows}
		}

		testee := crud.New(pool, product.Table())

		actual, err := testee.GetOrNull(ctx, 42)
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if actual != nil {
			t.Errorf("unexpected entity: %+v", *actual)
		}
	})
}

func TestCrud_Save(t *testing.T) {
	t.Run("it inserts in a transaction and reloads the stored record", func(t *testing.T) {
		ctx, cancel := ktestcontext.WithTest(context.Background(), t)
		defer cancel()

		pool := poolmocks.NewPool()
		pool.Conn.Tx.Impl.QueryRow = func(_ context.Context, sql string, args ...interface{}) pgx.Row {
			return &poolmocks.Row{Values: []interface{}{7}}
		}
		pool.Conn.Impl.QueryRow = func(context.Context, string, ...interface{}) pgx.Row {
			return &poolmocks.Row{Values: productRow(7, "Test Product")}
		}

		testee := crud.New(pool, product.Table())

		saved, err := testee.Save(ctx, domain.Product{
			Name: "Test Product", Description: "about Test Product",
			Price: 1000, Stock: 10,
		})
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if saved.Id != 7 || saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
			t.Errorf("server-assigned fields are not loaded: %+v", *saved)
		}

		{
			calls := pool.Conn.Tx.Calls.QueryRow
			if calls.Times() != 1 {
				t.Fatalf("unmatch: insert queries: %+v", calls)
			}
			sql := calls[0].Sql
			if !strings.Contains(sql, `INSERT INTO "product"`) ||
				!strings.Contains(sql, `("name", "description", "price", "stock")`) ||
				!strings.Contains(sql, `RETURNING "id"`) {
				t.Errorf("unexpected sql: %s", sql)
			}
			expectedArgs := []interface{}{"Test Product", "about Test Product", 1000, 10}
			if len(calls[0].Args) != len(expectedArgs) {
				t.Fatalf("unexpected args: %+v", calls[0].Args)
			}
			for i, a := range expectedArgs {
				if calls[0].Args[i] != a {
					t.Errorf("unexpected args: %+v", calls[0].Args)
					break
				}
			}
		}
		if pool.Conn.Tx.Commits != 1 {
			t.Errorf("transaction should be committed once: %d", pool.Conn.Tx.Commits)
		}
		// the reload runs on the connection, after commit
		if pool.Conn.Calls.QueryRow.Times() != 1 {
			t.Errorf("unmatch: reload queries: %+v", pool.Conn.Calls.QueryRow)
		}
	})

	t.Run("it skips the reload when refresh is suppressed", func(t *testing.T) {
		ctx, cancel := ktestcontext.WithTest(context.Background(), t)
		defer cancel()

		pool := poolmocks.NewPool()
		pool.Conn.Tx.Impl.QueryRow = func(context.Context, string, ...interface{}) pgx.Row {
			return &poolmocks.Row{Values: []interface{}{7}}
		}

		testee := crud.New(pool, product.Table())

		saved, err := testee.Save(
			ctx, domain.Product{Name: "Test Product"}, kdb.WithoutRefresh(),
		)
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if saved.CreatedAt != (time.Time{}) {
			t.Errorf("entity should not be reloaded: %+v", *saved)
		}
		if pool.Conn.Calls.QueryRow.Times() != 0 {
			t.Errorf("unexpected reload: %+v", pool.Conn.Calls.QueryRow)
		}
	})

	t.Run("it translates a unique violation into Conflict", func(t *testing.T) {
		ctx, cancel := ktestcontext.WithTest(context.Background(), t)
		defer cancel()

		pool := poolmocks.NewPool()
		pool.Conn.Tx.Impl.QueryRow = func(context.Context, string, ...interface{}) pgx.Row {
			return &poolmocks.Row{Err: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "product_name_key",
			}}
		}

		testee := crud.New(pool, product.Table())

		_, err := testee.Save(ctx, domain.Product{Name: "Test Product"})
		if !errors.Is(err, kerr.ErrConflict) {
			t.Fatalf("unmatch: error: %+v is not ErrConflict", err)
		}
		if pool.Conn.Tx.Commits != 0 {
			t.Error("transaction should not be committed")
		}
		if pool.Conn.Tx.Rollbacks == 0 {
			t.Error("transaction should be rolled back")
		}
	})

	t.Run("it propagates other store errors untranslated", func(t *testing.T) {
		ctx, cancel := ktestcontext.WithTest(context.Background(), t)
		defer cancel()

		wantErr := errors.New("dummy error")
		pool := poolmocks.NewPool()
		pool.Conn.Tx.Impl.QueryRow = func(context.Context, string, ...interface{}) pgx.Row {
			return &poolmocks.Row{Err: wantErr}
		}

		testee := crud.New(pool, product.Table())

		if _, err := testee.Save(ctx, domain.Product{Name: "Test Product"}); !errors.Is(err, wantErr) {
			t.Errorf("unmatch: error: %+v is not %+v", err, wantErr)
		}
	})
}

func TestCrud_ListPaginated(t *testing.T) {
	t.Run("it selects one page and the total count in one transaction", func(t *testing.T) {
		ctx, cancel := ktestcontext.WithTest(context.Background(), t)
		defer cancel()

		pool := poolmocks.NewPool()
		pool.Conn.Tx.Impl.Query = func(_ context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
			return &poolmocks.Rows{Data: [][]interface{}{
				productRow(11, "product-11"),
				productRow(12, "product-12"),
			}}, nil
		}
		pool.Conn.Tx.Impl.QueryRow = func(_ context.Context, sql string, args ...interface{}) pgx.Row {
			return &poolmocks.Row{Values: []interface{}{12}}
		}

		testee := crud.New(pool, product.Table())

		page, err := testee.ListPaginated(ctx, 2, 5)
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if len(page.Records) != 2 || page.Records[0].Id != 11 || page.Records[1].Id != 12 {
			t.Errorf("unmatch: records: %+v", page.Records)
		}
		if page.RecordCount != 12 || page.PageCount != 3 {
			t.Errorf("unmatch: pagination: %+v", page)
		}

		{
			calls := pool.Conn.Tx.Calls.Query
			if calls.Times() != 1 {
				t.Fatalf("unmatch: list queries: %+v", calls)
			}
			if sql := calls[0].Sql; !strings.Contains(sql, `ORDER BY "id" ASC LIMIT $1 OFFSET $2`) {
				t.Errorf("unexpected sql: %s", sql)
			}
			if a := calls[0].Args; len(a) != 2 || a[0] != 5 || a[1] != 10 {
				t.Errorf("unexpected args: %+v", calls[0].Args)
			}
		}
		{
			calls := pool.Conn.Tx.Calls.QueryRow
			if calls.Times() != 1 || !strings.Contains(calls[0].Sql, `count(*)`) {
				t.Errorf("unmatch: count queries: %+v", calls)
			}
		}
		if pool.Conn.Tx.Commits != 1 {
			t.Errorf("transaction should be committed once: %d", pool.Conn.Tx.Commits)
		}
	})
}

func TestCrud_Delete(t *testing.T) {
	t.Run("it deletes an existing record in a transaction", func(t *testing.T) {
		ctx, cancel := ktestcontext.WithTest(context.Background(), t)
		defer cancel()

		pool := poolmocks.NewPool()
		pool.Conn.Tx.Impl.QueryRow = func(context.Context, string, ...interface{}) pgx.Row {
			return &poolmocks.Row{Values: productRow(42, "Test Product")}
		}
		pool.Conn.Tx.Impl.Exec = func(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
			return pgconn.CommandTag("DELETE 1"), nil
		}

		testee := crud.New(pool, product.Table())

		if err := testee.Delete(ctx, 42); err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}

		calls := pool.Conn.Tx.Calls.Exec
		if calls.Times() != 1 {
			t.Fatalf("unmatch: delete queries: %+v", calls)
		}
		if sql := calls[0].Sql; !strings.Contains(sql, `DELETE FROM "product" WHERE "id" = $1`) {
			t.Errorf("unexpected sql: %s", sql)
		}
		if a := calls[0].Args; len(a) != 1 || a[0] != 42 {
			t.Errorf("unexpected args: %+v", calls[0].Args)
		}
		if pool.Conn.Tx.Commits != 1 {
			t.Errorf("transaction should be committed once: %d", pool.Conn.Tx.Commits)
		}
	})

	t.Run("it reports a missing record without touching rows", func(t *testing.T) {
		ctx, cancel := ktestcontext.WithTest(context.Background(), t)
		defer cancel()

		pool := poolmocks.NewPool()
		pool.Conn.Tx.Impl.QueryRow = func(context.Context, string, ...interface{}) pgx.Row {
			return &poolmocks.Row{Err: pgx.ErrNoRows}
		}

		testee := crud.New(pool, product.Table())

		if err := testee.Delete(ctx, 42); !errors.Is(err, kerr.ErrMissing) {
			t.Errorf("unmatch: error: %+v is not ErrMissing", err)
		}
		if pool.Conn.Tx.Calls.Exec.Times() != 0 {
			t.Error("no row should be deleted")
		}
		if pool.Conn.Tx.Commits != 0 {
			t.Error("transaction should not be committed")
		}
	})
}
