// Package mocks holds hand-written in-memory stand-ins for the pool
// interfaces, for tests of query-building code.
package mocks

import (
	"context"
	"errors"
	"reflect"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgproto3/v2"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	kpool "github.com/ahdhani/boilerplate/pkg/conn/db/postgres/pool"
)

type CallLog[T any] []T

func (c CallLog[T]) Times() int {
	return len(c)
}

// QueryCall records one query sent through a mock Queryer.
type QueryCall struct {
	Sql  string
	Args []interface{}
}

// Row is a canned pgx.Row.
//
// Scan assigns Values positionally into the destinations, or returns
// Err when set. Use Err = pgx.ErrNoRows for an empty result.
type Row struct {
	Values []interface{}
	Err    error
}

var _ pgx.Row = &Row{}

func (r *Row) Scan(dest ...interface{}) error {
	if r.Err != nil {
		return r.Err
	}
	return assign(r.Values, dest)
}

// Rows is a canned pgx.Rows over fixed per-row value tuples.
type Rows struct {
	Data [][]interface{}

	cursor int
	closed bool
}

var _ pgx.Rows = &Rows{}

func (r *Rows) Next() bool {
	if r.closed || len(r.Data) <= r.cursor {
		return false
	}
	r.cursor += 1
	return true
}

func (r *Rows) Scan(dest ...interface{}) error {
	if r.cursor == 0 || len(r.Data) < r.cursor {
		return errors.New("Scan without Next")
	}
	return assign(r.Data[r.cursor-1], dest)
}

func (r *Rows) Close()                        { r.closed = true }
func (r *Rows) Err() error                    { return nil }
func (r *Rows) CommandTag() pgconn.CommandTag { return nil }

func (r *Rows) FieldDescriptions() []pgproto3.FieldDescription { return nil }

func (r *Rows) Values() ([]interface{}, error) { return nil, errors.New("not supported") }
func (r *Rows) RawValues() [][]byte            { return nil }

func assign(values []interface{}, dest []interface{}) error {
	if len(values) != len(dest) {
		return errors.New("column count mismatch")
	}
	for i, v := range values {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

// Queryer is a mock of kpool.Queryer.
//
// Set the methods to be called in Impl. Calling a method with nil Impl
// panics, so tests fail loudly on unexpected queries. Every query is
// recorded in Calls.
type Queryer struct {
	Impl struct {
		Exec     func(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
		Query    func(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
		QueryRow func(ctx context.Context, sql string, args ...interface{}) pgx.Row
	}
	Calls struct {
		Exec     CallLog[QueryCall]
		Query    CallLog[QueryCall]
		QueryRow CallLog[QueryCall]
	}
}

var _ kpool.Queryer = &Queryer{}

func (m *Queryer) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	m.Calls.Exec = append(m.Calls.Exec, QueryCall{Sql: sql, Args: args})
	if m.Impl.Exec != nil {
		return m.Impl.Exec(ctx, sql, args...)
	}
	panic(errors.New("it should not be called"))
}

func (m *Queryer) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	m.Calls.Query = append(m.Calls.Query, QueryCall{Sql: sql, Args: args})
	if m.Impl.Query != nil {
		return m.Impl.Query(ctx, sql, args...)
	}
	panic(errors.New("it should not be called"))
}

func (m *Queryer) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	m.Calls.QueryRow = append(m.Calls.QueryRow, QueryCall{Sql: sql, Args: args})
	if m.Impl.QueryRow != nil {
		return m.Impl.QueryRow(ctx, sql, args...)
	}
	panic(errors.New("it should not be called"))
}

// Tx is a mock of kpool.Tx. Commit and Rollback always succeed and
// are counted; the teardown rollback after a commit is the normal
// unit-of-work shape, so tests assert on the counts.
type Tx struct {
	Queryer

	Commits   int
	Rollbacks int
}

var _ kpool.Tx = &Tx{}

func (m *Tx) Commit(context.Context) error {
	m.Commits += 1
	return nil
}

func (m *Tx) Rollback(context.Context) error {
	m.Rollbacks += 1
	return nil
}

// Conn is a mock of kpool.Conn handing out one mock Tx.
type Conn struct {
	Queryer

	Tx       Tx
	Begins   int
	Releases int
}

var _ kpool.Conn = &Conn{}

func (m *Conn) Begin(context.Context) (kpool.Tx, error) {
	m.Begins += 1
	return &m.Tx, nil
}

func (m *Conn) Release() {
	m.Releases += 1
}

func (m *Conn) Ping(context.Context) error {
	return nil
}

// Pool is a mock of kpool.Pool handing out one mock Conn.
type Pool struct {
	Conn     Conn
	Acquires int
}

var _ kpool.Pool = &Pool{}

func NewPool() *Pool {
	return &Pool{}
}

func (m *Pool) Acquire(context.Context) (kpool.Conn, error) {
	m.Acquires += 1
	return &m.Conn, nil
}

func (m *Pool) Begin(context.Context) (kpool.Tx, error) {
	return m.Conn.Begin(context.Background())
}

func (m *Pool) Config() *pgxpool.Config {
	return nil
}

func (m *Pool) Ping(context.Context) error {
	return nil
}
