package mocks

import (
	"context"
	"errors"

	kdb "github.com/ahdhani/boilerplate/pkg/db"
)

type CallLog[T any] []T

func (c CallLog[T]) Times() int {
	return len(c)
}

// CrudInterface is a hand-written mock of kdb.CrudInterface.
//
// Set the methods to be called in Impl. Calling a method with nil Impl
// panics, so tests fail loudly on unexpected access. Every call is
// recorded in Calls.
type CrudInterface[E any] struct {
	Impl struct {
		GetOrNull     func(context.Context, int) (*E, error)
		Get           func(context.Context, int) (*E, error)
		Save          func(context.Context, E) (*E, error)
		List          func(context.Context, int, int) ([]E, error)
		ListPaginated func(context.Context, int, int) (kdb.Page[E], error)
		Delete        func(context.Context, int) error
	}
	Calls struct {
		GetOrNull     CallLog[struct{ Id int }]
		Get           CallLog[struct{ Id int }]
		Save          CallLog[struct{ Entity E }]
		List          CallLog[struct{ PageNumber, PageSize int }]
		ListPaginated CallLog[struct{ PageNumber, PageSize int }]
		Delete        CallLog[struct{ Id int }]
	}
}

func NewCrudInterface[E any]() *CrudInterface[E] {
	return &CrudInterface[E]{}
}

var _ kdb.CrudInterface[struct{}] = &CrudInterface[struct{}]{}

func (m *CrudInterface[E]) GetOrNull(ctx context.Context, id int) (*E, error) {
	m.Calls.GetOrNull = append(m.Calls.GetOrNull, struct{ Id int }{Id: id})
	if m.Impl.GetOrNull != nil {
		return m.Impl.GetOrNull(ctx, id)
	}
	panic(errors.New("it should not be called"))
}

func (m *CrudInterface[E]) Get(ctx context.Context, id int) (*E, error) {
	m.Calls.Get = append(m.Calls.Get, struct{ Id int }{Id: id})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}
	panic(errors.New("it should not be called"))
}

func (m *CrudInterface[E]) Save(
	ctx context.Context, entity E, opts ...func(*kdb.SaveOption) *kdb.SaveOption,
) (*E, error) {
	m.Calls.Save = append(m.Calls.Save, struct{ Entity E }{Entity: entity})
	if m.Impl.Save != nil {
		return m.Impl.Save(ctx, entity)
	}
	panic(errors.New("it should not be called"))
}

func (m *CrudInterface[E]) List(ctx context.Context, pageNumber int, pageSize int) ([]E, error) {
	m.Calls.List = append(m.Calls.List, struct{ PageNumber, PageSize int }{
		PageNumber: pageNumber, PageSize: pageSize,
	})
	if m.Impl.List != nil {
		return m.Impl.List(ctx, pageNumber, pageSize)
	}
	panic(errors.New("it should not be called"))
}

func (m *CrudInterface[E]) ListPaginated(
	ctx context.Context, pageNumber int, pageSize int,
) (kdb.Page[E], error) {
	m.Calls.ListPaginated = append(m.Calls.ListPaginated, struct{ PageNumber, PageSize int }{
		PageNumber: pageNumber, PageSize: pageSize,
	})
	if m.Impl.ListPaginated != nil {
		return m.Impl.ListPaginated(ctx, pageNumber, pageSize)
	}
	panic(errors.New("it should not be called"))
}

func (m *CrudInterface[E]) Delete(ctx context.Context, id int) error {
	m.Calls.Delete = append(m.Calls.Delete, struct{ Id int }{Id: id})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, id)
	}
	panic(errors.New("it should not be called"))
}
