// Package service is the application layer between route handlers and
// data access. It owns construction of transient entities from validated
// payloads; persistence stays in pkg/db. Cross-field validation or
// multi-step orchestration, when it appears, belongs here too.
package service

import (
	"context"

	kdb "github.com/ahdhani/boilerplate/pkg/db"
)

// Service orchestrates CRUD for one entity type E created from
// payload type In.
type Service[E any, In any] struct {
	repo  kdb.CrudInterface[E]
	build func(In) E
}

// New returns a Service delegating persistence to repo.
//
// build maps a validated input payload onto a new transient entity;
// server-assigned fields are left zero for the store to fill.
func New[E any, In any](repo kdb.CrudInterface[E], build func(In) E) *Service[E, In] {
	return &Service[E, In]{repo: repo, build: build}
}

func (s *Service[E, In]) Create(ctx context.Context, payload In) (*E, error) {
	return s.repo.Save(ctx, s.build(payload))
}

func (s *Service[E, In]) Get(ctx context.Context, id int) (*E, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service[E, In]) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service[E, In]) ListPaginated(
	ctx context.Context, pageNumber int, pageSize int,
) (kdb.Page[E], error) {
	return s.repo.ListPaginated(ctx, pageNumber, pageSize)
}
