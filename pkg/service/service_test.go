package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ahdhani/boilerplate/pkg/api/types/products"
	kdb "github.com/ahdhani/boilerplate/pkg/db"
	"github.com/ahdhani/boilerplate/pkg/db/mocks"
	"github.com/ahdhani/boilerplate/pkg/domain"
	kerr "github.com/ahdhani/boilerplate/pkg/domain/errors"
	"github.com/ahdhani/boilerplate/pkg/service"
	ktestcontext "github.com/ahdhani/boilerplate/internal/testutils/context"
)

func TestService_Create(t *testing.T) {
	t.Run("it builds a transient entity from the payload and saves it", func(t *testing.T) {
		ctx, cancel := ktestcontext.WithTest(context.Background(), t)
		defer cancel()

		mockRepo := mocks.NewCrudInterface[domain.Product]()
		mockRepo.Impl.Save = func(_ context.Context, entity domain.Product) (*domain.Product, error) {
			saved := entity
			saved.Id = 7
			return &saved, nil
		}

		testee := service.NewProduct(mockRepo)

		created, err := testee.Create(ctx, products.Spec{
			Name:        "Test Product",
			Description: "A product to be tested",
			Price:       1000,
			Stock:       10,
		})
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if created.Id != 7 {
			t.Errorf("unmatch: id: %d != 7", created.Id)
		}

		if mockRepo.Calls.Save.Times() != 1 {
			t.Fatalf("unmatch: Save calls: %+v", mockRepo.Calls.Save)
		}
		saved := mockRepo.Calls.Save[0].Entity
		expected := domain.Product{
			Name:        "Test Product",
			Description: "A product to be tested",
			Price:       1000,
			Stock:       10,
		}
		if !saved.Equal(expected) {
			t.Errorf("unmatch: entity to be saved: (actual, expected) = (%+v, %+v)", saved, expected)
		}
	})

	t.Run("it propagates conflicts from the store", func(t *testing.T) {
		ctx, cancel := ktestcontext.WithTest(context.Background(), t)
		defer cancel()

		mockRepo := mocks.NewCrudInterface[domain.Product]()
		mockRepo.Impl.Save = func(context.Context, domain.Product) (*domain.Product, error) {
			return nil, kerr.Conflict{Table: "product", Detail: "A record with these details already exists."}
		}

		testee := service.NewProduct(mockRepo)

		if _, err := testee.Create(ctx, products.Spec{Name: "Test Product"}); !errors.Is(err, kerr.ErrConflict) {
			t.Errorf("unmatch: error: %+v is not ErrConflict", err)
		}
	})
}

func TestService_Get(t *testing.T) {
	t.Run("it delegates to the repository", func(t *testing.T) {
		ctx, cancel := ktestcontext.WithTest(context.Background(), t)
		defer cancel()

		expected := domain.Product{Id: 42, Name: "Test Product"}
		mockRepo := mocks.NewCrudInterface[domain.Product]()
		mockRepo.Impl.Get = func(_ context.Context, id int) (*domain.Product, error) {
			return &expected, nil
		}

		testee := service.NewProduct(mockRepo)

		actual, err := testee.Get(ctx, 42)
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if !actual.Equal(expected) {
			t.Errorf("unmatch: (actual, expected) = (%+v, %+v)", *actual, expected)
		}
		if calls := mockRepo.Calls.Get; calls.Times() != 1 || calls[0].Id != 42 {
			t.Errorf("unmatch: query for Get: %+v", calls)
		}
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("it delegates to the repository", func(t *testing.T) {
		ctx, cancel := ktestcontext.WithTest(context.Background(), t)
		defer cancel()

		mockRepo := mocks.NewCrudInterface[domain.Product]()
		mockRepo.Impl.Delete = func(context.Context, int) error {
			return kerr.Missing{Table: "product", Identity: "42"}
		}

		testee := service.NewProduct(mockRepo)

		if err := testee.Delete(ctx, 42); !errors.Is(err, kerr.ErrMissing) {
			t.Errorf("unmatch: error: %+v is not ErrMissing", err)
		}
		if calls := mockRepo.Calls.Delete; calls.Times() != 1 || calls[0].Id != 42 {
			t.Errorf("unmatch: query for Delete: %+v", calls)
		}
	})
}

func TestService_ListPaginated(t *testing.T) {
	t.Run("it delegates the page selection to the repository", func(t *testing.T) {
		ctx, cancel := ktestcontext.WithTest(context.Background(), t)
		defer cancel()

		mockRepo := mocks.NewCrudInterface[domain.Product]()
		mockRepo.Impl.ListPaginated = func(_ context.Context, pageNumber int, pageSize int) (kdb.Page[domain.Product], error) {
			return kdb.Page[domain.Product]{
				Records:     []domain.Product{{Id: 11}},
				RecordCount: 11,
				PageCount:   3,
			}, nil
		}

		testee := service.NewProduct(mockRepo)

		page, err := testee.ListPaginated(ctx, 2, 5)
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if page.RecordCount != 11 || page.PageCount != 3 || len(page.Records) != 1 {
			t.Errorf("unmatch: page: %+v", page)
		}

		calls := mockRepo.Calls.ListPaginated
		if calls.Times() != 1 || calls[0].PageNumber != 2 || calls[0].PageSize != 5 {
			t.Errorf("unmatch: query for ListPaginated: %+v", calls)
		}
	})
}
