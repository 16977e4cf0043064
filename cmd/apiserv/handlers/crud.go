package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apierr "github.com/ahdhani/boilerplate/pkg/api/types/errors"
	"github.com/ahdhani/boilerplate/pkg/api/types/pagination"
	binderr "github.com/ahdhani/boilerplate/pkg/api-types-binding/errors"
	kdb "github.com/ahdhani/boilerplate/pkg/db"
	"github.com/ahdhani/boilerplate/pkg/utils"
)

// CrudService is what the generic handlers need from the application
// layer, for one entity type E created from payload type In.
//
// *service.Service[E, In] satisfies this.
type CrudService[E any, In any] interface {
	Create(ctx context.Context, payload In) (*E, error)
	Get(ctx context.Context, id int) (*E, error)
	Delete(ctx context.Context, id int) error
	ListPaginated(ctx context.Context, pageNumber int, pageSize int) (kdb.Page[E], error)
}

// Payload is a request body which can check its own field constraints.
type Payload interface {
	Validate() []apierr.FieldViolation
}

// pathId reads the ":id" path parameter.
//
// A value which is not an integer is a validation error on the
// "id" field, same as any other malformed input.
func pathId(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, binderr.UnprocessableEntity([]apierr.FieldViolation{
			{Field: "id", Reason: apierr.ReasonNotInteger},
		})
	}
	return id, nil
}

// GetHandler handles `GET /.../:id`.
//
// It responds the entity composed by `compose`, or 404 when the
// entity does not exist.
func GetHandler[E any, In any, Out any](
	svc CrudService[E, In],
	compose func(E) Out,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, err := pathId(c)
		if err != nil {
			return err
		}

		entity, err := svc.Get(ctx, id)
		if err != nil {
			return binderr.FromStorageError(err)
		}

		return c.JSON(http.StatusOK, compose(*entity))
	}
}

// CreateHandler handles `POST /.../`.
//
// The request body is decoded as json, validated, and passed to the
// service. On success it responds 201 with the stored entity,
// server-assigned fields included.
func CreateHandler[E any, In Payload, Out any](
	svc CrudService[E, In],
	compose func(E) Out,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx := req.Context()

		if !strings.HasPrefix(
			strings.ToLower(req.Header.Get("content-type")), "application/json",
		) {
			return binderr.MalformedRequest(
				"unexpected content type. it should be application/json",
			)
		}

		payload := new(In)
		if err := json.NewDecoder(req.Body).Decode(payload); err != nil {
			return binderr.MalformedRequest("can not understand the requested json")
		}

		if violations := (*payload).Validate(); len(violations) != 0 {
			return binderr.UnprocessableEntity(violations)
		}

		entity, err := svc.Create(ctx, *payload)
		if err != nil {
			return binderr.FromStorageError(err)
		}

		return c.JSON(http.StatusCreated, compose(*entity))
	}
}

// DeleteHandler handles `DELETE /.../:id`.
//
// It responds 204 with no body, or 404 when the entity does not exist.
func DeleteHandler[E any, In any](svc CrudService[E, In]) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, err := pathId(c)
		if err != nil {
			return err
		}

		if err := svc.Delete(ctx, id); err != nil {
			return binderr.FromStorageError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// ListHandler handles `GET /.../`.
//
// It responds one page of entities selected by the "page" and
// "page_size" query parameters, wrapped in the pagination envelope.
func ListHandler[E any, In any, Out any](
	svc CrudService[E, In],
	compose func(E) Out,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		preq, violations := pagination.ParseRequest(c.QueryParams())
		if len(violations) != 0 {
			return binderr.UnprocessableEntity(violations)
		}

		page, err := svc.ListPaginated(ctx, preq.PageNumber(), preq.PageSize)
		if err != nil {
			return binderr.FromStorageError(err)
		}

		return c.JSON(http.StatusOK, pagination.Page[Out]{
			Records:     utils.Map(page.Records, compose),
			RecordCount: page.RecordCount,
			PageCount:   page.PageCount,
		})
	}
}
