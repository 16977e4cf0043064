// Package pagination declares the paginated list envelope and the
// query parameters selecting a page.
package pagination

import (
	"net/url"
	"strconv"

	apierr "github.com/ahdhani/boilerplate/pkg/api/types/errors"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page wraps one page of records with pagination metadata.
//
// The type parameter fixes the record shape at compile time, so every
// entity gets a correctly-typed envelope without per-entity boilerplate.
type Page[T any] struct {
	Records     []T `json:"records"`
	RecordCount int `json:"record_count"`
	PageCount   int `json:"page_count"`
}

// Request is a validated page selection. Page is 1-based on the wire.
type Request struct {
	Page     int
	PageSize int
}

// PageNumber is the 0-based page number the data-access layer expects.
func (r Request) PageNumber() int {
	return r.Page - 1
}

// ParseRequest reads "page" and "page_size" from query parameters.
//
// Missing parameters fall back to the defaults. A non-numeric or
// out-of-range value yields one FieldViolation per offending parameter.
func ParseRequest(query url.Values) (Request, []apierr.FieldViolation) {
	req := Request{Page: DefaultPage, PageSize: DefaultPageSize}
	violations := []apierr.FieldViolation{}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			violations = append(violations, apierr.FieldViolation{
				Field: "page", Reason: apierr.ReasonNotInteger,
			})
		case page < 1:
			violations = append(violations, apierr.FieldViolation{
				Field: "page", Reason: apierr.ReasonPositive,
			})
		default:
			req.Page = page
		}
	}

	if raw := query.Get("page_size"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			violations = append(violations, apierr.FieldViolation{
				Field: "page_size", Reason: apierr.ReasonNotInteger,
			})
		case pageSize < 1:
			violations = append(violations, apierr.FieldViolation{
				Field: "page_size", Reason: apierr.ReasonPositive,
			})
		case MaxPageSize < pageSize:
			violations = append(violations, apierr.FieldViolation{
				Field: "page_size", Reason: apierr.ReasonMax(MaxPageSize),
			})
		default:
			req.PageSize = pageSize
		}
	}

	if len(violations) != 0 {
		return Request{}, violations
	}
	return req, nil
}
