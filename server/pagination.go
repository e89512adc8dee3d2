package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/kasuboski/tapas/pkg/pagination"
)

var errInvalidPage = errors.New("invalid page parameter: must be positive integer")
var errInvalidPageSize = errors.New("invalid pageSize parameter: must be non-negative integer")

// ParsePaginationParams extracts and validates pagination params from request
func ParsePaginationParams(r *http.Request) (pagination.Params, error) {
	params := pagination.Params{
		Page: 1,
	}

	qp := r.URL.Query()

	if pageStr := qp.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, errInvalidPage
		}
		params.Page = page
	}

	if pageSizeStr := qp.Get("pageSize"); pageSizeStr != "" {
		pageSize, err := strconv.Atoi(pageSizeStr)
		if err != nil || pageSize < 0 {
			return params, errInvalidPageSize
		}
		params.PageSize = pageSize
	}

	return params, nil
}

func parseBool(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}

	return strconv.ParseBool(v)
}
