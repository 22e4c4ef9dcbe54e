// Package pagination provides limit/offset helpers shared by list endpoints.
package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	// DefaultLimit is used when the client does not specify one.
	DefaultLimit = 50
	// MaxLimit caps the page size a client may request.
	MaxLimit = 100
)

// Params holds parsed pagination query parameters.
type Params struct {
	Limit  int
	Offset int
}

// FromContext reads limit and offset query parameters from the request,
// applying defaults and clamping out-of-range values.
func FromContext(c echo.Context) Params {
	return FromContextWithDefault(c, DefaultLimit)
}

// FromContextWithDefault is FromContext with a caller-chosen default page size.
func FromContextWithDefault(c echo.Context, defaultLimit int) Params {
	p := Params{Limit: defaultLimit}

	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.Limit = v
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if raw := c.QueryParam("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			p.Offset = v
		}
	}

	return p
}

// Response wraps a page of results with paging metadata.
type Response struct {
	Data   interface{} `json:"data"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// NewResponse builds a Response for the given page of items.
func NewResponse(data interface{}, total, limit, offset int) Response {
	return Response{
		Data:   data,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}
