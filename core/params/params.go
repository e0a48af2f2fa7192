package params

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type QueryParams struct {
	PageNumber int
	PageSize   int
}

// FromEcho reads page/page_size query parameters with sane bounds.
func FromEcho(c echo.Context) QueryParams {
	p := QueryParams{PageNumber: 1, PageSize: DefaultPageSize}
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil && n > 0 {
		p.PageNumber = n
	}
	if s, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && s > 0 {
		p.PageSize = s
		if p.PageSize > MaxPageSize {
			p.PageSize = MaxPageSize
		}
	}
	return p
}
