package utils

import (
	"github.com/kataras/iris/v12"
)

// PageMeta describes one page of a list response.
type PageMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
}

// JSONPage writes a paginated list envelope: the rows plus page bookkeeping.
func JSONPage(ctx iris.Context, data interface{}, page, perPage int, total int64) {
	ctx.JSON(iris.Map{
		"data": data,
		"meta": PageMeta{
			Page:    page,
			PerPage: perPage,
			Total:   total,
			Pages:   pageCount(total, perPage),
		},
	})
}

func pageCount(total int64, perPage int) int {
	if perPage < 1 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func JSONError(ctx iris.Context, status int, code, message string) {
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{"error": code, "message": message})
}
