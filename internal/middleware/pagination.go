package middleware

import (
	"nandhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const paginationKey = "pagination"

// Paginated validates the page/pageSize query pair up front so
// controllers can assume a well-formed Pagination on the context.
func Paginated() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := util.ParsePagination(c.Query("page"), c.Query("pageSize"))
		if err != nil {
			if appErr, ok := util.AsAppError(err); ok {
				util.AbortWithAppError(c, appErr)
				return
			}
			util.LogInternalError(c, err)
			c.Abort()
			return
		}

		c.Set(paginationKey, p)
		c.Next()
	}
}

// GetPagination returns the Pagination resolved by Paginated, or the
// defaults when the middleware did not run.
func GetPagination(c *gin.Context) util.Pagination {
	if v, exists := c.Get(paginationKey); exists {
		if p, ok := v.(util.Pagination); ok {
			return p
		}
	}
	return util.Pagination{Page: 0, PageSize: util.DefaultPageSize}
}
