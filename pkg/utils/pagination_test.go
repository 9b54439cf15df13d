package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetPaginationParams(t *testing.T) {
	p := GetPaginationParams(0, -5)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 0, p.Limit)

	p = GetPaginationParams(3, 20)
	require.Equal(t, 3, p.Page)
	require.Equal(t, 20, p.Limit)

	p = GetPaginationParams(1, 5000)
	require.Equal(t, MaxPageSize, p.Limit)
}

func TestCalculateOffset(t *testing.T) {
	require.Equal(t, 0, GetPaginationParams(1, 20).CalculateOffset())
	require.Equal(t, 40, GetPaginationParams(3, 20).CalculateOffset())
}

func TestCalculateMeta(t *testing.T) {
	meta := CalculateMeta(45, 2, 20)
	require.Equal(t, 2, meta.Page)
	require.Equal(t, 20, meta.Limit)
	require.Equal(t, int64(45), meta.TotalCount)
	require.Equal(t, 3, meta.TotalPages)

	meta = CalculateMeta(45, 1, 0)
	require.Equal(t, 1, meta.Page)
	require.Equal(t, 45, meta.Limit)
	require.Equal(t, 1, meta.TotalPages)
}
