package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/domains/book/model"
)

func TestBookService_Export(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newMemoryService(t)

	f, err := svc.Export(ctx, 0, 10)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ExportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "123", rows[1][0])
	assert.Equal(t, "alpaca", rows[1][3])
	assert.Equal(t, "a s", rows[1][4])
	assert.Equal(t, "9.5", rows[1][7])
	assert.Equal(t, "2020-01-01", rows[1][8])
	assert.Equal(t, "456", rows[2][0])
}

func TestBookService_Export_InvalidPagination(t *testing.T) {
	svc, _, _ := newMemoryService(t)

	_, err := svc.Export(context.Background(), -1, 10)
	assert.ErrorIs(t, err, model.ErrInvalidPagination)
}
