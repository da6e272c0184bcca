package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/storagetest"
)

func TestGetByID_LocksOnlyInWriteTransaction(t *testing.T) {
	rec := storagetest.New(t)
	repo := NewRepository(rec.DB)

	readOnly := rec.InTx(t, true, func(ctx context.Context) { _, _ = repo.GetByID(ctx, 7) })
	require.Len(t, readOnly, 1)
	assert.NotContains(t, readOnly[0], "FOR UPDATE")

	write := rec.InTx(t, false, func(ctx context.Context) { _, _ = repo.GetByID(ctx, 7) })
	require.Len(t, write, 1)
	assert.Contains(t, write[0], "FOR UPDATE")
}
