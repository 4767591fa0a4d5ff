package inventory

import (
	"testing"

	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWarehouse(t *testing.T) *Warehouse {
	w, err := NewWarehouse("Main Depot", "Pune")
	require.NoError(t, err)
	return w
}

func TestNewWarehouse(t *testing.T) {
	w, err := NewWarehouse("Main Depot", "Pune")
	require.NoError(t, err)
	assert.Equal(t, "Main Depot", w.Name)
	assert.Equal(t, 1, w.GetVersion())
	assert.Empty(t, w.VirtualEntries)

	_, err = NewWarehouse("", "Pune")
	assert.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeValidation))
}

func TestAddVirtualStock(t *testing.T) {
	w := newTestWarehouse(t)
	itemID := uuid.New()

	err := w.AddVirtualStock(itemID, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, w.VirtualQuantity(itemID).Equal(decimal.NewFromInt(100)))

	err = w.AddVirtualStock(itemID, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.True(t, w.VirtualQuantity(itemID).Equal(decimal.NewFromInt(150)))
	assert.Len(t, w.VirtualEntries, 1)

	err = w.AddVirtualStock(itemID, decimal.Zero)
	assert.True(t, shared.IsCode(err, shared.CodeValidation))

	err = w.AddVirtualStock(itemID, decimal.NewFromInt(-5))
	assert.True(t, shared.IsCode(err, shared.CodeValidation))
}

func TestCommitStock(t *testing.T) {
	w := newTestWarehouse(t)
	itemID := uuid.New()
	require.NoError(t, w.AddVirtualStock(itemID, decimal.NewFromInt(100)))
	require.NoError(t, w.AddBilledStock(itemID, decimal.NewFromInt(40)))

	err := w.CommitStock(itemID, decimal.NewFromInt(30), decimal.NewFromInt(10))
	require.NoError(t, err)

	assert.True(t, w.VirtualQuantity(itemID).Equal(decimal.NewFromInt(70)))
	assert.True(t, w.BilledQuantity(itemID).Equal(decimal.NewFromInt(30)))
	soldBilled, soldVirtual := w.SoldQuantities(itemID)
	assert.True(t, soldBilled.Equal(decimal.NewFromInt(10)))
	assert.True(t, soldVirtual.Equal(decimal.NewFromInt(30)))
}

func TestCommitStockInsufficient(t *testing.T) {
	w := newTestWarehouse(t)
	itemID := uuid.New()
	require.NoError(t, w.AddVirtualStock(itemID, decimal.NewFromInt(10)))
	require.NoError(t, w.AddBilledStock(itemID, decimal.NewFromInt(5)))

	err := w.CommitStock(itemID, decimal.NewFromInt(20), decimal.Zero)
	assert.True(t, shared.IsCode(err, shared.CodeInsufficientStock))

	err = w.CommitStock(itemID, decimal.NewFromInt(5), decimal.NewFromInt(8))
	assert.True(t, shared.IsCode(err, shared.CodeInsufficientStock))

	// a failed commit must not move anything
	assert.True(t, w.VirtualQuantity(itemID).Equal(decimal.NewFromInt(10)))
	assert.True(t, w.BilledQuantity(itemID).Equal(decimal.NewFromInt(5)))
	soldBilled, soldVirtual := w.SoldQuantities(itemID)
	assert.True(t, soldBilled.IsZero())
	assert.True(t, soldVirtual.IsZero())
}

func TestCommitStockMissingEntry(t *testing.T) {
	itemID := uuid.New()

	// billed stock only: the virtual entry is missing even though the
	// requested virtual split is zero
	w := newTestWarehouse(t)
	require.NoError(t, w.AddBilledStock(itemID, decimal.NewFromInt(10)))
	err := w.CommitStock(itemID, decimal.Zero, decimal.NewFromInt(5))
	assert.True(t, shared.IsCode(err, shared.CodeNotFound))

	// virtual stock only: the billed entry is missing
	w2 := newTestWarehouse(t)
	require.NoError(t, w2.AddVirtualStock(itemID, decimal.NewFromInt(10)))
	err = w2.CommitStock(itemID, decimal.NewFromInt(5), decimal.Zero)
	assert.True(t, shared.IsCode(err, shared.CodeNotFound))

	// neither warehouse moved anything
	assert.True(t, w.BilledQuantity(itemID).Equal(decimal.NewFromInt(10)))
	assert.True(t, w2.VirtualQuantity(itemID).Equal(decimal.NewFromInt(10)))
	assert.Empty(t, w.SoldEntries)
	assert.Empty(t, w2.SoldEntries)
}

func TestCommitStockValidation(t *testing.T) {
	w := newTestWarehouse(t)
	itemID := uuid.New()

	err := w.CommitStock(itemID, decimal.Zero, decimal.Zero)
	assert.True(t, shared.IsCode(err, shared.CodeValidation))

	err = w.CommitStock(itemID, decimal.NewFromInt(-1), decimal.Zero)
	assert.True(t, shared.IsCode(err, shared.CodeValidation))
}

func TestRestoreStock(t *testing.T) {
	w := newTestWarehouse(t)
	itemID := uuid.New()
	require.NoError(t, w.AddVirtualStock(itemID, decimal.NewFromInt(100)))
	require.NoError(t, w.AddBilledStock(itemID, decimal.NewFromInt(40)))
	require.NoError(t, w.CommitStock(itemID, decimal.NewFromInt(30), decimal.NewFromInt(10)))

	err := w.RestoreStock(itemID, decimal.NewFromInt(30), decimal.NewFromInt(10))
	require.NoError(t, err)

	assert.True(t, w.VirtualQuantity(itemID).Equal(decimal.NewFromInt(100)))
	assert.True(t, w.BilledQuantity(itemID).Equal(decimal.NewFromInt(40)))
	// the sold entry is removed once both quantities reach zero
	assert.Empty(t, w.SoldEntries)
}

func TestRestoreStockPartial(t *testing.T) {
	w := newTestWarehouse(t)
	itemID := uuid.New()
	require.NoError(t, w.AddVirtualStock(itemID, decimal.NewFromInt(100)))
	require.NoError(t, w.AddBilledStock(itemID, decimal.NewFromInt(5)))
	require.NoError(t, w.CommitStock(itemID, decimal.NewFromInt(60), decimal.Zero))

	err := w.RestoreStock(itemID, decimal.NewFromInt(25), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, w.VirtualQuantity(itemID).Equal(decimal.NewFromInt(65)))
	_, soldVirtual := w.SoldQuantities(itemID)
	assert.True(t, soldVirtual.Equal(decimal.NewFromInt(35)))
	assert.Len(t, w.SoldEntries, 1)
}

func TestRestoreStockConsistency(t *testing.T) {
	w := newTestWarehouse(t)
	itemID := uuid.New()
	require.NoError(t, w.AddVirtualStock(itemID, decimal.NewFromInt(10)))
	require.NoError(t, w.AddBilledStock(itemID, decimal.NewFromInt(5)))
	require.NoError(t, w.CommitStock(itemID, decimal.NewFromInt(10), decimal.Zero))

	err := w.RestoreStock(itemID, decimal.NewFromInt(15), decimal.Zero)
	assert.True(t, shared.IsCode(err, shared.CodeConsistencyViolation))

	err = w.RestoreStock(itemID, decimal.Zero, decimal.NewFromInt(1))
	assert.True(t, shared.IsCode(err, shared.CodeConsistencyViolation))
}

func TestMultipleItems(t *testing.T) {
	w := newTestWarehouse(t)
	itemA := uuid.New()
	itemB := uuid.New()
	require.NoError(t, w.AddVirtualStock(itemA, decimal.NewFromInt(10)))
	require.NoError(t, w.AddVirtualStock(itemB, decimal.NewFromInt(20)))
	require.NoError(t, w.AddBilledStock(itemB, decimal.NewFromInt(5)))

	require.NoError(t, w.CommitStock(itemB, decimal.NewFromInt(5), decimal.Zero))

	assert.True(t, w.VirtualQuantity(itemA).Equal(decimal.NewFromInt(10)))
	assert.True(t, w.VirtualQuantity(itemB).Equal(decimal.NewFromInt(15)))
	assert.Len(t, w.SoldEntries, 1)
}
