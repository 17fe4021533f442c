package receiptform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victorlai/deliverydesk/constants"
)

func TestNewEntryStoreSeedsOneEntry(t *testing.T) {
	s := NewEntryStore()
	entries := s.List()
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.Equal(t, constants.DefaultImageHeight, entries[0].ImageHeight)
	assert.Equal(t, constants.OCRStatusIdle, entries[0].OCRStatus)
}

func TestAddAppendsInOrder(t *testing.T) {
	s := NewEntryStore()
	second := s.Add()
	third := s.Add()

	entries := s.List()
	require.Len(t, entries, 3)
	assert.Equal(t, second.ID, entries[1].ID)
	assert.Equal(t, third.ID, entries[2].ID)
}

func TestRemoveLastEntrySynthesizesFreshOne(t *testing.T) {
	s := NewEntryStore()
	only := s.List()[0]
	s.Update(only.ID, Patch{DriverName: strPtr("老王")})

	s.Remove(only.ID)

	entries := s.List()
	require.Len(t, entries, 1)
	assert.NotEqual(t, only.ID, entries[0].ID)
	assert.Empty(t, entries[0].DriverName)
}

func TestRemoveKeepsRemainingEntries(t *testing.T) {
	s := NewEntryStore()
	first := s.List()[0]
	second := s.Add()

	s.Remove(first.ID)

	entries := s.List()
	require.Len(t, entries, 1)
	assert.Equal(t, second.ID, entries[0].ID)
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	s := NewEntryStore()
	before := s.List()
	s.Remove("missing")
	assert.Equal(t, before, s.List())
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	s := NewEntryStore()
	id := s.List()[0].ID

	s.Update(id, Patch{DriverName: strPtr("阿明"), Amount: strPtr("120")})
	s.Update(id, Patch{Note: strPtr("兩箱")})

	e, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "阿明", e.DriverName)
	assert.Equal(t, "120", e.Amount)
	assert.Equal(t, "兩箱", e.Note)
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	s := NewEntryStore()
	s.Update("missing", Patch{DriverName: strPtr("x")})
	assert.Empty(t, s.List()[0].DriverName)
}

func TestUpdateClampsImageHeight(t *testing.T) {
	s := NewEntryStore()
	id := s.List()[0].ID

	s.Update(id, Patch{ImageHeight: intPtr(10)})
	e, _ := s.Get(id)
	assert.Equal(t, constants.MinImageHeight, e.ImageHeight)

	s.Update(id, Patch{ImageHeight: intPtr(9999)})
	e, _ = s.Get(id)
	assert.Equal(t, constants.MaxImageHeight, e.ImageHeight)

	s.Update(id, Patch{ImageHeight: intPtr(200)})
	e, _ = s.Get(id)
	assert.Equal(t, 200, e.ImageHeight)
}

func TestListReturnsCopies(t *testing.T) {
	s := NewEntryStore()
	snapshot := s.List()
	snapshot[0].DriverName = "mutated"
	assert.Empty(t, s.List()[0].DriverName)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
