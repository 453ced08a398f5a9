package client

import (
	"testing"

	"github.com/rmittal-realty/api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func propertyPage(ids ...int64) []models.Property {
	page := make([]models.Property, 0, len(ids))
	for _, id := range ids {
		page = append(page, models.Property{ID: id})
	}
	return page
}

func TestNewViewModel(t *testing.T) {
	vm := NewViewModel(6)

	assert.Equal(t, 0, vm.Page)
	assert.Equal(t, 1, vm.NextPage())
	assert.Equal(t, 6, vm.Limit)
	assert.True(t, vm.HasMore)
	assert.Equal(t, FilterAll, vm.TypeFilter)
	assert.Equal(t, FilterAll, vm.AreaFilter)
	assert.Equal(t, SortNewest, vm.SortOrder)
}

func TestNewViewModel_LimitFallback(t *testing.T) {
	assert.Equal(t, DefaultPageLimit, NewViewModel(0).Limit)
	assert.Equal(t, DefaultPageLimit, NewViewModel(-1).Limit)
}

func TestApplyPage_ReplaceResetsList(t *testing.T) {
	vm := NewViewModel(3)
	vm = vm.ApplyPage(propertyPage(1, 2, 3), true)
	require.Len(t, vm.Properties, 3)
	assert.Equal(t, 1, vm.Page)
	assert.True(t, vm.HasMore)

	// A later replace discards everything fetched so far.
	vm = vm.ApplyPage(propertyPage(9), true)
	require.Len(t, vm.Properties, 1)
	assert.Equal(t, int64(9), vm.Properties[0].ID)
	assert.Equal(t, 1, vm.Page)
	assert.False(t, vm.HasMore)
}

func TestApplyPage_AppendAccumulates(t *testing.T) {
	vm := NewViewModel(2)
	vm = vm.ApplyPage(propertyPage(10, 9), true)
	vm = vm.ApplyPage(propertyPage(8, 7), false)

	require.Len(t, vm.Properties, 4)
	assert.Equal(t, 2, vm.Page)
	assert.True(t, vm.HasMore)

	// Fetched order is preserved across pages.
	ids := []int64{vm.Properties[0].ID, vm.Properties[1].ID, vm.Properties[2].ID, vm.Properties[3].ID}
	assert.Equal(t, []int64{10, 9, 8, 7}, ids)
}

func TestApplyPage_AppendSkipsDuplicateIDs(t *testing.T) {
	vm := NewViewModel(2)
	vm = vm.ApplyPage(propertyPage(10, 9), true)

	// A record created between fetches shifts the pages; id 9 comes back
	// again on page 2 and must not appear twice.
	vm = vm.ApplyPage(propertyPage(9, 8), false)

	require.Len(t, vm.Properties, 3)
	ids := []int64{vm.Properties[0].ID, vm.Properties[1].ID, vm.Properties[2].ID}
	assert.Equal(t, []int64{10, 9, 8}, ids)
}

func TestApplyPage_ShortPageEndsPagination(t *testing.T) {
	vm := NewViewModel(6)
	vm = vm.ApplyPage(propertyPage(1, 2, 3, 4), true)

	assert.False(t, vm.HasMore)
	assert.Equal(t, 1, vm.Page)
}

func TestApplyPage_EmptyPageDoesNotAdvanceCursor(t *testing.T) {
	vm := NewViewModel(2)
	vm = vm.ApplyPage(propertyPage(2, 1), true)
	require.Equal(t, 1, vm.Page)

	vm = vm.ApplyPage(nil, false)
	assert.Equal(t, 1, vm.Page)
	assert.False(t, vm.HasMore)
	assert.Len(t, vm.Properties, 2)
}

func TestApplyFailure(t *testing.T) {
	vm := NewViewModel(2)
	vm = vm.ApplyPage(propertyPage(2, 1), true)

	t.Run("failed append keeps fetched records", func(t *testing.T) {
		after := vm.ApplyFailure(false)
		assert.Len(t, after.Properties, 2)
		assert.False(t, after.HasMore)
		assert.Equal(t, 1, after.Page)
	})

	t.Run("failed replace clears the list", func(t *testing.T) {
		after := vm.ApplyFailure(true)
		assert.Empty(t, after.Properties)
		assert.False(t, after.HasMore)
		assert.Equal(t, 0, after.Page)
	})
}

func TestVisible_TypeFilter(t *testing.T) {
	vm := NewViewModel(6)
	vm = vm.ApplyPage([]models.Property{
		{ID: 1, Type: "Villa"},
		{ID: 2, Type: "Apartment"},
		{ID: 3, Type: "villa"},
	}, true)

	vm = vm.WithFilters("VILLA", FilterAll)
	visible := vm.Visible()

	require.Len(t, visible, 2)
	for _, p := range visible {
		assert.True(t, p.Type == "Villa" || p.Type == "villa")
	}
}

func TestVisible_AreaFilterWithFallback(t *testing.T) {
	vm := NewViewModel(6)
	vm = vm.ApplyPage([]models.Property{
		{ID: 1, Area: strPtr("golf course road")},
		{ID: 2, Area: nil},
		{ID: 3, Area: strPtr("sohna road")},
	}, true)

	t.Run("exact area match", func(t *testing.T) {
		visible := vm.WithFilters(FilterAll, "Golf Course Road").Visible()
		require.Len(t, visible, 1)
		assert.Equal(t, int64(1), visible[0].ID)
	})

	t.Run("missing area files under the fallback label", func(t *testing.T) {
		visible := vm.WithFilters(FilterAll, DefaultAreaLabel).Visible()
		require.Len(t, visible, 1)
		assert.Equal(t, int64(2), visible[0].ID)
	})

	t.Run("all passes everything through", func(t *testing.T) {
		assert.Len(t, vm.Visible(), 3)
	})
}

func TestVisible_SortOrders(t *testing.T) {
	vm := NewViewModel(6)
	vm = vm.ApplyPage([]models.Property{
		{ID: 2, Title: "Banyan Court"},
		{ID: 3, Title: "amber Heights"},
		{ID: 1, Title: "Cedar Row"},
	}, true)

	tests := []struct {
		order    string
		expected []int64
	}{
		{SortNewest, []int64{3, 2, 1}},
		{SortOldest, []int64{1, 2, 3}},
		{SortTitleAsc, []int64{3, 2, 1}},  // amber, Banyan, Cedar
		{SortTitleDesc, []int64{1, 2, 3}}, // Cedar, Banyan, amber
	}

	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			visible := vm.WithSort(tt.order).Visible()
			require.Len(t, visible, len(tt.expected))
			for i, id := range tt.expected {
				assert.Equal(t, id, visible[i].ID)
			}
		})
	}
}

func TestVisible_SortAppliedAfterFiltering(t *testing.T) {
	vm := NewViewModel(6)
	vm = vm.ApplyPage([]models.Property{
		{ID: 1, Type: "Villa", Title: "Zinnia"},
		{ID: 2, Type: "Flat", Title: "Aster"},
		{ID: 3, Type: "Villa", Title: "Marigold"},
	}, true)

	visible := vm.WithFilters("villa", FilterAll).WithSort(SortTitleAsc).Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "Marigold", visible[0].Title)
	assert.Equal(t, "Zinnia", visible[1].Title)
}

func TestWithSort_UnknownFallsBackToNewest(t *testing.T) {
	vm := NewViewModel(6).WithSort("shuffled")
	assert.Equal(t, SortNewest, vm.SortOrder)
}

func TestWithFilters_BlankFallsBackToAll(t *testing.T) {
	vm := NewViewModel(6).WithFilters("  ", "")
	assert.Equal(t, FilterAll, vm.TypeFilter)
	assert.Equal(t, FilterAll, vm.AreaFilter)
}
