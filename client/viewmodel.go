package client

import (
	"sort"
	"strings"

	"github.com/rmittal-realty/api/internal/models"
)

// Filter and sort values accepted by the view model.
const (
	FilterAll = "all"

	// DefaultAreaLabel is the area a property with no area value falls
	// under when filtering.
	DefaultAreaLabel = "gurgaon"

	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortTitleAsc  = "title-asc"
	SortTitleDesc = "title-desc"
)

// DefaultPageLimit is the page size the listing page loads with.
const DefaultPageLimit = 6

// ViewModel is the serializable state of the property listing page: the
// accumulated fetched list, the pagination cursor, and the active filter
// and sort selections. It is only modified through the reducer functions
// below, each of which returns a new value.
type ViewModel struct {
	Properties []models.Property `json:"properties"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	HasMore    bool              `json:"hasMore"`
	TypeFilter string            `json:"typeFilter"`
	AreaFilter string            `json:"areaFilter"`
	SortOrder  string            `json:"sortOrder"`
}

// NewViewModel returns the initial listing state: nothing fetched yet, the
// cursor before the first page, filters wide open, newest first. A
// non-positive limit falls back to DefaultPageLimit.
func NewViewModel(limit int) ViewModel {
	if limit < 1 {
		limit = DefaultPageLimit
	}
	return ViewModel{
		Page:       0,
		Limit:      limit,
		HasMore:    true,
		TypeFilter: FilterAll,
		AreaFilter: FilterAll,
		SortOrder:  SortNewest,
	}
}

// NextPage is the page number the loader should fetch next.
func (vm ViewModel) NextPage() int {
	return vm.Page + 1
}

// ApplyPage folds a successfully fetched page into the state. A replace
// resets the accumulated list to the fetched page; an append extends it,
// skipping records whose id is already present so a store mutation between
// fetches cannot surface duplicates. HasMore is true only when the page
// came back full, and the cursor advances only when it was non-empty.
func (vm ViewModel) ApplyPage(fetched []models.Property, replace bool) ViewModel {
	next := vm
	if replace {
		next.Properties = nil
		next.Page = 0
	}

	seen := make(map[int64]bool, len(next.Properties))
	for _, p := range next.Properties {
		seen[p.ID] = true
	}

	merged := next.Properties
	for _, p := range fetched {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		merged = append(merged, p)
	}
	next.Properties = merged

	next.HasMore = len(fetched) == vm.Limit
	if len(fetched) > 0 {
		next.Page++
	}
	return next
}

// ApplyFailure folds a failed fetch into the state. A failed replace
// clears the list so the page never renders stale data; a failed append
// keeps what was already fetched. Either way loading stops.
func (vm ViewModel) ApplyFailure(replace bool) ViewModel {
	next := vm
	if replace {
		next.Properties = nil
		next.Page = 0
	}
	next.HasMore = false
	return next
}

// WithFilters returns the state with new filter selections applied.
// Filtering never refetches; it narrows what Visible returns.
func (vm ViewModel) WithFilters(typeFilter, areaFilter string) ViewModel {
	next := vm
	next.TypeFilter = strings.ToLower(strings.TrimSpace(typeFilter))
	next.AreaFilter = strings.ToLower(strings.TrimSpace(areaFilter))
	if next.TypeFilter == "" {
		next.TypeFilter = FilterAll
	}
	if next.AreaFilter == "" {
		next.AreaFilter = FilterAll
	}
	return next
}

// WithSort returns the state with a new sort order. Unknown values fall
// back to newest first.
func (vm ViewModel) WithSort(order string) ViewModel {
	next := vm
	switch order {
	case SortNewest, SortOldest, SortTitleAsc, SortTitleDesc:
		next.SortOrder = order
	default:
		next.SortOrder = SortNewest
	}
	return next
}

// Visible returns the accumulated list with the active filters and sort
// applied. The receiver is not modified; results are bounded by how many
// pages have been fetched.
func (vm ViewModel) Visible() []models.Property {
	filtered := make([]models.Property, 0, len(vm.Properties))
	for _, p := range vm.Properties {
		if vm.TypeFilter != FilterAll && !strings.EqualFold(p.Type, vm.TypeFilter) {
			continue
		}
		if vm.AreaFilter != FilterAll && !strings.EqualFold(areaLabel(p), vm.AreaFilter) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch vm.SortOrder {
	case SortOldest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].ID < filtered[j].ID
		})
	case SortTitleAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return strings.ToLower(filtered[i].Title) < strings.ToLower(filtered[j].Title)
		})
	case SortTitleDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return strings.ToLower(filtered[i].Title) > strings.ToLower(filtered[j].Title)
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].ID > filtered[j].ID
		})
	}
	return filtered
}

// areaLabel is the area a property files under for filtering; records
// with no area value fall back to DefaultAreaLabel.
func areaLabel(p models.Property) string {
	if p.Area == nil || strings.TrimSpace(*p.Area) == "" {
		return DefaultAreaLabel
	}
	return *p.Area
}
