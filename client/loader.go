package client

import (
	"context"
	"sync"

	"github.com/rmittal-realty/api/internal/models"
)

// Loader drives incremental pagination over the public property listing.
// It keeps a single ViewModel and guarantees at most one page request is
// in flight: LoadMore and Refresh calls made while a request is
// outstanding are ignored rather than racing, so the last-response-wins
// hazard of firing overlapping fetches cannot occur.
type Loader struct {
	client *Client

	mu      sync.Mutex
	loading bool
	vm      ViewModel
}

// NewLoader creates a Loader with an initial view model of the given page
// size.
func NewLoader(client *Client, limit int) *Loader {
	return &Loader{
		client: client,
		vm:     NewViewModel(limit),
	}
}

// State returns a snapshot of the current view model.
func (l *Loader) State() ViewModel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.vm
}

// Loading reports whether a page request is in flight.
func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Refresh fetches page 1 and replaces the accumulated list. It returns
// false without fetching when another request is already in flight.
func (l *Loader) Refresh(ctx context.Context) (bool, error) {
	return l.load(ctx, true)
}

// LoadMore fetches the next page and appends it. It returns false without
// fetching when another request is in flight or the listing is exhausted.
func (l *Loader) LoadMore(ctx context.Context) (bool, error) {
	return l.load(ctx, false)
}

// SetFilters updates the filter selections on the view model.
func (l *Loader) SetFilters(typeFilter, areaFilter string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.vm = l.vm.WithFilters(typeFilter, areaFilter)
}

// SetSort updates the sort order on the view model.
func (l *Loader) SetSort(order string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.vm = l.vm.WithSort(order)
}

// Visible returns the filtered, sorted slice of fetched properties.
func (l *Loader) Visible() []models.Property {
	l.mu.Lock()
	vm := l.vm
	l.mu.Unlock()
	return vm.Visible()
}

func (l *Loader) load(ctx context.Context, replace bool) (bool, error) {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return false, nil
	}
	if !replace && !l.vm.HasMore {
		l.mu.Unlock()
		return false, nil
	}
	l.loading = true
	page := 1
	if !replace {
		page = l.vm.NextPage()
	}
	limit := l.vm.Limit
	l.mu.Unlock()

	result, err := l.client.FetchPage(ctx, page, limit)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		l.vm = l.vm.ApplyFailure(replace)
		return true, err
	}
	l.vm = l.vm.ApplyPage(result.Properties, replace)
	return true, nil
}
