// Package admin implements the state behind the inquiry triage dashboard:
// server-side filtered fetches, client-side text search over the loaded
// page, master-detail selection, and optimistic merge of update results.
package admin

import (
	"context"
	"log"
	"strings"

	"mokshamaa/internal/domain"
	"mokshamaa/pkg/client"
)

// API is the slice of the inquiry client the dashboard needs.
type API interface {
	ListInquiries(ctx context.Context, p client.ListParams) (*client.ListResult, error)
	UpdateInquiry(ctx context.Context, id string, fields map[string]any) (*domain.Inquiry, error)
}

// Filters are the server-side list filters. "all" or "" disables a filter.
type Filters struct {
	Status   string
	Category string
	Priority string
}

// Stats tallies the loaded page for the dashboard header cards.
type Stats struct {
	Total      int
	New        int
	InProgress int
	Completed  int
}

// Dashboard holds the triage view state. Not safe for concurrent use; it
// models a single admin session.
type Dashboard struct {
	api        API
	filters    Filters
	inquiries  []domain.Inquiry
	total      int64
	selectedID string
	lastErr    error
}

// NewDashboard creates a dashboard backed by the given API client.
func NewDashboard(api API) *Dashboard {
	return &Dashboard{api: api, filters: Filters{Status: "all", Category: "all", Priority: "all"}}
}

// SetFilters replaces the server-side filters. The caller refreshes next.
func (d *Dashboard) SetFilters(f Filters) {
	d.filters = f
}

// Filters returns the active server-side filters.
func (d *Dashboard) Filters() Filters {
	return d.filters
}

// Refresh re-fetches the inquiry page under the current filters. On failure
// the previously loaded page is kept so the view can offer a retry without
// going blank.
func (d *Dashboard) Refresh(ctx context.Context) error {
	result, err := d.api.ListInquiries(ctx, client.ListParams{
		Status:   d.filters.Status,
		Category: d.filters.Category,
		Priority: d.filters.Priority,
	})
	if err != nil {
		log.Printf("[ADMIN] refresh failed: %v", err)
		d.lastErr = err
		return err
	}

	d.inquiries = result.Inquiries
	d.total = result.Total
	d.lastErr = nil

	// Drop the selection if the selected row fell out of the page
	if d.selectedID != "" {
		if _, ok := d.find(d.selectedID); !ok {
			d.selectedID = ""
		}
	}
	return nil
}

// Inquiries returns the loaded page.
func (d *Dashboard) Inquiries() []domain.Inquiry {
	return d.inquiries
}

// Total returns the count of rows matching the filters server-side.
func (d *Dashboard) Total() int64 {
	return d.total
}

// LastError returns the error of the most recent failed fetch, if any.
func (d *Dashboard) LastError() error {
	return d.lastErr
}

// Visible narrows the loaded page by the free-text search term. The search
// never triggers a round trip; it only filters what is already loaded.
func (d *Dashboard) Visible(term string) []domain.Inquiry {
	return FilterByText(d.inquiries, term)
}

// Select marks an inquiry as the detail-pane row.
func (d *Dashboard) Select(id string) (*domain.Inquiry, bool) {
	inquiry, ok := d.find(id)
	if !ok {
		return nil, false
	}
	d.selectedID = id
	return inquiry, true
}

// Selected returns the detail-pane inquiry, if any.
func (d *Dashboard) Selected() (*domain.Inquiry, bool) {
	if d.selectedID == "" {
		return nil, false
	}
	return d.find(d.selectedID)
}

// SetStatus updates the selected inquiry's status.
func (d *Dashboard) SetStatus(ctx context.Context, status domain.Status) error {
	return d.mutateSelected(ctx, map[string]any{"status": string(status)})
}

// SetPriority updates the selected inquiry's priority.
func (d *Dashboard) SetPriority(ctx context.Context, priority domain.Priority) error {
	return d.mutateSelected(ctx, map[string]any{"priority": string(priority)})
}

// SaveNotes stores admin notes for the selected inquiry. Notes are saved on
// an explicit action, not on every keystroke.
func (d *Dashboard) SaveNotes(ctx context.Context, notes string) error {
	return d.mutateSelected(ctx, map[string]any{"admin_notes": notes})
}

// Assign sets the handler of the selected inquiry.
func (d *Dashboard) Assign(ctx context.Context, assignee string) error {
	return d.mutateSelected(ctx, map[string]any{"assigned_to": assignee})
}

// Stats tallies the loaded page by status.
func (d *Dashboard) Stats() Stats {
	s := Stats{Total: len(d.inquiries)}
	for _, inquiry := range d.inquiries {
		switch inquiry.Status {
		case domain.StatusNew:
			s.New++
		case domain.StatusInProgress:
			s.InProgress++
		case domain.StatusCompleted:
			s.Completed++
		}
	}
	return s
}

// mutateSelected patches the selected row and merges the server's returned
// record into both the list and the detail pane. Merging the server record
// rather than the sent patch keeps the view aligned with whatever the
// server actually stored.
func (d *Dashboard) mutateSelected(ctx context.Context, fields map[string]any) error {
	if d.selectedID == "" {
		return ErrNoSelection
	}

	updated, err := d.api.UpdateInquiry(ctx, d.selectedID, fields)
	if err != nil {
		log.Printf("[ADMIN] update failed for id=%s: %v", d.selectedID, err)
		return err
	}

	for i := range d.inquiries {
		if d.inquiries[i].ID == updated.ID {
			d.inquiries[i] = *updated
			break
		}
	}
	return nil
}

func (d *Dashboard) find(id string) (*domain.Inquiry, bool) {
	for i := range d.inquiries {
		if d.inquiries[i].ID == id {
			return &d.inquiries[i], true
		}
	}
	return nil, false
}

// FilterByText narrows inquiries to those matching the search term in name,
// email, id, city or state (case-insensitive) or phone (verbatim). An empty
// term returns the input unchanged.
func FilterByText(inquiries []domain.Inquiry, term string) []domain.Inquiry {
	if term == "" {
		return inquiries
	}
	needle := strings.ToLower(term)

	var matched []domain.Inquiry
	for _, inquiry := range inquiries {
		if strings.Contains(strings.ToLower(inquiry.Name), needle) ||
			strings.Contains(strings.ToLower(inquiry.Email), needle) ||
			strings.Contains(inquiry.Phone, term) ||
			strings.Contains(strings.ToLower(inquiry.ID), needle) ||
			strings.Contains(strings.ToLower(inquiry.City), needle) ||
			strings.Contains(strings.ToLower(inquiry.State), needle) {
			matched = append(matched, inquiry)
		}
	}
	return matched
}
