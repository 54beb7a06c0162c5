package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/analytics"
	"github.com/de-tools/sales-atlas/pkg/services/chat"
	"github.com/de-tools/sales-atlas/pkg/services/export"
	"github.com/de-tools/sales-atlas/pkg/services/filter"
	"github.com/de-tools/sales-atlas/pkg/services/table"
	"github.com/rs/zerolog"
)

const reportTitle = "Superstore Sales Report"

// DatasetSource is the process-wide raw dataset. *dataset.Store satisfies it.
type DatasetSource interface {
	Dataset() (domain.Dataset, uint64)
	Status() domain.DatasetStatus
}

// view memoizes everything derived from one (dataset version, filters) pair.
type view struct {
	version  uint64
	key      string
	filtered domain.Dataset
	snapshot *domain.Snapshot
}

type rawView struct {
	version  uint64
	snapshot domain.Snapshot
}

// Session is the dashboard state of a single user: filters, table
// navigation and the chat log, over a shared raw dataset.
type Session struct {
	source  DatasetSource
	exports *export.Service
	chat    *chat.Conversation
	now     func() time.Time

	mu         sync.Mutex
	filters    domain.FilterState
	comparison domain.ComparisonMode
	table      domain.TableViewState
	view       *view
	raw        *rawView
}

type Option func(*Session)

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithConversation(c *chat.Conversation) Option {
	return func(s *Session) { s.chat = c }
}

func NewSession(source DatasetSource, opts ...Option) *Session {
	s := &Session{
		source:     source,
		exports:    export.NewService(),
		now:        time.Now,
		comparison: domain.ComparisonNone,
		table:      table.NewState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.chat == nil {
		s.chat = chat.NewConversation(chat.WithClock(s.now))
	}
	return s
}

func (s *Session) Status() domain.DatasetStatus {
	return s.source.Status()
}

// Filters returns the active filters and comparison mode.
func (s *Session) Filters() (domain.FilterState, domain.ComparisonMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.Clone(), s.comparison
}

func (s *Session) SetDateFilter(start, end string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.DateRange = domain.DateRange{Start: start, End: end}
}

// ApplyDatePreset resolves preset against the latest order date in the
// dataset, or today when no dated order is loaded.
func (s *Session) ApplyDatePreset(preset string) error {
	raw, _ := s.source.Dataset()
	anchor, ok := raw.LatestOrderDate()
	if !ok {
		anchor = s.now()
	}
	r, err := filter.Preset(preset, anchor)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.DateRange = r
	return nil
}

func (s *Session) SetComparisonMode(mode domain.ComparisonMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownComparison, mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comparison = mode
	return nil
}

func (s *Session) ToggleCategoryFilter(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Categories = filter.Toggle(s.filters.Categories, category)
}

func (s *Session) ToggleRegionFilter(region string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Regions = filter.Toggle(s.filters.Regions, region)
}

// ClearFilters drops every filter and the table search.
func (s *Session) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = domain.FilterState{}
	s.table.SearchQuery = ""
}

func (s *Session) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table.SetSearch(s.table, query)
}

func (s *Session) SortBy(column string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := table.SortBy(s.table, column)
	if err != nil {
		return err
	}
	s.table = next
	return nil
}

func (s *Session) SetPage(ctx context.Context, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table.SetPage(s.table, page, s.totalPagesLocked(ctx))
}

func (s *Session) NextPage(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table.NextPage(s.table, s.totalPagesLocked(ctx))
}

func (s *Session) PreviousPage(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table.PreviousPage(s.table, s.totalPagesLocked(ctx))
}

// Table returns the visible page of the filtered table. A page left out of
// range by a filter change is clamped and remembered.
func (s *Session) Table(ctx context.Context) (domain.TableView, domain.TableViewState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := table.View(s.filteredLocked(ctx), s.table)
	s.table.CurrentPage = v.CurrentPage
	return v, s.table
}

// Filtered returns the raw dataset narrowed by the active filters.
func (s *Session) Filtered(ctx context.Context) domain.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filteredLocked(ctx)
}

// Snapshot returns every aggregate of the filtered dataset.
func (s *Session) Snapshot(ctx context.Context) domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(ctx)
}

// RawSnapshot returns every aggregate of the unfiltered dataset.
func (s *Session) RawSnapshot(ctx context.Context) domain.Snapshot {
	raw, version := s.source.Dataset()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raw == nil || s.raw.version != version {
		s.raw = &rawView{version: version, snapshot: analytics.Compute(ctx, raw)}
	}
	return s.raw.snapshot
}

// Comparison returns the KPI of the period preceding the active date range,
// or nil when no comparison applies.
func (s *Session) Comparison(ctx context.Context) *domain.KPIComparison {
	s.mu.Lock()
	filters, mode := s.filters.Clone(), s.comparison
	s.mu.Unlock()

	shifted, ok := filter.Shift(filters.DateRange, mode)
	if !ok {
		return nil
	}
	raw, _ := s.source.Dataset()
	filters.DateRange = shifted
	return &domain.KPIComparison{
		Mode:     mode,
		Previous: analytics.ComputeKPI(ctx, filter.Apply(raw, filters)),
		Start:    shifted.Start,
		End:      shifted.End,
	}
}

func (s *Session) ExportCSV(ctx context.Context) (string, error) {
	return export.CSV(s.Filtered(ctx))
}

// Export renders the filtered dataset in format.
func (s *Session) Export(ctx context.Context, format export.Format) ([]byte, export.Exporter, error) {
	s.mu.Lock()
	data := &export.Data{
		Title:     reportTitle,
		Dataset:   s.filteredLocked(ctx),
		KPI:       s.snapshotLocked(ctx).KPI,
		Filters:   s.filters.Clone(),
		CreatedAt: s.now(),
	}
	s.mu.Unlock()

	return s.exports.Export(data, format)
}

// SubmitQuery answers query against the current filtered view. Blank queries
// are ignored and return nil.
func (s *Session) SubmitQuery(ctx context.Context, query string) *domain.Message {
	return s.chat.Submit(ctx, query, facts{s})
}

func (s *Session) ClickSuggestion(ctx context.Context, index int) (*domain.Message, bool) {
	return s.chat.ClickSuggestion(ctx, index, facts{s})
}

func (s *Session) Conversation() ([]domain.Message, bool) {
	return s.chat.Messages(), s.chat.Processing()
}

func (s *Session) OnChatChange(l chat.Listener) {
	s.chat.OnChange(l)
}

func (s *Session) Suggestions() []string {
	return chat.Suggestions()
}

func (s *Session) filteredLocked(ctx context.Context) domain.Dataset {
	raw, version := s.source.Dataset()
	key := s.filters.Key()
	if s.view != nil && s.view.version == version && s.view.key == key {
		return s.view.filtered
	}

	s.view = &view{version: version, key: key, filtered: filter.Apply(raw, s.filters)}
	zerolog.Ctx(ctx).Debug().
		Uint64("version", version).
		Int("rows", s.view.filtered.Len()).
		Msg("filtered dataset recomputed")
	return s.view.filtered
}

func (s *Session) snapshotLocked(ctx context.Context) domain.Snapshot {
	filtered := s.filteredLocked(ctx)
	if s.view.snapshot == nil {
		snap := analytics.Compute(ctx, filtered)
		s.view.snapshot = &snap
	}
	return *s.view.snapshot
}

func (s *Session) totalPagesLocked(ctx context.Context) int {
	rows := table.Search(s.filteredLocked(ctx).Transactions, s.table.SearchQuery)
	return table.TotalPages(len(rows), s.table.ItemsPerPage)
}

// facts lets the chat read the session's aggregates.
type facts struct {
	s *Session
}

func (f facts) Ready() bool {
	st := f.s.source.Status()
	return st.State == domain.LoadStateLoaded && st.Rows > 0
}

func (f facts) Snapshot(ctx context.Context) domain.Snapshot {
	return f.s.Snapshot(ctx)
}

func (f facts) RawSnapshot(ctx context.Context) domain.Snapshot {
	return f.s.RawSnapshot(ctx)
}
