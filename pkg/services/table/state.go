package table

import (
	"fmt"
	"slices"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// NewState returns the initial table state: sorted by sales, descending, on
// the first page.
func NewState() domain.TableViewState {
	return domain.TableViewState{
		SortColumn:    domain.ColumnSales,
		SortDirection: domain.SortDesc,
		CurrentPage:   1,
		ItemsPerPage:  domain.DefaultItemsPerPage,
	}
}

// SetSearch stores query and goes back to the first page.
func SetSearch(s domain.TableViewState, query string) domain.TableViewState {
	s.SearchQuery = query
	s.CurrentPage = 1
	return s
}

// SortBy flips the direction when column is already active; a new column
// always starts descending.
func SortBy(s domain.TableViewState, column string) (domain.TableViewState, error) {
	if !slices.Contains(domain.DisplayColumns, column) {
		return s, fmt.Errorf("%w: %q", domain.ErrUnknownColumn, column)
	}
	if s.SortColumn == column {
		s.SortDirection = flip(s.SortDirection)
	} else {
		s.SortColumn = column
		s.SortDirection = domain.SortDesc
	}
	s.CurrentPage = 1
	return s, nil
}

func flip(d domain.SortDirection) domain.SortDirection {
	if d == domain.SortDesc {
		return domain.SortAsc
	}
	return domain.SortDesc
}

// SetPage moves to page, clamped into [1, totalPages].
func SetPage(s domain.TableViewState, page, totalPages int) domain.TableViewState {
	s.CurrentPage = clamp(page, totalPages)
	return s
}

// NextPage advances one page, staying on the last one.
func NextPage(s domain.TableViewState, totalPages int) domain.TableViewState {
	return SetPage(s, s.CurrentPage+1, totalPages)
}

// PreviousPage goes back one page, staying on the first one.
func PreviousPage(s domain.TableViewState, totalPages int) domain.TableViewState {
	return SetPage(s, s.CurrentPage-1, totalPages)
}

// TotalPages is never less than 1, even for an empty table.
func TotalPages(totalRows, perPage int) int {
	if perPage <= 0 {
		perPage = domain.DefaultItemsPerPage
	}
	return max(1, (totalRows+perPage-1)/perPage)
}

func clamp(page, totalPages int) int {
	return max(1, min(page, max(1, totalPages)))
}
