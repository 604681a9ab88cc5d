// Package sheets defines the ports for the tabular range store backing the
// dashboard. Aggregators depend on the narrow interfaces; adapters live in
// the google and memory subpackages.
package sheets

import (
	"context"
	"errors"
)

// ErrTabNotFound marks a read or write against a tab that does not exist.
// Read paths treat it as "uninitialized" and return zeroed documents; the
// bootstrap routine is the remediation.
var ErrTabNotFound = errors.New("sheet tab not found")

// Ports for outbound adapters. Ranges use A1 notation without the tab name;
// the tab is passed separately.
type (
	RangeReader interface {
		// ReadRange returns the cells of tab!a1Range as trimmed strings.
		// Rows may be ragged: trailing empty cells are not padded.
		ReadRange(ctx context.Context, tab, a1Range string) ([][]string, error)
	}

	RowAppender interface {
		// AppendRow appends one row after the last occupied row of
		// tab!a1Range.
		AppendRow(ctx context.Context, tab, a1Range string, row []any) error
	}

	RowUpdater interface {
		// UpdateRow overwrites the cells of tab!a1Range with row.
		UpdateRow(ctx context.Context, tab, a1Range string, row []any) error
	}

	RangeClearer interface {
		// ClearRange blanks the cells of tab!a1Range without removing rows.
		ClearRange(ctx context.Context, tab, a1Range string) error
	}

	TabManager interface {
		// ListTabs returns the titles of every tab in the spreadsheet.
		ListTabs(ctx context.Context) ([]string, error)
		// CreateTab adds a tab with a header row. Creating a tab that
		// already exists is an error; callers check ListTabs first.
		CreateTab(ctx context.Context, name string, header []string) error
	}

	// ReadWriter covers the row-level operations every mutation needs.
	ReadWriter interface {
		RangeReader
		RowAppender
		RowUpdater
		RangeClearer
	}

	// Store is the full surface, satisfied by both adapters.
	Store interface {
		ReadWriter
		TabManager
	}
)

// IsNotFound reports whether err stems from a missing tab.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTabNotFound)
}
