package domain

// Document represents one retrievable unit of corpus text.
// It is created by the corpus loader, one per logical row, and is
// immutable after creation.
type Document struct {
	// ID is the unique identifier for the document.
	// Derived deterministically from the row position so that identical
	// corpus bytes always yield identical documents.
	ID string

	// Row is the 1-based data row number in the corpus file.
	Row int

	// Content is the embeddable text: one "column: value" line per
	// column, in header order.
	Content string

	// Metadata contains arbitrary key-value pairs (source path, row number).
	Metadata map[string]any
}
