package types

type EntryType string

const (
	ENTRY_TYPE_PHOTO EntryType = "photo"
	ENTRY_TYPE_QUOTE EntryType = "quote"
)

func (t EntryType) Valid() bool {
	return t == ENTRY_TYPE_PHOTO || t == ENTRY_TYPE_QUOTE
}

// Entry is one dated memory, a photo set or a quote.
// HappenedOn is the calendar date the memory belongs to, it is the grouping
// key and independent from CreatedAt.
type Entry struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Type       EntryType `json:"type" db:"type"`
	Text       *string   `json:"text" db:"text"`
	HappenedOn string    `json:"happened_on" db:"happened_on"`
	CreatedAt  int64     `json:"created_at" db:"created_at"`
}

// EntryImage references one private object in the memories bucket.
// StoragePath is not a public identifier, reads go through signed urls.
type EntryImage struct {
	ID          string `json:"id" db:"id"`
	EntryID     string `json:"entry_id" db:"entry_id"`
	StoragePath string `json:"storage_path" db:"storage_path"`
	CreatedAt   int64  `json:"created_at" db:"created_at"`
}

// EntryDetail is the render shape for one day's card: the entry row, its
// image rows in insertion order and the resolved signed urls. URL slots for
// failed resolutions hold nil and are filtered before display.
type EntryDetail struct {
	Entry
	Images    []EntryImage `json:"images"`
	ImageURLs []string     `json:"image_urls"`
}

// FileManagement records every upload key handed to a client so objects that
// never get attached to an entry can be reconciled later.
type FileManagement struct {
	ID        int64  `json:"id" db:"id"`
	UserID    string `json:"user_id" db:"user_id"`
	File      string `json:"file" db:"file"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

// OrphanObject is a storage object whose removal failed during entry delete.
// Rows are retried by the reconcile pass at boot.
type OrphanObject struct {
	ID          int64  `json:"id" db:"id"`
	StoragePath string `json:"storage_path" db:"storage_path"`
	CreatedAt   int64  `json:"created_at" db:"created_at"`
}
