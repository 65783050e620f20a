package index

import "time"

// Collection partitions the index. User-authored projects live in "movies";
// reusable starter templates live in "assets" alongside other asset kinds.
type Collection string

const (
	CollectionMovies Collection = "movies"
	CollectionAssets Collection = "assets"
)

// Collections lists every partition, in delete-scan order.
func Collections() []Collection {
	return []Collection{CollectionMovies, CollectionAssets}
}

// Valid reports whether c names a known partition.
func (c Collection) Valid() bool {
	switch c {
	case CollectionMovies, CollectionAssets:
		return true
	}
	return false
}

// TypeMovie tags starter-template records so they can be told apart from
// other asset kinds sharing the assets collection.
const TypeMovie = "movie"

// Record is one project's metadata entry. It is derived state, recomputed
// from the stored document on every save; never edit fields independently of
// the document.
type Record struct {
	ID             string
	Collection     Collection
	Title          string
	Duration       float64
	DurationString string
	SceneCount     int
	Type           string
	Date           time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UpsertResult distinguishes a first insert from an overwrite of an existing
// record.
type UpsertResult int

const (
	Inserted UpsertResult = iota
	Updated
)

func (r UpsertResult) String() string {
	switch r {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	default:
		return "unknown"
	}
}

// Stats counts records per collection.
type Stats struct {
	Movies int
	Assets int
}
