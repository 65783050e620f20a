package movies

import "reelstore/internal/index"

// Kind says which partition a project belongs to. It is fixed at creation
// and carried explicitly through every operation that writes records.
type Kind int

const (
	// KindUserMovie is a user-authored project in the movies collection.
	KindUserMovie Kind = iota
	// KindStarterTemplate is a reusable template stored in the assets
	// collection and tagged so other asset kinds can share that partition.
	KindStarterTemplate
)

// KindForStarter maps the authoring tool's starter flag onto a Kind.
func KindForStarter(starter bool) Kind {
	if starter {
		return KindStarterTemplate
	}
	return KindUserMovie
}

// Collection returns the index partition for the kind.
func (k Kind) Collection() index.Collection {
	if k == KindStarterTemplate {
		return index.CollectionAssets
	}
	return index.CollectionMovies
}

// RecordType returns the type tag stored on the kind's records, empty for
// user movies.
func (k Kind) RecordType() string {
	if k == KindStarterTemplate {
		return index.TypeMovie
	}
	return ""
}

func (k Kind) String() string {
	if k == KindStarterTemplate {
		return "starter-template"
	}
	return "user-movie"
}
