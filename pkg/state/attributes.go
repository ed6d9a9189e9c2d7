package state

import (
	"github.com/vanderheijden86/stackview/pkg/geometry"
	"github.com/vanderheijden86/stackview/pkg/layout"
)

// Attributes describes one element's resolved geometry for the host's
// rendering layer. It carries the viewport values the consumer needs
// so rendering does not have to re-query the host.
//
// Attribute pointers are identity-stable: querying the same element of
// the same snapshot twice returns the same *Attributes, so the host's
// animation system can recognize an element across queries.
type Attributes struct {
	ID        layout.ID
	Kind      layout.ItemKind
	Path      layout.ItemPath
	Frame     geometry.Rect
	Alignment layout.Alignment
	Pinned    bool

	ViewSize         geometry.Size
	ContentInsets    geometry.Insets
	AdditionalInsets geometry.Insets
}

// attrKey addresses one cached attribute object within a snapshot.
type attrKey struct {
	kind layout.ItemKind
	path layout.ItemPath
}

// rectCacheEntry holds the static (non-pinned) attributes computed for
// a superset rect. The entry answers any query whose rect is contained
// in Rect; pinned attributes are always recomputed because their
// frames depend on the live viewport top.
type rectCacheEntry struct {
	Rect  geometry.Rect
	Attrs []*Attributes
}

// stateCaches is the per-snapshot cache table: the rect-result cache
// and the identity-stable attribute-object cache. Both are cleared
// wholesale on any mutation of the snapshot; on commit the afterUpdate
// table is promoted to beforeUpdate.
type stateCaches struct {
	rect    *rectCacheEntry
	objects map[attrKey]*Attributes
}

func newStateCaches() *stateCaches {
	return &stateCaches{objects: make(map[attrKey]*Attributes)}
}

func (c *stateCaches) reset() {
	c.rect = nil
	c.objects = make(map[attrKey]*Attributes)
}
