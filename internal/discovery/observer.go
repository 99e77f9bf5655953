package discovery

import "github.com/jokarl/branchsource/internal/scm"

// Observer receives discovered heads.
type Observer interface {
	// Observe is called once per discovered head.
	Observe(head scm.Head, rev scm.Revision)

	// IsObserving is checked before every call to Observe. Once it returns
	// false the run ends.
	IsObserving() bool
}

// NamedObserver looks for a single head by name and stops once found.
type NamedObserver struct {
	name   string
	result scm.Revision
}

// NewNamedObserver returns an observer searching for the head called name.
func NewNamedObserver(name string) *NamedObserver {
	return &NamedObserver{name: name}
}

func (o *NamedObserver) Observe(head scm.Head, rev scm.Revision) {
	if head.HeadName() == o.name {
		o.result = rev
	}
}

func (o *NamedObserver) IsObserving() bool {
	return o.result == nil
}

// Result returns the revision of the named head, or nil if it was not found.
func (o *NamedObserver) Result() scm.Revision {
	return o.result
}

// CollectingObserver records every observed revision. With a positive Limit
// it stops after that many.
type CollectingObserver struct {
	Limit     int
	Revisions []scm.Revision
}

func (o *CollectingObserver) Observe(_ scm.Head, rev scm.Revision) {
	o.Revisions = append(o.Revisions, rev)
}

func (o *CollectingObserver) IsObserving() bool {
	return o.Limit <= 0 || len(o.Revisions) < o.Limit
}

// Heads returns the heads of the collected revisions, in discovery order.
func (o *CollectingObserver) Heads() []scm.Head {
	heads := make([]scm.Head, 0, len(o.Revisions))
	for _, rev := range o.Revisions {
		heads = append(heads, rev.RevisionHead())
	}
	return heads
}
