package binding

import (
	"time"

	"github.com/andygello555/json-bind/dom"
	"github.com/andygello555/json-bind/dom/node"
)

// Breaks a combined scalar into its named parts, keyed by the leaf key of each part path.
// Returning ok=false skips the cascade (best-effort, like everything else in the store).
type Splitter func(combined node.Value) (parts map[string]node.Value, ok bool)

// Joins the named parts (keyed by the leaf key of each part path) back into the combined scalar.
// Returning ok=false skips the cascade.
type Joiner func(parts map[string]node.Value) (combined node.Value, ok bool)

// A two-way binding between one combined path and a set of part paths within the same document.
//
// Writing the combined value cascades to the parts; writing any part cascades back to the combined
// value. Both directions run under a single reentrancy Guard so an update from either side converges
// in one notification cycle. The binding observes the document through an ordinary document
// subscription, so it inherits the static wiring snapshot: re-wire the document after structural
// changes around the bound paths.
type SplitBinding struct {
	doc          *dom.Document
	combinedPath string
	partPaths    []string
	split        Splitter
	join         Joiner
	guard        Guard
	token        string
}

// Wires a two-way binding between combinedPath and partPaths through the given Splitter/Joiner.
// If the combined value is already present it is cascaded to the parts immediately, the way a UI
// binding populates its widgets on attach.
// Returns a pointer to the SplitBinding; call Close to detach it.
func Bind(doc *dom.Document, combinedPath string, partPaths []string, split Splitter, join Joiner) *SplitBinding {
	b := &SplitBinding{
		doc:          doc,
		combinedPath: combinedPath,
		partPaths:    partPaths,
		split:        split,
		join:         join,
	}
	b.token = doc.Subscribe(b.onChange)
	if doc.Has(combinedPath) {
		b.guard.Do(b.cascadeToParts)
	}
	return b
}

// Detaches the binding from its document. Returns true if it was still attached.
func (b *SplitBinding) Close() bool {
	return b.doc.Unsubscribe(b.token)
}

func (b *SplitBinding) onChange(change node.Change) {
	if change.Op == node.OpClear {
		return
	}
	if b.matches(change, b.combinedPath) {
		b.guard.Do(b.cascadeToParts)
		return
	}
	for _, partPath := range b.partPaths {
		if b.matches(change, partPath) {
			b.guard.Do(b.cascadeToCombined)
			return
		}
	}
}

// A change matches a path when it hit the path's leaf key on the Object the path's parent chain
// resolves to.
func (b *SplitBinding) matches(change node.Change, path string) bool {
	parent, leaf, ok := dom.ParentOf(b.doc.Root(), path)
	return ok && change.Node == parent && change.Key == leaf
}

func (b *SplitBinding) cascadeToParts() {
	parts, ok := b.split(b.doc.Get(b.combinedPath))
	if !ok {
		return
	}
	for _, partPath := range b.partPaths {
		if value, exists := parts[leafKey(partPath)]; exists {
			b.doc.Set(partPath, value)
		}
	}
}

func (b *SplitBinding) cascadeToCombined() {
	parts := make(map[string]node.Value, len(b.partPaths))
	for _, partPath := range b.partPaths {
		parts[leafKey(partPath)] = b.doc.Get(partPath)
	}
	combined, ok := b.join(parts)
	if !ok {
		return
	}
	b.doc.Set(b.combinedPath, combined)
}

func leafKey(path string) string {
	segments := dom.ParsePath(path)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1].Key
}

// Layouts for the combined and split date/time representations used by BindDateTime.
const (
	DateTimeLayout = "2006-01-02T15:04"
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
)

// Binds a combined "2006-01-02T15:04" value to separate date-part and time-part values: the classic
// date/time picker pair. Unparseable values on either side skip the cascade rather than erroring.
func BindDateTime(doc *dom.Document, combinedPath, datePath, timePath string) *SplitBinding {
	dateKey, timeKey := leafKey(datePath), leafKey(timePath)

	split := func(combined node.Value) (map[string]node.Value, bool) {
		s, isStr := combined.(string)
		if !isStr {
			return nil, false
		}
		t, err := time.Parse(DateTimeLayout, s)
		if err != nil {
			return nil, false
		}
		return map[string]node.Value{
			dateKey: t.Format(DateLayout),
			timeKey: t.Format(TimeLayout),
		}, true
	}

	join := func(parts map[string]node.Value) (node.Value, bool) {
		datePart, dateOk := parts[dateKey].(string)
		timePart, timeOk := parts[timeKey].(string)
		if !dateOk || !timeOk {
			return nil, false
		}
		combined := datePart + "T" + timePart
		if _, err := time.Parse(DateTimeLayout, combined); err != nil {
			return nil, false
		}
		return combined, true
	}

	return Bind(doc, combinedPath, []string{datePath, timePath}, split, join)
}
