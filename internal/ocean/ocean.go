// Package ocean owns the squids of a document. Squids live in a
// generation-checked arena addressed by squid.Ref, so a ref to a removed
// squid stays dead instead of aliasing whatever reuses its slot. Layers
// keep the stacking order: within a layer the newest squid is on top.
package ocean

import (
	"github.com/example/squidpad/internal/camera"
	"github.com/example/squidpad/internal/squid"

	"honnef.co/go/curve"
)

// Layer is an ordered run of squids. New squids go in front, so the slice
// runs top of the stack to bottom.
type Layer struct {
	name   string
	squids []squid.Ref
}

// NewLayer returns an empty layer.
func NewLayer(name string) Layer {
	return Layer{name: name}
}

func (l *Layer) Name() string {
	return l.name
}

// Add puts ref on top of the layer.
func (l *Layer) Add(ref squid.Ref) {
	l.squids = append([]squid.Ref{ref}, l.squids...)
}

// RemoveMention drops every occurrence of ref from the layer.
func (l *Layer) RemoveMention(ref squid.Ref) {
	kept := l.squids[:0]
	for _, r := range l.squids {
		if r != ref {
			kept = append(kept, r)
		}
	}
	l.squids = kept
}

// Highest yields the layer's refs topmost first.
func (l *Layer) Highest() []squid.Ref {
	return l.squids
}

// Lowest yields the layer's refs bottommost first.
func (l *Layer) Lowest() []squid.Ref {
	reversed := make([]squid.Ref, len(l.squids))
	for i, r := range l.squids {
		reversed[len(l.squids)-1-i] = r
	}
	return reversed
}

func (l *Layer) clone() Layer {
	return Layer{name: l.name, squids: append([]squid.Ref(nil), l.squids...)}
}

type slot struct {
	squid      squid.Squid
	generation uint64
}

// Ocean is the arena every squid of a document lives in.
type Ocean struct {
	slots        []slot
	free         []int
	layers       []Layer
	currentLayer int
}

// New returns an empty ocean with a single default layer.
func New() *Ocean {
	return &Ocean{layers: []Layer{NewLayer("Default Layer")}}
}

// Insert adds s to the current layer, on top, and returns its ref.
func (o *Ocean) Insert(s squid.Squid) squid.Ref {
	var ref squid.Ref
	if n := len(o.free); n > 0 {
		i := o.free[n-1]
		o.free = o.free[:n-1]
		o.slots[i].squid = s
		ref = squid.Ref{Slot: i, Generation: o.slots[i].generation}
	} else {
		o.slots = append(o.slots, slot{squid: s, generation: 1})
		ref = squid.Ref{Slot: len(o.slots) - 1, Generation: 1}
	}

	o.forceValidLayer()
	o.layers[o.currentLayer].Add(ref)
	return ref
}

func (o *Ocean) forceValidLayer() {
	if len(o.layers) == 0 {
		o.layers = append(o.layers, NewLayer("Default Layer"))
	}
	if o.currentLayer >= len(o.layers) {
		o.currentLayer = len(o.layers) - 1
	}
}

// Remove deletes the squid ref points at. Removing an absent ref is a
// no-op. The slot's generation is bumped so the ref stays dead.
func (o *Ocean) Remove(ref squid.Ref) {
	if _, ok := o.Get(ref); !ok {
		return
	}
	for i := range o.layers {
		o.layers[i].RemoveMention(ref)
	}
	o.slots[ref.Slot].squid = nil
	o.slots[ref.Slot].generation++
	o.free = append(o.free, ref.Slot)
}

// Get resolves ref, reporting ok false when the squid is gone.
func (o *Ocean) Get(ref squid.Ref) (squid.Squid, bool) {
	if ref.Slot < 0 || ref.Slot >= len(o.slots) {
		return nil, false
	}
	s := o.slots[ref.Slot]
	if s.squid == nil || s.generation != ref.Generation {
		return nil, false
	}
	return s.squid, true
}

// Layers exposes the stacking order for layer UI.
func (o *Ocean) Layers() []Layer {
	return o.layers
}

// Highest yields every ref topmost first, the order hit tests walk.
func (o *Ocean) Highest() []squid.Ref {
	var refs []squid.Ref
	for i := range o.layers {
		refs = append(refs, o.layers[i].Highest()...)
	}
	return refs
}

// Lowest yields every ref bottommost first, the order rendering and export
// walk.
func (o *Ocean) Lowest() []squid.Ref {
	var refs []squid.Ref
	for i := len(o.layers) - 1; i >= 0; i-- {
		refs = append(refs, o.layers[i].Lowest()...)
	}
	return refs
}

// TrySelectResult is the outcome of a selection click: a new selection, an
// instruction to keep the current ones, or an instruction to drop them.
type TrySelectResult interface {
	trySelectResult()
}

// NewSelection carries the freshly hit squid.
type NewSelection struct {
	Selection squid.NewSelection
}

// Preserve keeps the existing selections untouched.
type Preserve struct{}

// Discard drops the existing selections.
type Discard struct{}

func (NewSelection) trySelectResult() {}
func (Preserve) trySelectResult()     {}
func (Discard) trySelectResult()      {}

// TrySelect resolves a selection click at a screen point. Squids are tried
// topmost first. Clicking the opaque handles of an already-selected squid
// preserves the selection even when another squid sits underneath, and so
// does re-clicking an already-selected squid's body.
func (o *Ocean) TrySelect(underneath curve.Point, cam camera.Camera, existing []squid.Selection) TrySelectResult {
	worldMouse := cam.Unapply(underneath)

	for _, ref := range o.Highest() {
		s, ok := o.Get(ref)
		if !ok {
			continue
		}
		alreadySelected := squid.SelectionsContain(existing, ref)

		if alreadySelected {
			for _, handle := range s.OpaqueHandles() {
				if handle.Distance(worldMouse) < 2*squid.HandleRadius {
					return Preserve{}
				}
			}
		}

		if sel, ok := s.TrySelect(underneath, cam, ref); ok {
			if alreadySelected {
				return Preserve{}
			}
			return NewSelection{Selection: sel}
		}
	}

	return Discard{}
}

// TryContextMenu asks the topmost squid under a screen point for its
// context menu.
func (o *Ocean) TryContextMenu(underneath curve.Point, cam camera.Camera) (squid.ContextMenu, bool) {
	for _, ref := range o.Highest() {
		s, ok := o.Get(ref)
		if !ok {
			continue
		}
		if menu, ok := s.TryContextMenu(underneath, cam, ref); ok {
			return menu, true
		}
	}
	return squid.ContextMenu{}, false
}

// Clone deep-copies the ocean. Refs resolve identically in the clone, so a
// snapshot restored from history keeps existing selections alive.
func (o *Ocean) Clone() *Ocean {
	clone := &Ocean{
		slots:        make([]slot, len(o.slots)),
		free:         append([]int(nil), o.free...),
		layers:       make([]Layer, len(o.layers)),
		currentLayer: o.currentLayer,
	}
	for i, s := range o.slots {
		clone.slots[i] = s
		if s.squid != nil {
			clone.slots[i].squid = s.squid.Clone()
		}
	}
	for i := range o.layers {
		clone.layers[i] = o.layers[i].clone()
	}
	return clone
}
