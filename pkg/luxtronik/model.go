package luxtronik

import (
	"fmt"
	"strings"
)

// group tags used in dotted identifiers like "calculations.ID_WEB_Temperatur_TVL"
const (
	GroupParameters   = "parameters"
	GroupCalculations = "calculations"
	GroupVisibilities = "visibilities"
)

// Entry describes one slot of a data vector.
type Entry struct {
	Index    int
	Name     string
	Kind     Kind
	Writable bool
}

// Vector is one of the three data blocks of the controller. It holds the
// last raw words read from the device plus the name table used to decode
// them. Unmapped indices decode as KindUnknown.
type Vector struct {
	entries []Entry
	byName  map[string]Entry
	byIndex map[int]Entry
	raw     []int32
}

func newVector(entries []Entry) *Vector {
	v := &Vector{
		entries: entries,
		byName:  make(map[string]Entry, len(entries)),
		byIndex: make(map[int]Entry, len(entries)),
	}
	for _, e := range entries {
		v.byName[e.Name] = e
		v.byIndex[e.Index] = e
	}
	return v
}

func (v *Vector) load(raw []int32) {
	v.raw = raw
}

// Len returns the number of words read from the device.
func (v *Vector) Len() int {
	return len(v.raw)
}

// Get returns the decoded value for a known name. The second return is
// false if the name is unknown or lies outside the vector read from the
// device.
func (v *Vector) Get(name string) (Value, bool) {
	e, ok := v.byName[name]
	if !ok || e.Index >= len(v.raw) {
		return Value{}, false
	}
	return Value{Kind: e.Kind, Raw: v.raw[e.Index]}, true
}

// GetIndex decodes by slot number, falling back to KindUnknown for
// indices without a table entry.
func (v *Vector) GetIndex(index int) (Value, bool) {
	if index < 0 || index >= len(v.raw) {
		return Value{}, false
	}
	kind := KindUnknown
	if e, ok := v.byIndex[index]; ok {
		kind = e.Kind
	}
	return Value{Kind: kind, Raw: v.raw[index]}, true
}

// Names lists the known entry names in vector order.
func (v *Vector) Names() []string {
	names := make([]string, 0, len(v.entries))
	for _, e := range v.entries {
		names = append(names, e.Name)
	}
	return names
}

func (v *Vector) lookup(name string) (Entry, bool) {
	e, ok := v.byName[name]
	return e, ok
}

// decode snapshots the vector into a plain name -> value map.
func (v *Vector) decode() map[string]Value {
	out := make(map[string]Value, len(v.entries))
	for _, e := range v.entries {
		if e.Index < len(v.raw) {
			out[e.Name] = Value{Kind: e.Kind, Raw: v.raw[e.Index]}
		}
	}
	return out
}

// ParseID splits a dotted "group.sensor" identifier. Identifiers without
// exactly one dot or with an unknown group tag are rejected.
func ParseID(id string) (group string, sensor string, err error) {
	parts := strings.SplitN(id, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("luxtronik: malformed sensor id %q", id)
	}
	switch parts[0] {
	case GroupParameters, GroupCalculations, GroupVisibilities:
		return parts[0], parts[1], nil
	default:
		return "", "", fmt.Errorf("luxtronik: unknown group %q", parts[0])
	}
}
