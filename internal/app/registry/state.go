package registry

import (
	"maps"
	"slices"

	"github.com/yigit/unidb/internal/app/models"
)

// Mode is the draft's current purpose
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Record is one entity instance
type Record struct {
	ID     int64             `json:"id"`
	Fields map[string]string `json:"fields"`
}

// Get returns the value of a field, empty when unset
func (r Record) Get(name string) string {
	return r.Fields[name]
}

// State is the full registry of one module instance
type State struct {
	Fields     []string          `json:"fields"`
	Collection []Record          `json:"collection"`
	Draft      map[string]string `json:"draft"`
	EditTarget *int64            `json:"editTarget,omitempty"`
	LastID     int64             `json:"lastId"`
}

// New returns an empty registry for the module's schema
func New(m models.Module) State {
	fields := m.FieldNames()
	return State{
		Fields:     fields,
		Collection: []Record{},
		Draft:      emptyDraft(fields),
	}
}

func emptyDraft(fields []string) map[string]string {
	draft := make(map[string]string, len(fields))
	for _, f := range fields {
		draft[f] = ""
	}
	return draft
}

// Mode reports whether the draft creates or edits a record
func (s State) Mode() Mode {
	if s.EditTarget != nil {
		return ModeEdit
	}
	return ModeCreate
}

// Len returns the number of records
func (s State) Len() int {
	return len(s.Collection)
}

// Find returns the record with the given id
func (s State) Find(id int64) (Record, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Collection[i], true
	}
	return Record{}, false
}

// Missing lists the schema fields whose draft value is empty, in schema order
func (s State) Missing() []string {
	var missing []string
	for _, f := range s.Fields {
		if s.Draft[f] == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// UpdateField sets one draft value
func (s State) UpdateField(name, value string) State {
	next := s.clone()
	next.Draft[name] = value
	return next
}

// Submit commits the draft. In create mode a record with a fresh id is
// appended; in edit mode the target is replaced in place. If the target is
// gone nothing is written. Either way the draft is cleared and edit mode ends.
func (s State) Submit() State {
	next := s.clone()
	fields := next.draftFields()

	if next.EditTarget == nil {
		next.LastID++
		next.Collection = append(next.Collection, Record{ID: next.LastID, Fields: fields})
	} else if i := next.indexOf(*next.EditTarget); i >= 0 {
		next.Collection[i] = Record{ID: *next.EditTarget, Fields: fields}
	}

	next.reset()
	return next
}

// BeginEdit loads a record into the draft. ok is false, and the state is
// returned unchanged, when no record has that id.
func (s State) BeginEdit(id int64) (State, bool) {
	rec, found := s.Find(id)
	if !found {
		return s, false
	}
	next := s.clone()
	next.Draft = emptyDraft(next.Fields)
	for _, f := range next.Fields {
		next.Draft[f] = rec.Fields[f]
	}
	target := id
	next.EditTarget = &target
	return next, true
}

// Delete removes the record with the given id; absent ids are a no-op.
func (s State) Delete(id int64) State {
	i := s.indexOf(id)
	if i < 0 {
		return s
	}
	next := s.clone()
	next.Collection = slices.Delete(next.Collection, i, i+1)
	if next.EditTarget != nil && *next.EditTarget == id {
		next.reset()
	}
	return next
}

func (s State) indexOf(id int64) int {
	return slices.IndexFunc(s.Collection, func(r Record) bool { return r.ID == id })
}

// draftFields copies the schema fields out of the draft
func (s State) draftFields() map[string]string {
	fields := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		fields[f] = s.Draft[f]
	}
	return fields
}

func (s *State) reset() {
	s.Draft = emptyDraft(s.Fields)
	s.EditTarget = nil
}

// clone deep-copies everything a transition may touch
func (s State) clone() State {
	next := State{
		Fields:     slices.Clone(s.Fields),
		Collection: make([]Record, len(s.Collection)),
		Draft:      maps.Clone(s.Draft),
		LastID:     s.LastID,
	}
	if next.Draft == nil {
		next.Draft = emptyDraft(next.Fields)
	}
	for i, r := range s.Collection {
		next.Collection[i] = Record{ID: r.ID, Fields: maps.Clone(r.Fields)}
	}
	if s.EditTarget != nil {
		target := *s.EditTarget
		next.EditTarget = &target
	}
	return next
}
