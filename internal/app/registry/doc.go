// Package registry implements the generic CRUD list editor behind every
// module page.
//
// A State is a plain, JSON-serializable value holding one module's
// collection, its draft form and the optional edit target. Transitions
// (UpdateField, Submit, BeginEdit, Delete) never mutate their receiver; they
// return the next State, so callers decide when and where it is stored.
//
// Two modes exist. With no edit target the draft creates a record on Submit;
// after BeginEdit the draft replaces that record in place. Every Submit
// returns to create mode with an all-empty draft.
//
// Deleting the record that is currently being edited also resets the draft
// and leaves edit mode, so a later Submit can never bring the deleted id back.
package registry
