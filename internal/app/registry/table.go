package registry

import (
	"github.com/yigit/unidb/internal/app/models"
)

// ActionsColumn is the trailing header holding the row buttons
const ActionsColumn = "Actions"

// Table is the rendered projection of a registry
type Table struct {
	Columns     []string     `json:"columns"`
	Rows        []Row        `json:"rows"`
	Placeholder *Placeholder `json:"placeholder,omitempty"`
}

// Row is one record's cells in schema order
type Row struct {
	ID    int64    `json:"id"`
	Cells []string `json:"cells"`
}

// Placeholder is the single row shown for an empty collection
type Placeholder struct {
	Text    string `json:"text"`
	ColSpan int    `json:"colSpan"`
}

// Table projects the collection in insertion order
func (s State) Table(m models.Module) Table {
	t := Table{Columns: make([]string, 0, len(m.Fields)+1)}
	for _, f := range m.Fields {
		t.Columns = append(t.Columns, f.Column)
	}
	t.Columns = append(t.Columns, ActionsColumn)

	if len(s.Collection) == 0 {
		t.Placeholder = &Placeholder{Text: m.EmptyText(), ColSpan: len(t.Columns)}
		return t
	}

	t.Rows = make([]Row, 0, len(s.Collection))
	for _, r := range s.Collection {
		row := Row{ID: r.ID, Cells: make([]string, len(m.Fields))}
		for i, f := range m.Fields {
			row.Cells[i] = r.Get(f.Name)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
