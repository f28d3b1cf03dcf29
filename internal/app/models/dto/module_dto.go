package dto

import (
	"github.com/yigit/unidb/internal/app/models"
	"github.com/yigit/unidb/internal/app/registry"
)

// ModuleResponse describes one module for navigation and form building
type ModuleResponse struct {
	Name     string         `json:"name" example:"students"`
	Path     string         `json:"path" example:"/students"`
	Title    string         `json:"title" example:"Students"`
	Singular string         `json:"singular" example:"Student"`
	Fields   []models.Field `json:"fields"`
}

// RecordResponse is one record of a registry
type RecordResponse struct {
	ID     int64             `json:"id" example:"1"`
	Fields map[string]string `json:"fields"`
}

// RegistryResponse is a module's full registry snapshot
type RegistryResponse struct {
	Module     string            `json:"module" example:"students"`
	Mode       registry.Mode     `json:"mode" example:"create"`
	EditTarget *int64            `json:"editTarget"`
	Draft      map[string]string `json:"draft"`
	Records    []RecordResponse  `json:"records"`
	Table      registry.Table    `json:"table"`
}

// FromModule converts a models.Module to a ModuleResponse
func FromModule(m models.Module) ModuleResponse {
	return ModuleResponse{
		Name:     m.Name,
		Path:     m.Path,
		Title:    m.Title,
		Singular: m.Singular,
		Fields:   m.Fields,
	}
}

// FromModules converts the navigation table
func FromModules(modules []models.Module) []ModuleResponse {
	out := make([]ModuleResponse, 0, len(modules))
	for _, m := range modules {
		out = append(out, FromModule(m))
	}
	return out
}

// FromState converts a registry.State to a RegistryResponse
func FromState(m models.Module, s registry.State) RegistryResponse {
	records := make([]RecordResponse, 0, len(s.Collection))
	for _, r := range s.Collection {
		records = append(records, RecordResponse{ID: r.ID, Fields: r.Fields})
	}
	return RegistryResponse{
		Module:     m.Name,
		Mode:       s.Mode(),
		EditTarget: s.EditTarget,
		Draft:      s.Draft,
		Records:    records,
		Table:      s.Table(m),
	}
}
