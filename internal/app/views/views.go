// Package views renders the navigation shell and module pages from embedded
// html/template files.
package views

import (
	"embed"
	"html/template"

	"github.com/yigit/unidb/internal/app/models"
	"github.com/yigit/unidb/internal/app/registry"
)

// Template names
const (
	WelcomeTemplate = "welcome.html"
	ModuleTemplate  = "module.html"
	ErrorTemplate   = "error.html"
)

const (
	AppTitle       = "University Database System"
	WelcomeMessage = "Welcome! Select a module above."
)

//go:embed templates/*.html
var files embed.FS

// Load parses every embedded template
func Load() (*template.Template, error) {
	return template.New("views").ParseFS(files, "templates/*.html")
}

// NavItem is one link of the navigation bar
type NavItem struct {
	Title  string
	Path   string
	Active bool
}

// FormField is one input of a module form
type FormField struct {
	Name    string
	Label   string
	Kind    models.InputKind
	Value   string
	Missing bool
}

// ModulePage is the form and table of one module
type ModulePage struct {
	Heading     string
	Action      string
	Fields      []FormField
	EditMode    bool
	SubmitLabel string
	Table       registry.Table
	Error       string
}

// Page is the data every template receives
type Page struct {
	AppTitle string
	Nav      []NavItem
	Welcome  string
	Message  string
	Module   *ModulePage
}

// Nav builds the navigation bar, marking the module named active
func Nav(modules []models.Module, active string) []NavItem {
	items := make([]NavItem, 0, len(modules))
	for _, m := range modules {
		items = append(items, NavItem{Title: m.Title, Path: m.Path, Active: m.Name == active})
	}
	return items
}

// NewWelcomePage is the page served at "/"
func NewWelcomePage(modules []models.Module) Page {
	return Page{AppTitle: AppTitle, Nav: Nav(modules, ""), Welcome: WelcomeMessage}
}

// NewErrorPage shows message inside the shell
func NewErrorPage(modules []models.Module, message string) Page {
	return Page{AppTitle: AppTitle, Nav: Nav(modules, ""), Message: message}
}

// NewModulePage projects a registry into its page. errMsg and missing come
// from a refused submission and may be empty.
func NewModulePage(modules []models.Module, m models.Module, s registry.State, errMsg string, missing []string) Page {
	flagged := make(map[string]bool, len(missing))
	for _, name := range missing {
		flagged[name] = true
	}

	fields := make([]FormField, 0, len(m.Fields))
	for _, f := range m.Fields {
		fields = append(fields, FormField{
			Name:    f.Name,
			Label:   f.Label,
			Kind:    f.Kind,
			Value:   s.Draft[f.Name],
			Missing: flagged[f.Name],
		})
	}

	editMode := s.Mode() == registry.ModeEdit
	label := "Add " + m.Singular
	if editMode {
		label = "Update " + m.Singular
	}

	return Page{
		AppTitle: AppTitle,
		Nav:      Nav(modules, m.Name),
		Module: &ModulePage{
			Heading:     m.Title + " Module",
			Action:      m.Path,
			Fields:      fields,
			EditMode:    editMode,
			SubmitLabel: label,
			Table:       s.Table(m),
			Error:       errMsg,
		},
	}
}
