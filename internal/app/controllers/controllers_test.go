package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/unidb/internal/app/controllers"
	"github.com/yigit/unidb/internal/app/models"
	"github.com/yigit/unidb/internal/app/models/dto"
	"github.com/yigit/unidb/internal/app/registry"
	"github.com/yigit/unidb/internal/app/repositories"
	"github.com/yigit/unidb/internal/app/routes"
	"github.com/yigit/unidb/internal/app/services"
	"github.com/yigit/unidb/internal/app/views"
	"github.com/yigit/unidb/internal/middleware"
)

const cookieName = "unidb_session"

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := services.NewEntityService(repositories.NewSessionRepository(), nil, zerolog.Nop())

	router := gin.New()
	router.Use(middleware.Session(middleware.SessionConfig{CookieName: cookieName}))
	tmpl, err := views.Load()
	require.NoError(t, err)
	router.SetHTMLTemplate(tmpl)

	routes.SetupRouter(router, models.Modules, controllers.NewPageController(svc), controllers.NewModuleController(svc))
	return router
}

// client replays the session cookie it was handed on the first response
type client struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func newClient(t *testing.T, router *gin.Engine) *client {
	return &client{t: t, router: router}
}

func (c *client) do(method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == cookieName {
			c.cookie = ck
		}
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, "", nil)
}

func (c *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

func (c *client) sendJSON(method, path string, payload interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	if payload == nil {
		return c.do(method, path, "", nil)
	}
	raw, err := json.Marshal(payload)
	require.NoError(c.t, err)
	return c.do(method, path, "application/json", bytes.NewReader(raw))
}

type registryEnvelope struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    dto.RegistryResponse `json:"data"`
}

func decodeRegistry(t *testing.T, w *httptest.ResponseRecorder) dto.RegistryResponse {
	t.Helper()
	var env registryEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.True(t, env.Success)
	return env.Data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var env dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.NotNil(t, env.Error)
	return env
}

func studentForm(id, name, year, major string) url.Values {
	return url.Values{"student_id": {id}, "name": {name}, "year": {year}, "major": {major}}
}

func TestWelcomePage(t *testing.T) {
	c := newClient(t, newRouter(t))

	w := c.get("/")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "University Database System")
	assert.Contains(t, body, "Welcome! Select a module above.")

	last := -1
	for _, m := range models.Modules {
		idx := strings.Index(body, `href="`+m.Path+`"`)
		require.Greater(t, idx, last, "nav link for %s out of order", m.Path)
		last = idx
	}

	require.NotNil(t, c.cookie)
	assert.True(t, c.cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.cookie.SameSite)
}

func TestEmptyModuleRendersPlaceholder(t *testing.T) {
	c := newClient(t, newRouter(t))

	tests := []struct {
		path    string
		colspan string
		text    string
	}{
		{"/professors", "5", "No professors added yet."},
		{"/students", "5", "No students added yet."},
		{"/courses", "5", "No courses added yet."},
		{"/degrees", "4", "No degrees added yet."},
		{"/departments", "4", "No departments added yet."},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := c.get(tt.path)
			require.Equal(t, http.StatusOK, w.Code)

			body := w.Body.String()
			assert.Contains(t, body, `<td colspan="`+tt.colspan+`" class="text-center">`+tt.text+`</td>`)
			assert.Equal(t, 1, strings.Count(body, "<tbody>"))
			assert.NotContains(t, body, ">Edit</button>")
			assert.NotContains(t, body, ">Delete</button>")
		})
	}
}

func TestModulePageForm(t *testing.T) {
	c := newClient(t, newRouter(t))

	w := c.get("/professors")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Professors Module")
	assert.Contains(t, body, `<label class="form-label" for="field-prof_name">Professor Name</label>`)
	assert.Contains(t, body, `<th>Name</th>`)
	assert.Contains(t, body, `<th>Actions</th>`)
	assert.Contains(t, body, `class="btn btn-primary">Add Professor</button>`)
	assert.Equal(t, 4, strings.Count(body, " required>"))
}

func TestStudentScenarioOverHTML(t *testing.T) {
	c := newClient(t, newRouter(t))

	w := c.postForm("/students", studentForm("S1", "Ann", "2", "CS"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/students", w.Header().Get("Location"))

	body := c.get("/students").Body.String()
	assert.Contains(t, body, `<tr data-record-id="1">`)
	assert.Contains(t, body, `<td>Ann</td>`)
	assert.NotContains(t, body, "No students added yet.")
	assert.Contains(t, body, `action="/students/1/edit"`)
	assert.Contains(t, body, `action="/students/1/delete"`)

	w = c.postForm("/students/1/edit", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	body = c.get("/students").Body.String()
	assert.Contains(t, body, `name="name" value="Ann"`)
	assert.Contains(t, body, `class="btn btn-warning">Update Student</button>`)

	w = c.postForm("/students", studentForm("S1", "Annie", "2", "CS"))
	require.Equal(t, http.StatusSeeOther, w.Code)

	body = c.get("/students").Body.String()
	assert.Contains(t, body, `<td>Annie</td>`)
	assert.NotContains(t, body, `<td>Ann</td>`)
	assert.Equal(t, 1, strings.Count(body, "data-record-id="))
	assert.Contains(t, body, `<tr data-record-id="1">`)
	assert.Contains(t, body, `class="btn btn-primary">Add Student</button>`)

	w = c.postForm("/students/1/delete", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	body = c.get("/students").Body.String()
	assert.Contains(t, body, `<td colspan="5" class="text-center">No students added yet.</td>`)
}

func TestSubmitWithEmptyFieldKeepsDraft(t *testing.T) {
	c := newClient(t, newRouter(t))

	form := url.Values{"course_id": {"C1"}, "course_name": {""}, "dept_id": {"D1"}, "credits": {"3"}}
	w := c.postForm("/courses", form)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `name="course_id" value="C1"`)
	assert.Contains(t, body, `class="form-control is-invalid" type="text" id="field-course_name"`)
	assert.Contains(t, body, "No courses added yet.")

	body = c.get("/courses").Body.String()
	assert.Contains(t, body, `name="credits" value="3"`)
	assert.Equal(t, 0, strings.Count(body, "data-record-id="))
}

func TestEditUnknownRecord(t *testing.T) {
	c := newClient(t, newRouter(t))

	w := c.postForm("/degrees/42/edit", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "alert-warning")

	w = c.postForm("/degrees/abc/edit", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.postForm("/degrees/42/delete", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	router := newRouter(t)
	first := newClient(t, router)
	second := newClient(t, router)

	first.get("/departments")
	second.get("/departments")
	require.NotEqual(t, first.cookie.Value, second.cookie.Value)

	first.postForm("/departments", url.Values{"dept_id": {"D1"}, "dept_name": {"Physics"}, "location": {"North"}})

	assert.Contains(t, first.get("/departments").Body.String(), "<td>Physics</td>")
	assert.Contains(t, second.get("/departments").Body.String(), "No departments added yet.")
}

func TestUnknownPage(t *testing.T) {
	c := newClient(t, newRouter(t))

	w := c.get("/faculties")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found.")
}

func TestListModulesAPI(t *testing.T) {
	c := newClient(t, newRouter(t))

	w := c.get("/api/v1/modules")
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Success bool                 `json:"success"`
		Data    []dto.ModuleResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data, len(models.Modules))
	for i, m := range models.Modules {
		assert.Equal(t, m.Name, env.Data[i].Name)
		assert.Equal(t, m.Fields, env.Data[i].Fields)
	}
}

func TestRegistryAPIScenario(t *testing.T) {
	c := newClient(t, newRouter(t))

	w := c.get("/api/v1/modules/students")
	require.Equal(t, http.StatusOK, w.Code)
	reg := decodeRegistry(t, w)
	assert.Equal(t, registry.ModeCreate, reg.Mode)
	assert.Empty(t, reg.Records)
	require.NotNil(t, reg.Table.Placeholder)
	assert.Equal(t, 5, reg.Table.Placeholder.ColSpan)

	for field, value := range map[string]string{"student_id": "S1", "name": "Ann", "year": "2", "major": "CS"} {
		value := value
		w = c.sendJSON(http.MethodPut, "/api/v1/modules/students/draft", dto.UpdateFieldRequest{Field: field, Value: &value})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = c.sendJSON(http.MethodPost, "/api/v1/modules/students/submit", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	reg = decodeRegistry(t, w)
	require.Len(t, reg.Records, 1)
	assert.Equal(t, int64(1), reg.Records[0].ID)
	assert.Equal(t, "Ann", reg.Records[0].Fields["name"])
	assert.Equal(t, "", reg.Draft["name"])

	w = c.sendJSON(http.MethodPost, "/api/v1/modules/students/records/1/edit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	reg = decodeRegistry(t, w)
	assert.Equal(t, registry.ModeEdit, reg.Mode)
	require.NotNil(t, reg.EditTarget)
	assert.Equal(t, int64(1), *reg.EditTarget)
	assert.Equal(t, "Ann", reg.Draft["name"])

	w = c.sendJSON(http.MethodPost, "/api/v1/modules/students/submit", dto.SubmitRequest{Fields: map[string]string{"name": "Annie"}})
	require.Equal(t, http.StatusOK, w.Code)
	reg = decodeRegistry(t, w)
	require.Len(t, reg.Records, 1)
	assert.Equal(t, int64(1), reg.Records[0].ID)
	assert.Equal(t, "Annie", reg.Records[0].Fields["name"])
	assert.Equal(t, registry.ModeCreate, reg.Mode)
	assert.Nil(t, reg.EditTarget)

	w = c.sendJSON(http.MethodDelete, "/api/v1/modules/students/records/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = c.sendJSON(http.MethodDelete, "/api/v1/modules/students/records/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	reg = decodeRegistry(t, c.get("/api/v1/modules/students"))
	assert.Empty(t, reg.Records)
}

func TestSubmitAPIRejectsEmptyField(t *testing.T) {
	c := newClient(t, newRouter(t))

	w := c.sendJSON(http.MethodPost, "/api/v1/modules/degrees/submit", dto.SubmitRequest{
		Fields: map[string]string{"degree_id": "G1", "degree_name": "BSc"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	env := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
	details, ok := env.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"duration"}, details["fields"])

	reg := decodeRegistry(t, c.get("/api/v1/modules/degrees"))
	assert.Empty(t, reg.Records)
	assert.Equal(t, "BSc", reg.Draft["degree_name"])
}

func TestAPIErrors(t *testing.T) {
	c := newClient(t, newRouter(t))
	value := "x"

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		code   dto.ErrorCode
	}{
		{"unknown module", http.MethodGet, "/api/v1/modules/faculties", nil, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"unknown record", http.MethodPost, "/api/v1/modules/students/records/9/edit", nil, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"bad record id", http.MethodDelete, "/api/v1/modules/students/records/nine", nil, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"unknown field", http.MethodPut, "/api/v1/modules/students/draft", dto.UpdateFieldRequest{Field: "gpa", Value: &value}, http.StatusBadRequest, dto.ErrorCodeResourceInvalid},
		{"missing value", http.MethodPut, "/api/v1/modules/students/draft", map[string]string{"field": "name"}, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"unknown submit field", http.MethodPost, "/api/v1/modules/students/submit", dto.SubmitRequest{Fields: map[string]string{"gpa": "4"}}, http.StatusBadRequest, dto.ErrorCodeResourceInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := c.sendJSON(tt.method, tt.path, tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decodeError(t, w).Error.Code)
		})
	}
}

func TestHealth(t *testing.T) {
	c := newClient(t, newRouter(t))

	for _, path := range []string{"/health", "/api/v1/health"} {
		w := c.get(path)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
	}
}

func TestSubmitAPIAcceptsEmptyChunkedBody(t *testing.T) {
	c := newClient(t, newRouter(t))

	for field, value := range map[string]string{"dept_id": "D1", "dept_name": "Physics", "location": "North"} {
		value := value
		w := c.sendJSON(http.MethodPut, "/api/v1/modules/departments/draft", dto.UpdateFieldRequest{Field: field, Value: &value})
		require.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/modules/departments/submit", strings.NewReader(""))
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(c.cookie)
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	reg := decodeRegistry(t, w)
	require.Len(t, reg.Records, 1)
	assert.Equal(t, "Physics", reg.Records[0].Fields["dept_name"])
}

func TestUnknownAPIPathReturnsJSON(t *testing.T) {
	c := newClient(t, newRouter(t))

	w := c.get("/api/v1/nope")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, dto.ErrorCodeResourceNotFound, decodeError(t, w).Error.Code)
}

func TestRefusedSubmitShowsStatusMessage(t *testing.T) {
	c := newClient(t, newRouter(t))

	w := c.postForm("/degrees", url.Values{"degree_id": {"G1"}, "degree_name": {""}, "duration": {"3"}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `<div class="alert alert-danger" role="alert">Please fill in every field.</div>`)
}
