package handler

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/petstore/internal/config"
	"github.com/deppfellow/petstore/internal/errs"
	"github.com/deppfellow/petstore/internal/middleware"
	"github.com/deppfellow/petstore/internal/model"
	"github.com/deppfellow/petstore/internal/repository"
	"github.com/deppfellow/petstore/internal/server"
	"github.com/deppfellow/petstore/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	echo  *echo.Echo
	repos *repository.Repositories
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg, err := config.Defaults()
	require.NoError(t, err)
	cfg.API.MaxID = 1000

	logger := zerolog.Nop()
	s := &server.Server{Config: cfg, Logger: &logger}

	repos := repository.NewMemoryRepositories()
	ctx := context.Background()
	_, err = repository.Seed(ctx, repos.Pets, repository.SeedPets())
	require.NoError(t, err)
	_, err = repository.Seed(ctx, repos.Orders, repository.SeedOrders(time.Now()))
	require.NoError(t, err)

	services, err := service.NewServices(s, repos)
	require.NoError(t, err)

	h, err := NewHandlers(s, services, repos)
	require.NoError(t, err)

	mw := middleware.NewMiddlewares(s)
	e := echo.New()
	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	e.Use(middleware.RequestID(), mw.ContextEnhancer.EnhanceContext())

	e.GET("/pet/:petId", h.Pet.GetPetByID())
	e.DELETE("/pet/:petId", h.Pet.DeletePet())
	e.POST("/pet", h.Pet.AddPet())
	e.PUT("/pet", h.Pet.UpdatePet())
	e.GET("/pet/findByStatus", h.Pet.FindPetsByStatus())
	e.GET("/pet/findByTags", h.Pet.FindPetsByTags())
	e.POST("/pet/:petId", h.Pet.UpdatePetWithForm())
	e.GET("/order/:orderId", h.Order.GetOrderByID())
	e.DELETE("/order/:orderId", h.Order.DeleteOrder())
	e.POST("/order", h.Order.PlaceOrder())
	e.PUT("/order", h.Order.UpdateOrder())
	e.GET("/order/findByStatus", h.Order.FindOrdersByStatus())
	e.GET("/status", h.Health.CheckHealth)
	e.GET("/swagger.json", h.OpenAPI.ServeDocument)
	e.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	return &testApp{echo: e, repos: repos}
}

func (a *testApp) do(method, target, contentType, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetPetByID(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/pet/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var pet model.Pet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pet))
	assert.Equal(t, int64(1), pet.ID)
	assert.Equal(t, "Cat 1", pet.Name)
}

func TestGetPetByID_XML(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/pet/7", "", "", echo.HeaderAccept, "application/xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/xml")

	var pet model.Pet
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &pet))
	assert.Equal(t, "Lion 1", pet.Name)
}

func TestGetPetByID_Errors(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name    string
		target  string
		status  int
		message string
	}{
		{"non numeric", "/pet/abc", http.StatusBadRequest, msgInvalidID},
		{"zero", "/pet/0", http.StatusBadRequest, msgInvalidID},
		{"negative", "/pet/-3", http.StatusBadRequest, msgInvalidID},
		{"above max", "/pet/1001", http.StatusBadRequest, msgInvalidID},
		{"missing", "/pet/999", http.StatusNotFound, "Pet not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(http.MethodGet, tt.target, "", "")
			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, decodeError(t, rec).Message)
		})
	}
}

func TestAddPet(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/pet", echo.MIMEApplicationJSON,
		`{"name":"Hamster 1","photoUrls":["url1"],"tags":[{"id":9,"name":"tiny"}],"status":"pending"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created model.Pet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(11), created.ID)
	assert.Equal(t, model.PetStatusPending, created.Status)

	rec = app.do(http.MethodGet, "/pet/11", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAddPet_XML(t *testing.T) {
	app := newTestApp(t)

	body := `<Pet><id>42</id><name>Parrot</name><photoUrls><photoUrl>u</photoUrl></photoUrls><status>sold</status></Pet>`
	rec := app.do(http.MethodPost, "/pet", echo.MIMEApplicationXML, body, echo.HeaderAccept, "application/xml")
	require.Equal(t, http.StatusOK, rec.Code)

	var created model.Pet
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, "Parrot", created.Name)
}

func TestAddPet_InvalidInput(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"photoUrls":[]}`},
		{"bad status", `{"name":"x","status":"lost"}`},
		{"malformed", `{"name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(http.MethodPost, "/pet", echo.MIMEApplicationJSON, tt.body)
			require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, msgInvalidInput, decodeError(t, rec).Message)
		})
	}
}

func TestUpdatePet(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPut, "/pet", echo.MIMEApplicationJSON,
		`{"id":3,"name":"Cat 3b","photoUrls":[],"status":"sold"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	pet, found, err := app.repos.Pets.Get(context.Background(), 3)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Cat 3b", pet.Name)
	assert.Equal(t, model.PetStatusSold, pet.Status)

	rec = app.do(http.MethodPut, "/pet", echo.MIMEApplicationJSON, `{"id":3}`)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, msgValidation, decodeError(t, rec).Message)

	rec = app.do(http.MethodPut, "/pet", echo.MIMEApplicationJSON, `{"id":5000,"name":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidID, decodeError(t, rec).Message)
}

func TestFindPetsByStatus(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/pet/findByStatus?status=sold", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var pets []model.Pet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pets))
	require.Len(t, pets, 1)
	assert.Equal(t, "Dog 2", pets[0].Name)

	rec = app.do(http.MethodGet, "/pet/findByStatus?status=sold,pending", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pets))
	assert.Len(t, pets, 3)

	rec = app.do(http.MethodGet, "/pet/findByStatus", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pets))
	for _, p := range pets {
		assert.Equal(t, model.PetStatusAvailable, p.Status)
	}

	rec = app.do(http.MethodGet, "/pet/findByStatus?status=lost", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidStatus, decodeError(t, rec).Message)
}

func TestFindPetsByTags(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/pet/findByTags?tags=tag4", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", rec.Header().Get(DeprecationHeader))

	var pets []model.Pet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pets))
	assert.Len(t, pets, 4)

	rec = app.do(http.MethodGet, "/pet/findByTags", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidTag, decodeError(t, rec).Message)
}

func TestUpdatePetWithForm(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{"name": {"Rabbit 1b"}, "status": {"sold"}}
	rec := app.do(http.MethodPost, "/pet/10", echo.MIMEApplicationForm, form.Encode())
	require.Equal(t, http.StatusOK, rec.Code)

	var ack model.ApiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	assert.Equal(t, int32(200), ack.Code)

	pet, found, err := app.repos.Pets.Get(context.Background(), 10)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Rabbit 1b", pet.Name)
	assert.Equal(t, model.PetStatusSold, pet.Status)

	rec = app.do(http.MethodPost, "/pet/10", echo.MIMEApplicationForm, url.Values{"status": {"lost"}}.Encode())
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = app.do(http.MethodPost, "/pet/999", echo.MIMEApplicationForm, form.Encode())
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePetWithForm_RejectsNonFormBodies(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"json", echo.MIMEApplicationJSON, `{"name":"j"}`},
		{"xml", echo.MIMEApplicationXML, `<Pet><name>x</name></Pet>`},
		{"no content type", "", "name=plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(http.MethodPost, "/pet/1", tt.contentType, tt.body)
			require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, msgInvalidInput, decodeError(t, rec).Message)
		})
	}

	pet, found, err := app.repos.Pets.Get(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Cat 1", pet.Name)

	rec := app.do(http.MethodPost, "/pet/1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodPost, "/pet/1", echo.MIMEApplicationForm+"; charset=UTF-8", url.Values{"name": {"Cat 1b"}}.Encode())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeletePet(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodDelete, "/pet/2", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = app.do(http.MethodDelete, "/pet/2", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/pet/2", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrders(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/order", echo.MIMEApplicationJSON,
		`{"petId":7,"quantity":1,"shipDate":"2026-01-02T03:04:05Z","complete":false}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var order model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, int64(6), order.ID)
	assert.Equal(t, int64(7), order.PetID)

	rec = app.do(http.MethodGet, "/order/6", "", "", echo.HeaderAccept, "application/xml, application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<Order>")

	rec = app.do(http.MethodGet, "/order/findByStatus?status=delivered", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	assert.Len(t, orders, 2)

	rec = app.do(http.MethodPut, "/order", echo.MIMEApplicationJSON, `{"id":6,"petId":7,"quantity":3,"status":"approved"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodPost, "/order", echo.MIMEApplicationJSON, `{"quantity":-1}`)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = app.do(http.MethodDelete, "/order/6", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/order/6", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", decodeError(t, rec).Message)
}

func TestPrefersXML(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{"", false},
		{"application/xml", true},
		{"text/xml;q=0.9", true},
		{"application/json, application/xml", false},
		{"text/html, application/xml", true},
		{"*/*", false},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(echo.HeaderAccept, tt.accept)
			c := e.NewContext(req, httptest.NewRecorder())
			assert.Equal(t, tt.want, prefersXML(c))
		})
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/status", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, config.BackendMemory, body["backend"])

	checks, ok := body["checks"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, checks, CheckStore)
	assert.NotContains(t, checks, CheckRedis)
}

func TestOpenAPI(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/swagger.json", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "2.0", doc["swagger"])

	paths, ok := doc["paths"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, paths, "/pet/{petId}")
	assert.Contains(t, paths, "/order/findByStatus")

	rec = app.do(http.MethodGet, "/docs", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "swagger.json")
}

func TestEndpoints_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for _, ep := range Endpoints(10) {
		assert.False(t, seen[ep.OperationID], ep.OperationID)
		seen[ep.OperationID] = true
	}
	assert.Len(t, seen, 12)
}
