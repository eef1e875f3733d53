package handler

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/deppfellow/petstore/internal/apidoc"
	"github.com/deppfellow/petstore/internal/server"
	"github.com/labstack/echo/v4"
)

//go:embed static/docs.html
var docsPage string

// OpenAPIHandler serves the API document and the Swagger UI page that
// renders it.
type OpenAPIHandler struct {
	Handler
	doc *apidoc.Document
}

// NewOpenAPIHandler builds the document once from the API config.
func NewOpenAPIHandler(s *server.Server) (*OpenAPIHandler, error) {
	doc, err := Document(s.Config.API)
	if err != nil {
		return nil, fmt.Errorf("failed to build API document: %w", err)
	}

	return &OpenAPIHandler{
		Handler: NewHandler(s),
		doc:     doc,
	}, nil
}

// ServeDocument writes the swagger.json document.
func (h *OpenAPIHandler) ServeDocument(c echo.Context) error {
	return c.JSON(http.StatusOK, h.doc)
}

// ServeOpenAPIUI serves the docs page. Caching is disabled so document
// changes show up on reload.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	if err := c.HTML(http.StatusOK, docsPage); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}
	return nil
}
