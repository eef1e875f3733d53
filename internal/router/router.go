// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and maps every documented operation to its
// handler.
package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/deppfellow/petstore/internal/apidoc"
	"github.com/deppfellow/petstore/internal/handler"
	"github.com/deppfellow/petstore/internal/middleware"
	"github.com/deppfellow/petstore/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance. Every endpoint in handler.Endpoints
// must have a handler; a missing one is a programming error reported at
// startup.
func NewRouter(s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) (*echo.Echo, error) {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Use(
		mw.RateLimit.Limit(),
		mw.Global.CORS(),
		mw.Global.Secure(),
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	base := router.Group(strings.TrimSuffix(s.Config.API.BasePath, "/"))
	if err := registerAPIRoutes(base, h, mw); err != nil {
		return nil, err
	}

	return router, nil
}

// operations maps operation ids to their handlers.
func operations(h *handler.Handlers) map[string]echo.HandlerFunc {
	return map[string]echo.HandlerFunc{
		"getPetById":         h.Pet.GetPetByID(),
		"deletePet":          h.Pet.DeletePet(),
		"addPet":             h.Pet.AddPet(),
		"updatePet":          h.Pet.UpdatePet(),
		"findPetsByStatus":   h.Pet.FindPetsByStatus(),
		"findPetsByTags":     h.Pet.FindPetsByTags(),
		"updatePetWithForm":  h.Pet.UpdatePetWithForm(),
		"getOrderById":       h.Order.GetOrderByID(),
		"deleteOrder":        h.Order.DeleteOrder(),
		"placeOrder":         h.Order.PlaceOrder(),
		"updateOrder":        h.Order.UpdateOrder(),
		"findOrdersByStatus": h.Order.FindOrdersByStatus(),
	}
}

func registerAPIRoutes(g *echo.Group, h *handler.Handlers, mw *middleware.Middlewares) error {
	ops := operations(h)

	for _, ep := range handler.Endpoints(h.Pet.MaxID()) {
		fn, ok := ops[ep.OperationID]
		if !ok {
			return fmt.Errorf("no handler for operation %q", ep.OperationID)
		}

		var m []echo.MiddlewareFunc
		if ep.APIKey {
			m = append(m, mw.Auth.RequireAPIKey())
		}

		g.Add(ep.Method, apidoc.EchoPath(ep.Path), fn, m...)

		// HEAD mirrors GET without a body.
		if ep.Method == http.MethodGet {
			g.Add(http.MethodHead, apidoc.EchoPath(ep.Path), fn, m...)
		}
	}
	return nil
}
