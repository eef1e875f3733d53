package handler

import (
	"net/http"

	"github.com/deppfellow/petstore/internal/model"
	"github.com/deppfellow/petstore/internal/server"
	"github.com/deppfellow/petstore/internal/service"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	Handler
	orders *service.OrderService
	maxID  int64
}

func NewOrderHandler(s *server.Server, orders *service.OrderService) *OrderHandler {
	return &OrderHandler{
		Handler: NewHandler(s),
		orders:  orders,
		maxID:   s.Config.API.MaxID,
	}
}

func (h *OrderHandler) GetOrderByID() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *OrderIDRequest) (model.Order, error) {
		return h.orders.GetByID(c.Request().Context(), req.id)
	}, http.StatusOK, func() *OrderIDRequest {
		return &OrderIDRequest{maxID: h.maxID}
	})
}

func (h *OrderHandler) DeleteOrder() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *OrderIDRequest) error {
		return h.orders.Delete(c.Request().Context(), req.id)
	}, http.StatusOK, func() *OrderIDRequest {
		return &OrderIDRequest{maxID: h.maxID}
	})
}

func (h *OrderHandler) PlaceOrder() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *OrderBody) (model.Order, error) {
		return h.orders.Add(c.Request().Context(), req.Order)
	}, http.StatusOK, func() *OrderBody {
		return &OrderBody{maxID: h.maxID, invalidInput: msgInvalidInput}
	})
}

func (h *OrderHandler) UpdateOrder() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *OrderBody) (model.Order, error) {
		return h.orders.Update(c.Request().Context(), req.Order)
	}, http.StatusOK, func() *OrderBody {
		return &OrderBody{maxID: h.maxID, invalidInput: msgValidation}
	})
}

func (h *OrderHandler) FindOrdersByStatus() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *FindOrdersByStatusRequest) (model.Orders, error) {
		return h.orders.FindByStatus(c.Request().Context(), req.statuses)
	}, http.StatusOK, func() *FindOrdersByStatusRequest {
		return &FindOrdersByStatusRequest{}
	})
}
