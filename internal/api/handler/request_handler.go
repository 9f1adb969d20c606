package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/companycore/management-system/internal/core/ports"
)

type RequestHandler struct {
	requestService ports.RequestService
}

func NewRequestHandler(requestService ports.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

type createRequestBody struct {
	ServiceID string `json:"serviceId" validate:"required"`
	Message   string `json:"message"`
}

// List returns service requests: all of them for admins, the caller's own
// for everyone else.
//
// @Summary      List service requests
// @Tags         requests
// @Produce      json
// @Success      200  {array}  domain.ServiceRequest
// @Router       /api/service-requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	requests, err := h.requestService.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// Create files a new request for a catalog service (clients only).
//
// @Summary      Create service request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body  body      createRequestBody  true  "Requested service"
// @Success      201   {object}  domain.ServiceRequest
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/service-requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req createRequestBody
	if err := bind(c, &req); err != nil {
		return err
	}

	request, err := h.requestService.Create(c.Request().Context(), actor, ports.CreateRequestInput{
		ServiceID: req.ServiceID,
		Message:   req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, request)
}

// Get returns one request (admin or owner).
//
// @Summary      Get service request
// @Tags         requests
// @Produce      json
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  domain.ServiceRequest
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/service-requests/{id} [get]
func (h *RequestHandler) Get(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	request, err := h.requestService.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}

// Approve marks the request approved and opens a project for the client
// (admin only). The two writes are not atomic; a project-side failure is
// logged and the approval stands.
//
// @Summary      Approve service request
// @Tags         requests
// @Produce      json
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  domain.ServiceRequest
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/service-requests/{id}/approve [put]
func (h *RequestHandler) Approve(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	request, err := h.requestService.Approve(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}

// Reject marks the request rejected (admin only).
//
// @Summary      Reject service request
// @Tags         requests
// @Produce      json
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  domain.ServiceRequest
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/service-requests/{id}/reject [put]
func (h *RequestHandler) Reject(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	request, err := h.requestService.Reject(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}
