package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/companycore/management-system/internal/core/domain"
	"github.com/companycore/management-system/internal/core/ports"
)

type ProjectHandler struct {
	projectService ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type createProjectRequest struct {
	Name             string  `json:"name" validate:"required"`
	Description      string  `json:"description"`
	ClientID         string  `json:"clientId" validate:"required"`
	ServiceRequestID string  `json:"serviceRequestId"`
	TotalAmount      float64 `json:"totalAmount" validate:"gte=0"`
}

type updateProjectRequest struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	ClientID         *string `json:"clientId"`
	Status           *string `json:"status"`
	ServiceRequestID *string `json:"serviceRequestId"`
}

type assignRequest struct {
	EmployeeIDs []string `json:"employeeIds" validate:"required,min=1"`
}

type paymentRequest struct {
	Amount      float64  `json:"amount" validate:"required,gt=0"`
	Method      string   `json:"method"`
	Notes       string   `json:"notes"`
	TotalAmount *float64 `json:"totalAmount"`
}

type attachFilesRequest struct {
	Files []struct {
		Filename string `json:"filename" validate:"required"`
		URL      string `json:"url" validate:"required"`
	} `json:"files" validate:"required,min=1,dive"`
}

type verifyPaymentRequest struct {
	OrderID   string  `json:"orderId" validate:"required"`
	PaymentID string  `json:"paymentId" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

// List returns the projects visible to the caller: all for admins, the
// assigned set for employees, own projects for clients.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {array}   domain.Project
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	projects, err := h.projectService.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Create opens a new project (admin only).
//
// @Summary      Create project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      createProjectRequest  true  "New project"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req createProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.Create(c.Request().Context(), actor, ports.CreateProjectInput{
		Name:             req.Name,
		Description:      req.Description,
		ClientID:         req.ClientID,
		ServiceRequestID: req.ServiceRequestID,
		TotalAmount:      req.TotalAmount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

// Get returns one project if the caller may read it.
//
// @Summary      Get project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	project, err := h.projectService.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Update applies a partial update. Employees must be assigned and may only
// change the status field.
//
// @Summary      Update project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  domain.Project
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req updateProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	input := ports.UpdateProjectInput{
		Name:             req.Name,
		Description:      req.Description,
		ClientID:         req.ClientID,
		ServiceRequestID: req.ServiceRequestID,
	}
	if req.Status != nil {
		status := domain.ProjectStatus(*req.Status)
		input.Status = &status
	}

	project, err := h.projectService.Update(c.Request().Context(), actor, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Assign replaces the project's employee assignment (admin only).
//
// @Summary      Assign employees
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Project id"
// @Param        body  body      assignRequest  true  "Employee ids"
// @Success      200   {object}  domain.Project
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/projects/{id}/assign [put]
func (h *ProjectHandler) Assign(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req assignRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.Assign(c.Request().Context(), actor, c.Param("id"), req.EmployeeIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Delete removes a project (admin only).
//
// @Summary      Delete project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.projectService.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "project deleted"})
}

// AddPayment records a manual payment against the project (admin only).
// The derived payment status is recalculated in the same write.
//
// @Summary      Record payment
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Project id"
// @Param        body  body      paymentRequest  true  "Payment entry"
// @Success      200   {object}  domain.Project
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/projects/{id}/payments [put]
func (h *ProjectHandler) AddPayment(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req paymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.AddPayment(c.Request().Context(), actor, c.Param("id"), ports.PaymentInput{
		Amount:      req.Amount,
		Method:      req.Method,
		Notes:       req.Notes,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// AttachFiles appends uploaded-file metadata to the project.
//
// @Summary      Attach files
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Project id"
// @Param        body  body      attachFilesRequest  true  "File metadata"
// @Success      200   {object}  domain.Project
// @Failure      403   {object}  map[string]string
// @Router       /api/projects/{id}/files [post]
func (h *ProjectHandler) AttachFiles(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req attachFilesRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	files := make([]ports.FileInput, 0, len(req.Files))
	for _, f := range req.Files {
		files = append(files, ports.FileInput{Filename: f.Filename, URL: f.URL})
	}

	project, err := h.projectService.AttachFiles(c.Request().Context(), actor, c.Param("id"), files)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// CreatePaymentOrder opens a mock gateway order for the balance due.
//
// @Summary      Create payment order
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      201  {object}  ports.PaymentOrder
// @Failure      400  {object}  map[string]string
// @Router       /api/projects/{id}/payment-orders [post]
func (h *ProjectHandler) CreatePaymentOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	order, err := h.projectService.CreatePaymentOrder(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

// VerifyPayment confirms a mock gateway payment and records it.
//
// @Summary      Verify payment
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Project id"
// @Param        body  body      verifyPaymentRequest  true  "Gateway confirmation"
// @Success      200   {object}  domain.Project
// @Failure      400   {object}  map[string]string
// @Router       /api/projects/{id}/payment-verify [post]
func (h *ProjectHandler) VerifyPayment(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req verifyPaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.VerifyPayment(c.Request().Context(), actor, c.Param("id"), ports.VerifyPaymentInput{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Amount:    req.Amount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}
