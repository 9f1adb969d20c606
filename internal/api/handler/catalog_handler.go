package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/companycore/management-system/internal/core/ports"
)

// CatalogHandler serves the service catalog and the client-company registry.
type CatalogHandler struct {
	catalogService ports.CatalogService
}

func NewCatalogHandler(catalogService ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type serviceRequestBody struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}

type companyRequestBody struct {
	Name         string `json:"name" validate:"required"`
	Industry     string `json:"industry"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
}

// ListServices returns the full catalog.
//
// @Summary      List services
// @Tags         services
// @Produce      json
// @Success      200  {array}  domain.Service
// @Router       /api/services [get]
func (h *CatalogHandler) ListServices(c echo.Context) error {
	services, err := h.catalogService.ListServices(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, services)
}

// GetService returns one catalog entry.
//
// @Summary      Get service
// @Tags         services
// @Produce      json
// @Param        id   path      string  true  "Service id"
// @Success      200  {object}  domain.Service
// @Failure      404  {object}  map[string]string
// @Router       /api/services/{id} [get]
func (h *CatalogHandler) GetService(c echo.Context) error {
	service, err := h.catalogService.GetService(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, service)
}

// CreateService adds a catalog entry (admin only).
//
// @Summary      Create service
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        body  body      serviceRequestBody  true  "New service"
// @Success      201   {object}  domain.Service
// @Failure      403   {object}  map[string]string
// @Router       /api/services [post]
func (h *CatalogHandler) CreateService(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req serviceRequestBody
	if err := bind(c, &req); err != nil {
		return err
	}

	service, err := h.catalogService.CreateService(c.Request().Context(), actor, ports.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, service)
}

// UpdateService replaces the writable fields of a catalog entry (admin only).
//
// @Summary      Update service
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Service id"
// @Param        body  body      serviceRequestBody  true  "New values"
// @Success      200   {object}  domain.Service
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/services/{id} [put]
func (h *CatalogHandler) UpdateService(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req serviceRequestBody
	if err := bind(c, &req); err != nil {
		return err
	}

	service, err := h.catalogService.UpdateService(c.Request().Context(), actor, c.Param("id"), ports.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, service)
}

// DeleteService removes a catalog entry (admin only).
//
// @Summary      Delete service
// @Tags         services
// @Produce      json
// @Param        id   path      string  true  "Service id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/services/{id} [delete]
func (h *CatalogHandler) DeleteService(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.catalogService.DeleteService(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "service deleted"})
}

// ListCompanies returns every registered client company.
//
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Success      200  {array}  domain.ClientCompany
// @Router       /api/companies [get]
func (h *CatalogHandler) ListCompanies(c echo.Context) error {
	companies, err := h.catalogService.ListCompanies(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companies)
}

// GetCompany returns one client company.
//
// @Summary      Get company
// @Tags         companies
// @Produce      json
// @Param        id   path      string  true  "Company id"
// @Success      200  {object}  domain.ClientCompany
// @Failure      404  {object}  map[string]string
// @Router       /api/companies/{id} [get]
func (h *CatalogHandler) GetCompany(c echo.Context) error {
	company, err := h.catalogService.GetCompany(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}

// CreateCompany registers a client company (admin only).
//
// @Summary      Create company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body      companyRequestBody  true  "New company"
// @Success      201   {object}  domain.ClientCompany
// @Failure      403   {object}  map[string]string
// @Router       /api/companies [post]
func (h *CatalogHandler) CreateCompany(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req companyRequestBody
	if err := bind(c, &req); err != nil {
		return err
	}

	company, err := h.catalogService.CreateCompany(c.Request().Context(), actor, ports.CompanyInput{
		Name:         req.Name,
		Industry:     req.Industry,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, company)
}

// UpdateCompany replaces the writable fields of a company (admin only).
//
// @Summary      Update company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Company id"
// @Param        body  body      companyRequestBody  true  "New values"
// @Success      200   {object}  domain.ClientCompany
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/companies/{id} [put]
func (h *CatalogHandler) UpdateCompany(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req companyRequestBody
	if err := bind(c, &req); err != nil {
		return err
	}

	company, err := h.catalogService.UpdateCompany(c.Request().Context(), actor, c.Param("id"), ports.CompanyInput{
		Name:         req.Name,
		Industry:     req.Industry,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}

// DeleteCompany removes a company (admin only).
//
// @Summary      Delete company
// @Tags         companies
// @Produce      json
// @Param        id   path      string  true  "Company id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/companies/{id} [delete]
func (h *CatalogHandler) DeleteCompany(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.catalogService.DeleteCompany(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "company deleted"})
}
