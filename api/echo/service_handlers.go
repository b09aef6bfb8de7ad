package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geofront-io/geofront/domain"
	owserrors "github.com/geofront-io/geofront/errors"
)

type registerServiceRequest struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Type      string `json:"type"`
	Public    bool   `json:"public"`
	Auth      string `json:"auth"`
	Overwrite bool   `json:"overwrite"`
}

// RegisterServiceHandler registers or overwrites a backend service.
func (a *API) RegisterServiceHandler(c echo.Context) error {
	var req registerServiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, owserrors.NewInvalidParameterValue("malformed service registration", "body"))
	}
	if req.URL == "" {
		return c.JSON(http.StatusBadRequest, owserrors.NewInvalidParameterValue("service url is required", "url"))
	}

	service, err := a.registry.SaveService(c.Request().Context(), &domain.Service{
		Name:   req.Name,
		URL:    req.URL,
		Type:   req.Type,
		Public: req.Public,
		Auth:   req.Auth,
	}, req.Overwrite)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, service)
}

// ListServicesHandler lists registered services by name, ascending.
func (a *API) ListServicesHandler(c echo.Context) error {
	services, err := a.registry.ListServices(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, services)
}

// GetServiceHandler returns one registered service.
func (a *API) GetServiceHandler(c echo.Context) error {
	service, err := a.registry.FetchByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, service)
}

// UnregisterServiceHandler removes one registered service.
func (a *API) UnregisterServiceHandler(c echo.Context) error {
	if _, err := a.registry.DeleteService(c.Request().Context(), c.Param("name")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ClearServicesHandler removes all registered services.
func (a *API) ClearServicesHandler(c echo.Context) error {
	if _, err := a.registry.ClearServices(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
