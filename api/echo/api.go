// Package echo exposes the gateway over HTTP: the gated OWS surface
// under the protected prefix and the management API for tokens,
// services and job reporting.
package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geofront-io/geofront/domain"
	owserrors "github.com/geofront-io/geofront/errors"
	"github.com/geofront-io/geofront/security"
	"github.com/geofront-io/geofront/services"
)

// ProtocolHandler executes a validated OWS request. The gateway treats
// the protocol engine as an external collaborator behind this interface.
type ProtocolHandler interface {
	HandleOWS(c echo.Context, rc *security.RequestContext) error
}

// API wires the management endpoints and the gated OWS surface.
type API struct {
	tokens   *services.TokenService
	registry domain.ServiceStore
	jobs     domain.JobStore
	gate     *security.OWSSecurity
	engine   ProtocolHandler
	workdir  string
}

func NewAPI(
	tokens *services.TokenService,
	registry domain.ServiceStore,
	jobs domain.JobStore,
	gate *security.OWSSecurity,
	engine ProtocolHandler,
	workdir string,
) *API {
	return &API{
		tokens:   tokens,
		registry: registry,
		jobs:     jobs,
		gate:     gate,
		engine:   engine,
		workdir:  workdir,
	}
}

// RegisterRoutes registers the OWS and management routes.
func (a *API) RegisterRoutes(e *echo.Echo) {
	e.Any("/ows/*", a.OWSHandler)

	e.POST("/api/tokens", a.GenerateTokenHandler)
	e.DELETE("/api/tokens/:token", a.RevokeTokenHandler)
	e.DELETE("/api/tokens", a.RevokeAllTokensHandler)

	e.POST("/api/services", a.RegisterServiceHandler)
	e.GET("/api/services", a.ListServicesHandler)
	e.GET("/api/services/:name", a.GetServiceHandler)
	e.DELETE("/api/services/:name", a.UnregisterServiceHandler)
	e.DELETE("/api/services", a.ClearServicesHandler)

	e.GET("/api/jobs", a.ListJobsHandler)
}

// writeError renders a gateway error: OWS errors keep their status and
// exception shape, store misses map to 404, everything else is a 500.
func writeError(c echo.Context, err error) error {
	var owsErr *owserrors.OWSError
	if errors.As(err, &owsErr) {
		return c.JSON(owsErr.Status, owsErr)
	}
	switch {
	case errors.Is(err, domain.ErrServiceNotFound),
		errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrJobNotFound):
		return c.JSON(http.StatusNotFound, owserrors.NewNotFound(err.Error()))
	case errors.Is(err, domain.ErrServiceRegistered),
		errors.Is(err, domain.ErrServiceNameTaken):
		return c.JSON(http.StatusConflict, owserrors.NewInvalidParameterValue(err.Error(), "service"))
	default:
		return c.JSON(http.StatusInternalServerError, owserrors.NewNoApplicableCode(err.Error()))
	}
}

// callerClaims reads the caller identity forwarded by the outer
// authentication layer.
func callerClaims(c echo.Context) domain.AccessClaims {
	return domain.AccessClaims{
		UserID: c.Request().Header.Get("X-User-Id"),
		Admin:  c.Request().Header.Get("X-Admin") == "true",
	}
}
