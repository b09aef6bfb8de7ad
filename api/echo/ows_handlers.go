package echo

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/geofront-io/geofront/domain"
	owserrors "github.com/geofront-io/geofront/errors"
	"github.com/geofront-io/geofront/internal/util"
	"github.com/geofront-io/geofront/security"
)

// OWSHandler runs the security gate over a protected request and hands
// validated requests to the protocol engine.
func (a *API) OWSHandler(c echo.Context) error {
	// Delegated credentials for this request live in their own
	// directory under the gateway workdir.
	workdir := filepath.Join(a.workdir, "req-"+uuid.NewString())
	rc := security.NewRequestContext(c.Request(), workdir)

	if err := a.gate.CheckRequest(c.Request().Context(), rc); err != nil {
		return writeError(c, err)
	}
	return a.engine.HandleOWS(c, rc)
}

// ProxyProtocolHandler forwards validated requests to the registered
// backend service named in the path.
type ProxyProtocolHandler struct {
	registry domain.ServiceStore
	prefix   string
}

func NewProxyProtocolHandler(registry domain.ServiceStore) *ProxyProtocolHandler {
	return &ProxyProtocolHandler{registry: registry, prefix: security.ProtectedPath}
}

func (p *ProxyProtocolHandler) HandleOWS(c echo.Context, rc *security.RequestContext) error {
	name, err := util.ParseServiceName(rc.Path, p.prefix)
	if err != nil {
		return c.JSON(http.StatusNotFound, owserrors.NewNotFound("no service name in request path"))
	}
	service, err := p.registry.FetchByName(c.Request().Context(), name)
	if err != nil {
		return writeError(c, err)
	}
	target, err := url.Parse(service.URL)
	if err != nil {
		return c.JSON(http.StatusBadGateway, owserrors.NewNoApplicableCode("registered service url is invalid"))
	}

	log.Debug().Ctx(c.Request().Context()).Str("service", name).Str("target", service.URL).Msg("proxying ows request")
	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Error().Err(err).Str("service", name).Msg("ows backend unreachable")
		w.WriteHeader(http.StatusBadGateway)
	}
	proxy.ServeHTTP(c.Response(), c.Request())
	return nil
}

var _ ProtocolHandler = (*ProxyProtocolHandler)(nil)
