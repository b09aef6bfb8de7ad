package security

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/geofront-io/geofront/domain"
	owserrors "github.com/geofront-io/geofront/errors"
	"github.com/geofront-io/geofront/internal/util"
)

// ProtectedPath is the default prefix under which requests are gated.
const ProtectedPath = "/ows/"

// Environment keys carried by access tokens that trigger a delegated
// credential fetch when both are present.
const (
	EnvDelegationToken  = "esgf_access_token"
	EnvCredentialIssuer = "esgf_slcs_service_url"
)

// TokenFetcher resolves a token string to an issued access token.
type TokenFetcher interface {
	FetchByToken(ctx context.Context, token string) (*domain.AccessToken, error)
}

// PublicChecker answers whether a named service is publicly reachable.
type PublicChecker interface {
	IsPublic(ctx context.Context, name string) (bool, error)
}

// OWSSecurity gates requests under the protected prefix. It holds no
// state of its own; each check mutates only the given request context.
type OWSSecurity struct {
	tokens   TokenFetcher
	registry PublicChecker
	creds    CredentialFetcher
	prefix   string
}

func NewOWSSecurity(tokens TokenFetcher, registry PublicChecker, creds CredentialFetcher) *OWSSecurity {
	return &OWSSecurity{tokens: tokens, registry: registry, creds: creds, prefix: ProtectedPath}
}

// WithPrefix overrides the protected path prefix.
func (s *OWSSecurity) WithPrefix(prefix string) *OWSSecurity {
	s.prefix = prefix
	return s
}

// tokenParam extracts the access token with fixed precedence: query
// parameter, dedicated header, then the last path element when the path
// has more than one segment under the prefix.
func (s *OWSSecurity) tokenParam(rc *RequestContext) string {
	if rc.Query.Has("access_token") {
		return rc.Query.Get("access_token")
	}
	if token := rc.Header.Get("Access-Token"); token != "" {
		return token
	}
	if elements := util.PathElements(rc.Path); len(elements) > 1 {
		return elements[len(elements)-1]
	}
	return ""
}

// CheckRequest decides pass or reject for the request. On success the
// token's environment has been merged into rc.Environ and, when the
// environment names a delegated identity provider, a credential has
// been fetched and installed as the HOME override. A credential fetch
// failure is fatal: there is no partial pass-through.
func (s *OWSSecurity) CheckRequest(ctx context.Context, rc *RequestContext) error {
	if !strings.HasPrefix(rc.Path, s.prefix) {
		return nil
	}

	serviceName, err := util.ParseServiceName(rc.Path, s.prefix)
	if err != nil {
		serviceName = ""
	}
	if serviceName != "" {
		// A lookup miss means no public bypass, never a rejection here:
		// the request still goes through OWS classification below.
		if public, err := s.registry.IsPublic(ctx, serviceName); err == nil && public {
			log.Info().Ctx(ctx).Str("service", serviceName).Msg("public access for service")
			return nil
		}
	}

	owsReq := ParseOWSRequest(rc)
	if !owsReq.ServiceAllowed() {
		return owserrors.NewInvalidParameterValue(
			fmt.Sprintf("service %s not supported", owsReq.Service), "service")
	}
	if owsReq.PublicAccess() {
		return nil
	}

	token := s.tokenParam(rc)
	access, err := s.tokens.FetchByToken(ctx, token)
	if err != nil {
		// Token-not-found is reported identically to every other
		// resolution failure so token enumeration stays unobservable.
		return owserrors.NewAccessForbidden("Access token is required to access this service.")
	}
	if access.IsExpired(time.Now().UTC()) {
		return owserrors.NewAccessForbidden("Access token is expired.")
	}

	for k, v := range access.UserEnviron {
		rc.Environ[k] = v
	}

	delegation, hasToken := rc.Environ[EnvDelegationToken]
	issuer, hasIssuer := rc.Environ[EnvCredentialIssuer]
	if hasToken && hasIssuer {
		if s.creds == nil {
			return fmt.Errorf("delegated credentials requested but no credential fetcher configured")
		}
		home, err := s.creds.Fetch(ctx, issuer, delegation, rc.Workdir)
		if err != nil {
			return fmt.Errorf("fetching delegated credentials: %w", err)
		}
		rc.Environ["HOME"] = home
	}
	return nil
}
