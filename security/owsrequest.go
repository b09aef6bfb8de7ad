package security

import "strings"

// Supported OWS service kinds behind the gateway.
var allowedServiceTypes = map[string]struct{}{
	"wps": {},
}

// Operations that require no authorization by policy: metadata-style
// reads any client may perform.
var publicAccessRequests = map[string]struct{}{
	"getcapabilities": {},
	"describeprocess": {},
}

// OWSRequest classifies a gated request by its declared OWS protocol
// parameters.
type OWSRequest struct {
	Service string
	Request string
}

// ParseOWSRequest reads the service and request parameters, lowered for
// case-insensitive matching.
func ParseOWSRequest(rc *RequestContext) *OWSRequest {
	return &OWSRequest{
		Service: strings.ToLower(rc.Query.Get("service")),
		Request: strings.ToLower(rc.Query.Get("request")),
	}
}

// ServiceAllowed reports whether the declared service parameter is a
// supported OWS kind.
func (r *OWSRequest) ServiceAllowed() bool {
	_, ok := allowedServiceTypes[r.Service]
	return ok
}

// PublicAccess reports whether the declared operation needs no
// authorization.
func (r *OWSRequest) PublicAccess() bool {
	_, ok := publicAccessRequests[r.Request]
	return ok
}
