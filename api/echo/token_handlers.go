package echo

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	owserrors "github.com/geofront-io/geofront/errors"
)

type generateTokenRequest struct {
	ValidInHours int               `json:"valid_in_hours"`
	Environ      map[string]string `json:"environ"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GenerateTokenHandler issues a new access token.
func (a *API) GenerateTokenHandler(c echo.Context) error {
	var req generateTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, owserrors.NewInvalidParameterValue("malformed token request", "body"))
	}
	if req.ValidInHours < 0 {
		return c.JSON(http.StatusBadRequest, owserrors.NewInvalidParameterValue("valid_in_hours must not be negative", "valid_in_hours"))
	}

	token, err := a.tokens.IssueToken(c.Request().Context(), time.Duration(req.ValidInHours)*time.Hour, req.Environ)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue access token")
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, tokenResponse{Token: token.Token, ExpiresAt: token.ExpiresAt})
}

// RevokeTokenHandler deletes one token.
func (a *API) RevokeTokenHandler(c echo.Context) error {
	if err := a.tokens.Revoke(c.Request().Context(), c.Param("token")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RevokeAllTokensHandler deletes every issued token.
func (a *API) RevokeAllTokensHandler(c echo.Context) error {
	if err := a.tokens.RevokeAll(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
