package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sergeii/toolbelt/cmd/toolbelt/container"
	"github.com/sergeii/toolbelt/internal/core/entities/probe"
	"github.com/sergeii/toolbelt/internal/rest/model"
)

type API struct {
	container container.Container
	logger    *zerolog.Logger
}

func New(
	logger *zerolog.Logger,
	container container.Container,
) *API {
	return &API{
		container: container,
		logger:    logger,
	}
}

func statusForKind(kind probe.ErrorKind) int {
	switch kind {
	case probe.RequestError, probe.VerificationError:
		return http.StatusBadRequest
	case probe.ResponseError:
		return http.StatusBadGateway
	case probe.TransportError, probe.ResolverError:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func (a *API) renderError(c *gin.Context, err error) {
	probeErr, ok := probe.AsError(err)
	if !ok {
		a.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unclassified probe error")
		c.JSON(http.StatusInternalServerError, model.Error{Error: "Internal server error"})
		return
	}
	c.JSON(statusForKind(probeErr.Kind), model.Error{
		Error:  probeErr.Message,
		Kind:   probeErr.Kind.String(),
		Reason: probeErr.Reason,
	})
}

func (a *API) renderMissing(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, model.Error{
		Error: msg,
		Kind:  probe.RequestError.String(),
	})
}
