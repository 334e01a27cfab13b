package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sergeii/toolbelt/internal/core/usecases/inspectcertificate"
	"github.com/sergeii/toolbelt/internal/rest/model"
)

// InspectCertificate godoc
// @Summary      Inspect TLS certificate
// @Description  Connect to the host of the url and report the validity of its certificate
// @Tags         probes
// @Produce      json
// @Param        url  query     string  true  "URL of the host, the port defaults to 443"
// @Success      200  {object}  model.Certificate
// @Failure      400  {object}  model.Error
// @Failure      500  {object}  model.Error
// @Router       /fetchSSLCert [get]
func (a *API) InspectCertificate(c *gin.Context) {
	var query urlQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		a.renderMissing(c, `Please provide a valid URL as a "url" query parameter.`)
		return
	}

	result, err := a.container.InspectCertificate.Execute(
		c.Request.Context(),
		inspectcertificate.Request{URL: query.URL},
	)
	if err != nil {
		a.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewCertificateFromReport(result))
}
