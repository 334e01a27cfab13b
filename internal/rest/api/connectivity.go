package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sergeii/toolbelt/internal/core/entities/report"
	"github.com/sergeii/toolbelt/internal/core/usecases/testconnectivity"
)

type connectivityQuery struct {
	Endpoint string `binding:"required" form:"endpoint"`
}

// TestConnectivity godoc
// @Summary      Test connectivity
// @Description  Fetch the endpoint once and return its payload as is
// @Tags         probes
// @Produce      json,plain
// @Param        endpoint  query     string  true  "Absolute URL to fetch"
// @Success      200       {string}  string
// @Failure      400       {object}  model.Error
// @Failure      500       {object}  model.Error
// @Failure      502       {object}  model.Error
// @Router       /testconnectivity [get]
func (a *API) TestConnectivity(c *gin.Context) {
	var query connectivityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		a.renderMissing(c, `Please provide a valid URL as an "endpoint" query parameter.`)
		return
	}

	result, err := a.container.TestConnectivity.Execute(
		c.Request.Context(),
		testconnectivity.Request{Endpoint: query.Endpoint},
	)
	if err != nil {
		a.renderError(c, err)
		return
	}

	contentType := "text/plain; charset=utf-8"
	if result.ContentType == report.Structured {
		contentType = "application/json; charset=utf-8"
	}
	c.Data(http.StatusOK, contentType, result.Body)
}
