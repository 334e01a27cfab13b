package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sergeii/toolbelt/internal/core/usecases/fetchheaders"
	"github.com/sergeii/toolbelt/internal/rest/model"
)

type urlQuery struct {
	URL string `binding:"required" form:"url"`
}

// FetchHeaders godoc
// @Summary      Fetch headers
// @Description  Fetch the url and return the request and response headers, whatever the response status
// @Tags         probes
// @Produce      json
// @Param        url  query     string  true  "Absolute URL to fetch"
// @Success      200  {object}  model.Headers
// @Failure      400  {object}  model.Error
// @Failure      500  {object}  model.Error
// @Router       /fetchHeaders [get]
func (a *API) FetchHeaders(c *gin.Context) {
	var query urlQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		a.renderMissing(c, `Please provide a valid URL as a "url" query parameter.`)
		return
	}

	result, err := a.container.FetchHeaders.Execute(
		c.Request.Context(),
		fetchheaders.Request{URL: query.URL},
	)
	if err != nil {
		a.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewHeadersFromReport(result))
}
