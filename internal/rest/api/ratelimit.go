package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sergeii/toolbelt/internal/core/usecases/testratelimit"
	"github.com/sergeii/toolbelt/internal/rest/model"
)

type rateLimitQuery struct {
	URL   string `binding:"required" form:"url"`
	Count string `form:"count"`
}

// TestRateLimit godoc
// @Summary      Test rate limiting
// @Description  Send a number of sequential requests and count how many were rate limited
// @Tags         probes
// @Produce      json
// @Param        url    query     string  true   "Absolute URL to fetch"
// @Param        count  query     int     false  "Number of requests, defaults to 5"
// @Success      200    {object}  model.RateLimit
// @Failure      400    {object}  model.Error
// @Router       /rate-limit-test [get]
func (a *API) TestRateLimit(c *gin.Context) {
	var query rateLimitQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		a.renderMissing(c, "Target URL is required as a query parameter.")
		return
	}

	result, err := a.container.TestRateLimit.Execute(
		c.Request.Context(),
		testratelimit.Request{URL: query.URL, Count: testratelimit.ParseCount(query.Count)},
	)
	if err != nil {
		a.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewRateLimitFromReport(result))
}
