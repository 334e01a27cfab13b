package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sergeii/toolbelt/internal/core/usecases/measurelatency"
	"github.com/sergeii/toolbelt/internal/rest/model"
)

type latencyQuery struct {
	Endpoint string `binding:"required" form:"endpoint"`
	Times    string `form:"times"`
}

// MeasureLatency godoc
// @Summary      Measure latency
// @Description  Request the endpoint a number of times in a row and report the total and average latency
// @Tags         probes
// @Produce      json
// @Param        endpoint  query     string  true  "Absolute URL to fetch"
// @Param        times     query     int     true  "Number of sequential requests"
// @Success      200       {object}  model.Latency
// @Failure      400       {object}  model.Error
// @Failure      500       {object}  model.Error
// @Failure      502       {object}  model.Error
// @Router       /latencyrun [get]
func (a *API) MeasureLatency(c *gin.Context) {
	var query latencyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		a.renderMissing(c, `Please provide a valid URL as an "endpoint" query parameter.`)
		return
	}

	times, err := measurelatency.ParseTimes(query.Times)
	if err != nil {
		a.renderError(c, err)
		return
	}

	result, err := a.container.MeasureLatency.Execute(
		c.Request.Context(),
		measurelatency.Request{Endpoint: query.Endpoint, Times: times},
	)
	if err != nil {
		a.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewLatencyFromReport(result))
}
