package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sergeii/toolbelt/internal/core/usecases/lookupdns"
	"github.com/sergeii/toolbelt/internal/core/usecases/reversedns"
	"github.com/sergeii/toolbelt/internal/rest/model"
)

type domainQuery struct {
	Domain string `binding:"required" form:"domain"`
}

type ipQuery struct {
	IP string `binding:"required" form:"ip"`
}

// LookupDNS godoc
// @Summary      DNS lookup
// @Tags         probes
// @Produce      json
// @Param        domain  query     string  true  "Domain name to resolve"
// @Success      200     {object}  model.DNS
// @Failure      400     {object}  model.Error
// @Failure      500     {object}  model.Error
// @Router       /dnslookup [get]
func (a *API) LookupDNS(c *gin.Context) {
	var query domainQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		a.renderMissing(c, "A valid domain query parameter is required.")
		return
	}

	result, err := a.container.LookupDNS.Execute(
		c.Request.Context(),
		lookupdns.Request{Domain: query.Domain},
	)
	if err != nil {
		a.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewDNSFromReport(result))
}

// ReverseDNS godoc
// @Summary      Reverse DNS lookup
// @Tags         probes
// @Produce      json
// @Param        ip   query     string  true  "IPv4 or IPv6 address"
// @Success      200  {object}  model.ReverseDNS
// @Failure      400  {object}  model.Error
// @Failure      500  {object}  model.Error
// @Router       /reverse-dns [get]
func (a *API) ReverseDNS(c *gin.Context) {
	var query ipQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		a.renderMissing(c, "IP address is required as a query parameter.")
		return
	}

	result, err := a.container.ReverseDNS.Execute(
		c.Request.Context(),
		reversedns.Request{IP: query.IP},
	)
	if err != nil {
		a.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewReverseDNSFromReport(result))
}
