package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sergeii/toolbelt/api/docs" // nolint: revive
	"github.com/sergeii/toolbelt/internal/metrics"
	"github.com/sergeii/toolbelt/internal/rest/api"
	"github.com/sergeii/toolbelt/internal/rest/middleware"
)

func NewRouter(a *api.API, logger *zerolog.Logger, collector *metrics.Collector) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Metrics(collector),
	)

	router.GET("/", a.Hello)
	router.GET("/status", a.Status)

	router.GET("/testconnectivity", a.TestConnectivity)
	router.GET("/latencyrun", a.MeasureLatency)
	router.GET("/rate-limit-test", a.TestRateLimit)
	router.GET("/dnslookup", a.LookupDNS)
	router.GET("/reverse-dns", a.ReverseDNS)
	// both spellings are in use by existing clients
	router.GET("/fetchHeaders", a.FetchHeaders)
	router.GET("/fetchheaders", a.FetchHeaders)
	router.GET("/fetchSSLCert", a.InspectCertificate)
	router.GET("/fetchsslcert", a.InspectCertificate)

	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return router
}
