package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sergeii/toolbelt/cmd/toolbelt/build"
	"github.com/sergeii/toolbelt/internal/rest/model"
)

const greeting = "Hello, World! The ee-tool-belt app is online."

// Hello godoc
// @Summary      Liveness greeting
// @Tags         status
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func (a *API) Hello(c *gin.Context) {
	c.String(http.StatusOK, greeting)
}

// Status godoc
// @Summary      Build information
// @Tags         status
// @Produce      json
// @Success      200  {object}  model.Status
// @Router       /status [get]
func (a *API) Status(c *gin.Context) {
	c.JSON(http.StatusOK, model.Status{
		BuildTime:    build.Time,
		BuildCommit:  build.Commit,
		BuildVersion: build.Version,
	})
}
