package cmd

import (
	"github.com/labstack/echo/v4"
	"github.com/materials-commons/roster/pkg/teams"
	"github.com/materials-commons/roster/pkg/teams/webapi"
)

type RouteOpts struct {
	TeamService *teams.TeamService
}

func setupRoutes(e *echo.Echo, opts RouteOpts) {
	g := e.Group("/api")
	webapi.RegisterRoutes(g, opts.TeamService)
}
