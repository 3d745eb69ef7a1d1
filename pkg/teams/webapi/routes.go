package webapi

import (
	"github.com/labstack/echo/v4"
	"github.com/materials-commons/roster/pkg/teams"
)

// RegisterRoutes mounts the team membership API on g.
func RegisterRoutes(g *echo.Group, teamService *teams.TeamService) {
	teamController := NewTeamController(teamService)

	g.POST("/teams", teamController.CreateTeam)
	g.GET("/teams", teamController.ListTeams)
	g.GET("/teams/:id", teamController.GetTeam)
	g.GET("/teams/by-slug/:slug", teamController.GetTeamBySlug)
	g.PUT("/teams/:id", teamController.UpdateTeam)
	g.DELETE("/teams/:id", teamController.DeleteTeam)
	g.POST("/teams/:id/members", teamController.AddTeamMembers)
	g.DELETE("/teams/:id/members/:userID", teamController.RemoveTeamMember)
	g.POST("/users/:id/move-to-team", teamController.MoveUserToTeam)
}
