package webapi

import (
	"net/http"
	"strconv"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/materials-commons/roster/pkg/teams"
)

type TeamController struct {
	teamService *teams.TeamService
}

func NewTeamController(teamService *teams.TeamService) *TeamController {
	return &TeamController{teamService: teamService}
}

type successResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorJSON turns a service failure into the (code, message) envelope with
// the matching HTTP status. Errors the service didn't classify never leak
// their text to the caller.
func errorJSON(ctx echo.Context, err error) error {
	code := teams.CodeOf(err)

	var status int
	switch code {
	case teams.ErrCodeNotFound:
		status = http.StatusNotFound
	case teams.ErrCodeAlreadyExists, teams.ErrCodeNameExists:
		status = http.StatusConflict
	case teams.ErrCodeCreateFailure:
		status = http.StatusInternalServerError
	default:
		log.Errorf("unclassified error: %s", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Code: "INTERNAL", Message: "internal error"})
	}

	return ctx.JSON(status, errorResponse{Code: string(code), Message: teams.MessageOf(err)})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{Code: "INVALID_REQUEST", Message: message})
}

func idParam(ctx echo.Context, name string) (int, error) {
	return strconv.Atoi(ctx.Param(name))
}

func (c *TeamController) CreateTeam(ctx echo.Context) error {
	var req struct {
		Name          string `json:"name"`
		Description   string `json:"description"`
		AdminUserID   int    `json:"admin_user_id"`
		MemberUserIDs []int  `json:"member_user_ids"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if req.Name == "" {
		return badRequest(ctx, "name is required")
	}

	team, err := c.teamService.CreateTeam(req.Name, req.Description, req.AdminUserID, req.MemberUserIDs)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, successResponse{Success: true, Message: "team created", Data: team})
}

func (c *TeamController) ListTeams(ctx echo.Context) error {
	allTeams, err := c.teamService.ListTeams()
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, allTeams)
}

func (c *TeamController) GetTeam(ctx echo.Context) error {
	teamID, err := idParam(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid team id")
	}

	team, err := c.teamService.GetTeam(teamID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, team)
}

func (c *TeamController) GetTeamBySlug(ctx echo.Context) error {
	team, err := c.teamService.GetTeamBySlug(ctx.Param("slug"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, team)
}

func (c *TeamController) UpdateTeam(ctx echo.Context) error {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	teamID, err := idParam(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid team id")
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	team, err := c.teamService.UpdateTeam(teamID, req.Name, req.Description)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, team)
}

func (c *TeamController) DeleteTeam(ctx echo.Context) error {
	teamID, err := idParam(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid team id")
	}

	if err := c.teamService.DeleteTeam(teamID); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *TeamController) AddTeamMembers(ctx echo.Context) error {
	var req struct {
		UserIDs []int `json:"user_ids"`
	}

	teamID, err := idParam(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid team id")
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if len(req.UserIDs) == 0 {
		return badRequest(ctx, "user_ids is required")
	}

	team, err := c.teamService.AddTeamMembers(teamID, req.UserIDs)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, team)
}

func (c *TeamController) RemoveTeamMember(ctx echo.Context) error {
	teamID, err := idParam(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid team id")
	}

	userID, err := idParam(ctx, "userID")
	if err != nil {
		return badRequest(ctx, "invalid user id")
	}

	if err := c.teamService.RemoveTeamMember(teamID, userID); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *TeamController) MoveUserToTeam(ctx echo.Context) error {
	var req struct {
		TeamID int `json:"team_id"`
	}

	userID, err := idParam(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid user id")
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	team, err := c.teamService.MoveUserToAnotherTeam(userID, req.TeamID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, team)
}
