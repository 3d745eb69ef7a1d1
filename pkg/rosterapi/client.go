package rosterapi

import (
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/materials-commons/roster/pkg/rosterdb/model"
)

// Client is an API client for the rosterd team membership server.
type Client struct {
	c *resty.Client
}

func NewClient(baseURL string) *Client {
	return &Client{c: resty.New().SetBaseURL(baseURL)}
}

type CreateTeamRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	AdminUserID   int    `json:"admin_user_id"`
	MemberUserIDs []int  `json:"member_user_ids"`
}

type createTeamResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    *model.Team `json:"data"`
}

func (c *Client) CreateTeam(req CreateTeamRequest) (*model.Team, error) {
	var result createTeamResponse

	resp, err := c.c.R().SetBody(req).SetResult(&result).Post("/api/teams")
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, toErrorFromResponse(resp)
	}

	return result.Data, nil
}

func (c *Client) ListTeams() ([]model.Team, error) {
	var teams []model.Team

	resp, err := c.c.R().SetResult(&teams).Get("/api/teams")
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, toErrorFromResponse(resp)
	}

	return teams, nil
}

func (c *Client) GetTeam(teamID int) (*model.Team, error) {
	var team model.Team

	resp, err := c.c.R().SetResult(&team).Get(fmt.Sprintf("/api/teams/%d", teamID))
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, toErrorFromResponse(resp)
	}

	return &team, nil
}

func (c *Client) GetTeamBySlug(slug string) (*model.Team, error) {
	var team model.Team

	resp, err := c.c.R().SetResult(&team).Get("/api/teams/by-slug/" + slug)
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, toErrorFromResponse(resp)
	}

	return &team, nil
}

type UpdateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (c *Client) UpdateTeam(teamID int, req UpdateTeamRequest) (*model.Team, error) {
	var team model.Team

	resp, err := c.c.R().SetBody(req).SetResult(&team).Put(fmt.Sprintf("/api/teams/%d", teamID))
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, toErrorFromResponse(resp)
	}

	return &team, nil
}

func (c *Client) DeleteTeam(teamID int) error {
	resp, err := c.c.R().Delete(fmt.Sprintf("/api/teams/%d", teamID))
	if err != nil {
		return err
	}

	if resp.IsError() {
		return toErrorFromResponse(resp)
	}

	return nil
}

func (c *Client) AddTeamMembers(teamID int, userIDs []int) (*model.Team, error) {
	var team model.Team

	body := map[string]interface{}{"user_ids": userIDs}
	resp, err := c.c.R().SetBody(body).SetResult(&team).Post(fmt.Sprintf("/api/teams/%d/members", teamID))
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, toErrorFromResponse(resp)
	}

	return &team, nil
}

func (c *Client) RemoveTeamMember(teamID, userID int) error {
	resp, err := c.c.R().Delete(fmt.Sprintf("/api/teams/%d/members/%d", teamID, userID))
	if err != nil {
		return err
	}

	if resp.IsError() {
		return toErrorFromResponse(resp)
	}

	return nil
}

func (c *Client) MoveUserToTeam(userID, teamID int) (*model.Team, error) {
	var team model.Team

	body := map[string]interface{}{"team_id": teamID}
	resp, err := c.c.R().SetBody(body).SetResult(&team).Post(fmt.Sprintf("/api/users/%d/move-to-team", userID))
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, toErrorFromResponse(resp)
	}

	return &team, nil
}
