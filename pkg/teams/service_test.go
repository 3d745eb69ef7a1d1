package teams

import (
	"errors"
	"testing"

	"github.com/materials-commons/roster/pkg/rosterdb"
	"github.com/materials-commons/roster/pkg/rosterdb/model"
	"github.com/materials-commons/roster/pkg/rosterdb/stor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type serviceTestCase struct {
	service *TeamService
	stors   *stor.Stors
}

func newServiceTestCase(t *testing.T) *serviceTestCase {
	db := rosterdb.NewTestDB(t)
	stors := stor.NewGormStors(db)
	return &serviceTestCase{service: NewTeamService(stors), stors: stors}
}

func (tc *serviceTestCase) createUsers(t *testing.T, names ...string) []model.User {
	var users []model.User
	for _, name := range names {
		u, err := tc.stors.UserStor.CreateUser(&model.User{Name: name, Email: name + "@test.org"})
		require.NoErrorf(t, err, "CreateUser(%s) failed: %s", name, err)
		users = append(users, *u)
	}

	return users
}

func memberIDs(team *model.Team) []int {
	var ids []int
	for _, m := range team.Members {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestCreateTeam(t *testing.T) {
	tc := newServiceTestCase(t)
	users := tc.createUsers(t, "u1", "u2", "u3")

	team, err := tc.service.CreateTeam("Alpha", "the alpha team", users[0].ID, []int{users[1].ID, users[2].ID})
	require.NoError(t, err)
	require.NotZero(t, team.ID)
	assert.Equal(t, "Alpha", team.Name)
	assert.Equal(t, "the alpha team", team.Description)
	assert.ElementsMatch(t, []int{users[0].ID, users[1].ID, users[2].ID}, memberIDs(team))

	u1, err := tc.stors.UserStor.GetUserByID(users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleExternalSuperAdmin, u1.Role)
	require.NotNil(t, u1.TeamID)
	assert.Equal(t, team.ID, *u1.TeamID)

	for _, id := range []int{users[1].ID, users[2].ID} {
		u, err := tc.stors.UserStor.GetUserByID(id)
		require.NoError(t, err)
		assert.Equal(t, model.RoleExternalMember, u.Role)
		require.NotNil(t, u.TeamID)
		assert.Equal(t, team.ID, *u.TeamID)
	}

	found, err := tc.service.GetTeam(team.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{users[0].ID, users[1].ID, users[2].ID}, memberIDs(found))
}

func TestCreateTeamDuplicateNameFails(t *testing.T) {
	tc := newServiceTestCase(t)
	users := tc.createUsers(t, "u1")

	_, err := tc.service.CreateTeam("Alpha", "", users[0].ID, nil)
	require.NoError(t, err)

	_, err = tc.service.CreateTeam("Alpha", "", users[0].ID, nil)
	require.Error(t, err)
	assert.Equal(t, ErrCodeAlreadyExists, CodeOf(err))
}

func TestCreateTeamUnknownAdminFails(t *testing.T) {
	tc := newServiceTestCase(t)

	_, err := tc.service.CreateTeam("Alpha", "", 9999, nil)
	require.Error(t, err)
	assert.Equal(t, ErrCodeNotFound, CodeOf(err))

	// No team row was persisted.
	_, err = tc.stors.TeamStor.GetTeamByName("Alpha")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateTeamUnknownMemberRejectsWholeBatch(t *testing.T) {
	tc := newServiceTestCase(t)
	users := tc.createUsers(t, "u1", "u2")

	_, err := tc.service.CreateTeam("Alpha", "", users[0].ID, []int{users[1].ID, 9999})
	require.Error(t, err)
	assert.Equal(t, ErrCodeNotFound, CodeOf(err))

	// No team row and no role changes persisted.
	_, err = tc.stors.TeamStor.GetTeamByName("Alpha")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	for _, u := range users {
		refreshed, err := tc.stors.UserStor.GetUserByID(u.ID)
		require.NoError(t, err)
		assert.Empty(t, refreshed.Role)
		assert.Nil(t, refreshed.TeamID)
	}
}

func TestCreateTeamSurfacesServiceError(t *testing.T) {
	tc := newServiceTestCase(t)
	users := tc.createUsers(t, "u1")

	_, err := tc.service.CreateTeam("Alpha", "", users[0].ID, nil)
	require.NoError(t, err)

	_, err = tc.service.CreateTeam("Alpha", "", users[0].ID, nil)
	require.Error(t, err)

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Contains(t, e.Message, "Alpha")
}

func TestListTeams(t *testing.T) {
	tc := newServiceTestCase(t)

	teams, err := tc.service.ListTeams()
	require.NoError(t, err)
	assert.Empty(t, teams)

	users := tc.createUsers(t, "u1", "u2")
	_, err = tc.service.CreateTeam("Alpha", "", users[0].ID, nil)
	require.NoError(t, err)
	_, err = tc.service.CreateTeam("Beta", "", users[1].ID, nil)
	require.NoError(t, err)

	teams, err = tc.service.ListTeams()
	require.NoError(t, err)
	assert.Len(t, teams, 2)
}

func TestGetTeamUnknownID(t *testing.T) {
	tc := newServiceTestCase(t)

	_, err := tc.service.GetTeam(9999)
	require.Error(t, err)
	assert.Equal(t, ErrCodeNotFound, CodeOf(err))
}

func TestGetTeamBySlug(t *testing.T) {
	tc := newServiceTestCase(t)
	users := tc.createUsers(t, "u1")

	created, err := tc.service.CreateTeam("Alpha Crew", "", users[0].ID, nil)
	require.NoError(t, err)

	team, err := tc.service.GetTeamBySlug("alpha-crew")
	require.NoError(t, err)
	assert.Equal(t, created.ID, team.ID)

	_, err = tc.service.GetTeamBySlug("no-such-team")
	assert.Equal(t, ErrCodeNotFound, CodeOf(err))
}

func TestUpdateTeam(t *testing.T) {
	tc := newServiceTestCase(t)
	users := tc.createUsers(t, "u1")

	team, err := tc.service.CreateTeam("Alpha", "old", users[0].ID, nil)
	require.NoError(t, err)

	newName := "Alpha Prime"
	updated, err := tc.service.UpdateTeam(team.ID, &newName, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alpha Prime", updated.Name)
	assert.Equal(t, "old", updated.Description)

	newDescription := "new"
	updated, err = tc.service.UpdateTeam(team.ID, nil, &newDescription)
	require.NoError(t, err)
	assert.Equal(t, "Alpha Prime", updated.Name)
	assert.Equal(t, "new", updated.Description)
}

func TestUpdateTeamNameCollisionFails(t *testing.T) {
	tc := newServiceTestCase(t)
	users := tc.createUsers(t, "u1", "u2")

	_, err := tc.service.CreateTeam("Alpha", "", users[0].ID, nil)
	require.NoError(t, err)

	beta, err := tc.service.CreateTeam("Beta", "", users[1].ID, nil)
	require.NoError(t, err)

	collidingName := "Alpha"
	_, err = tc.service.UpdateTeam(beta.ID, &collidingName, nil)
	require.Error(t, err)
	assert.Equal(t, ErrCodeNameExists, CodeOf(err))

	// The stored name is unchanged.
	refreshed, err := tc.service.GetTeam(beta.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beta", refreshed.Name)
}

func TestUpdateTeamSameNameIsNotACollision(t *testing.T) {
	tc := newServiceTestCase(t)
	users := tc.createUsers(t, "u1")

	team, err := tc.service.CreateTeam("Alpha", "old", users[0].ID, nil)
	require.NoError(t, err)

	sameName := "Alpha"
	newDescription := "new"
	updated, err := tc.service.UpdateTeam(team.ID, &sameName, &newDescription)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", updated.Name)
	assert.Equal(t, "new", updated.Description)
}

func TestUpdateTeamUnknownID(t *testing.T) {
	tc := newServiceTestCase(t)

	name := "Alpha"
	_, err := tc.service.UpdateTeam(9999, &name, nil)
	assert.Equal(t, ErrCodeNotFound, CodeOf(err))
}

func TestDeleteTeamDetachesMembers(t *testing.T) {
	tc := newServiceTestCase(t)
	users := tc.createUsers(t, "u1", "u2", "u3")

	team, err := tc.service.CreateTeam("Alpha", "", users[0].ID, []int{users[1].ID, users[2].ID})
	require.NoError(t, err)

	require.NoError(t, tc.service.DeleteTeam(team.ID))

	for _, u := range users[1:] {
		refreshed, err := tc.stors.UserStor.GetUserByID(u.ID)
		require.NoError(t, err)
		assert.Nil(t, refreshed.TeamID)
	}

	_, err = tc.service.GetTeam(team.ID)
	assert.Equal(t, ErrCodeNotFound, CodeOf(err))
}

func TestDeleteTeamUnknownID(t *testing.T) {
	tc := newServiceTestCase(t)

	err := tc.service.DeleteTeam(9999)
	assert.Equal(t, ErrCodeNotFound, CodeOf(err))
}

func TestAddTeamMembers(t *testing.T) {
	tc := newServiceTestCase(t)
	users := tc.createUsers(t, "u1", "u2", "u3")

	team, err := tc.service.CreateTeam("Alpha", "", users[0].ID, nil)
	require.NoError(t, err)

	updated, err := tc.service.AddTeamMembers(team.ID, []int{users[1].ID, users[2].ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{users[0].ID, users[1].ID, users[2].ID}, memberIDs(updated))

	for _, id := range []int{users[1].ID, users[2].ID} {
		u, err := tc.stors.UserStor.GetUserByID(id)
		require.NoError(t, err)
		assert.Equal(t, model.RoleExternalMember, u.Role)
	}
}

func TestAddTeamMembersUnknownUserRejectsWholeBatch(t *testing.T) {
	tc := newServiceTestCase(t)
	users := tc.createUsers(t, "u1", "u2")

	team, err := tc.service.CreateTeam("Alpha", "", users[0].ID, nil)
	require.NoError(t, err)

	_, err = tc.service.AddTeamMembers(team.ID, []int{users[1].ID, 9999})
	require.Error(t, err)
	assert.Equal(t, ErrCodeNotFound, CodeOf(err))

	refreshed, err := tc.stors.UserStor.GetUserByID(users[1].ID)
	require.NoError(t, err)
	assert.Nil(t, refreshed.TeamID)
}

func TestRemoveTeamMember(t *testing.T) {
	tc := newServiceTestCase(t)
	users := tc.createUsers(t, "u1", "u2")

	team, err := tc.service.CreateTeam("Alpha", "", users[0].ID, []int{users[1].ID})
	require.NoError(t, err)

	require.NoError(t, tc.service.RemoveTeamMember(team.ID, users[1].ID))

	refreshed, err := tc.stors.UserStor.GetUserByID(users[1].ID)
	require.NoError(t, err)
	assert.Nil(t, refreshed.TeamID)
	assert.Empty(t, refreshed.Role)

	updated, err := tc.service.GetTeam(team.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{users[0].ID}, memberIDs(updated))
}

func TestRemoveTeamMemberNotOnTeam(t *testing.T) {
	tc := newServiceTestCase(t)
	users := tc.createUsers(t, "u1", "u2", "outsider")

	team, err := tc.service.CreateTeam("Alpha", "", users[0].ID, []int{users[1].ID})
	require.NoError(t, err)

	err = tc.service.RemoveTeamMember(team.ID, users[2].ID)
	require.Error(t, err)
	assert.Equal(t, ErrCodeNotFound, CodeOf(err))
}

func TestMoveUserToAnotherTeam(t *testing.T) {
	tc := newServiceTestCase(t)
	users := tc.createUsers(t, "admin1", "admin2")

	src, err := tc.service.CreateTeam("Src", "", users[0].ID, nil)
	require.NoError(t, err)

	dest, err := tc.service.CreateTeam("Dest", "", users[1].ID, nil)
	require.NoError(t, err)

	// The moved user was Src's super admin; the move resets the role.
	moved, err := tc.service.MoveUserToAnotherTeam(users[0].ID, dest.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{users[0].ID, users[1].ID}, memberIDs(moved))

	u, err := tc.stors.UserStor.GetUserByID(users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleExternalMember, u.Role)
	require.NotNil(t, u.TeamID)
	assert.Equal(t, dest.ID, *u.TeamID)

	srcRefreshed, err := tc.service.GetTeam(src.ID)
	require.NoError(t, err)
	assert.Empty(t, srcRefreshed.Members)
}

func TestMoveUserToUnknownTeam(t *testing.T) {
	tc := newServiceTestCase(t)
	users := tc.createUsers(t, "u1")

	_, err := tc.service.MoveUserToAnotherTeam(users[0].ID, 9999)
	assert.Equal(t, ErrCodeNotFound, CodeOf(err))

	_, err = tc.service.MoveUserToAnotherTeam(9999, 1)
	assert.Equal(t, ErrCodeNotFound, CodeOf(err))
}
