package teams

import (
	"errors"

	"github.com/materials-commons/roster/pkg/rosterdb/model"
	"github.com/materials-commons/roster/pkg/rosterdb/stor"
	"gorm.io/gorm"
)

// TeamService is the team membership manager. It validates preconditions
// against current state, applies mutations through the stors (which run them
// transactionally), and reports failures as *Error values. It holds no
// entity state between requests; rows are fetched fresh per call.
type TeamService struct {
	teamStor stor.TeamStor
	userStor stor.UserStor
}

func NewTeamService(stors *stor.Stors) *TeamService {
	return &TeamService{teamStor: stors.TeamStor, userStor: stors.UserStor}
}

// CreateTeam creates a team with adminID as its super admin and memberIDs as
// its members. All validation happens before any mutation: the name must be
// free (ALREADY_EXISTS), the admin must exist (NOT_FOUND), and every member
// id must resolve (NOT_FOUND rejects the whole batch even if only one id is
// bad). The mutation itself is a single transaction in the stor, so either
// the team row and every role change commit together or none do.
func (s *TeamService) CreateTeam(name, description string, adminID int, memberIDs []int) (*model.Team, error) {
	var team *model.Team

	err := withNameMutex(name, func() error {
		var err error
		team, err = s.createTeam(name, description, adminID, memberIDs)
		return err
	})

	if err != nil {
		return nil, err
	}

	return team, nil
}

func (s *TeamService) createTeam(name, description string, adminID int, memberIDs []int) (*model.Team, error) {
	if _, err := s.teamStor.GetTeamByName(name); err == nil {
		return nil, newError(ErrCodeAlreadyExists, "team '%s' already exists", name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, createFailureError(err)
	}

	admin, err := s.userStor.GetUserByID(adminID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, newError(ErrCodeNotFound, "admin user %d not found", adminID)
	case err != nil:
		return nil, createFailureError(err)
	}

	members, err := s.userStor.GetUsersByIDs(memberIDs)
	if err != nil {
		return nil, createFailureError(err)
	}

	if len(members) != len(memberIDs) {
		return nil, newError(ErrCodeNotFound, "one or more member users not found")
	}

	team, err := s.teamStor.CreateTeam(&model.Team{Name: name, Description: description}, admin, members)
	switch {
	case err == nil:
		return team, nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		// A concurrent create slipped past the lookup; the unique index on
		// the name caught it.
		return nil, newError(ErrCodeAlreadyExists, "team '%s' already exists", name)
	default:
		return nil, createFailureError(err)
	}
}

// ListTeams returns every team with its resolved member list.
func (s *TeamService) ListTeams() ([]model.Team, error) {
	return s.teamStor.ListTeams()
}

// GetTeam returns the team with its resolved member list.
func (s *TeamService) GetTeam(teamID int) (*model.Team, error) {
	team, err := s.teamStor.GetTeamByID(teamID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, newError(ErrCodeNotFound, "team %d not found", teamID)
	case err != nil:
		return nil, err
	}

	return team, nil
}

func (s *TeamService) GetTeamBySlug(teamSlug string) (*model.Team, error) {
	team, err := s.teamStor.GetTeamBySlug(teamSlug)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, newError(ErrCodeNotFound, "team '%s' not found", teamSlug)
	case err != nil:
		return nil, err
	}

	return team, nil
}

// UpdateTeam applies the supplied name and/or description to the team and
// returns the updated aggregate. A nil field is left unchanged. Renaming to
// a name another team holds fails with NAME_EXISTS and leaves the stored
// name untouched.
func (s *TeamService) UpdateTeam(teamID int, newName, newDescription *string) (*model.Team, error) {
	team, err := s.GetTeam(teamID)
	if err != nil {
		return nil, err
	}

	updates := &model.Team{Name: team.Name, Description: team.Description}

	if newName != nil && *newName != team.Name {
		if _, err := s.teamStor.GetTeamByName(*newName); err == nil {
			return nil, newError(ErrCodeNameExists, "team '%s' already exists", *newName)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		updates.Name = *newName
	}

	if newDescription != nil {
		updates.Description = *newDescription
	}

	updated, err := s.teamStor.UpdateTeam(team, updates)
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, newError(ErrCodeNameExists, "team '%s' already exists", updates.Name)
	case err != nil:
		return nil, err
	}

	return updated, nil
}

// DeleteTeam removes the team after detaching its members. Detach and
// removal commit in one transaction, so there is no window where some
// members are detached while the team row still exists.
func (s *TeamService) DeleteTeam(teamID int) error {
	team, err := s.GetTeam(teamID)
	if err != nil {
		return err
	}

	return s.teamStor.DeleteTeam(team)
}

// AddTeamMembers attaches every user in userIDs to the team with role
// EXTERNAL_MEMBER. All ids must resolve (count compare, NOT_FOUND rejects
// the whole batch); users already on another team are reassigned, matching
// the last write wins semantics CreateTeam applies to its member batch. The
// assignment is one transaction.
func (s *TeamService) AddTeamMembers(teamID int, userIDs []int) (*model.Team, error) {
	team, err := s.GetTeam(teamID)
	if err != nil {
		return nil, err
	}

	users, err := s.userStor.GetUsersByIDs(userIDs)
	if err != nil {
		return nil, err
	}

	if len(users) != len(userIDs) {
		return nil, newError(ErrCodeNotFound, "one or more users not found")
	}

	return s.teamStor.AddMembersToTeam(team, users)
}

// RemoveTeamMember detaches the user from the team, clearing both the team
// reference and the team role. The user must currently be a member of that
// team.
func (s *TeamService) RemoveTeamMember(teamID, userID int) error {
	team, err := s.GetTeam(teamID)
	if err != nil {
		return err
	}

	user, err := s.userStor.GetUserByID(userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return newError(ErrCodeNotFound, "user %d not found", userID)
	case err != nil:
		return err
	}

	if !user.OnTeam(team.ID) {
		return newError(ErrCodeNotFound, "user %d is not a member of team '%s'", userID, team.Name)
	}

	return s.teamStor.RemoveMemberFromTeam(team, user)
}

// MoveUserToAnotherTeam detaches the user from its current team (if any) and
// attaches it to the destination team with the role reset to
// EXTERNAL_MEMBER. Detach and attach happen atomically.
func (s *TeamService) MoveUserToAnotherTeam(userID, destTeamID int) (*model.Team, error) {
	user, err := s.userStor.GetUserByID(userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, newError(ErrCodeNotFound, "user %d not found", userID)
	case err != nil:
		return nil, err
	}

	dest, err := s.GetTeam(destTeamID)
	if err != nil {
		return nil, err
	}

	return s.teamStor.MoveUserToTeam(user, dest)
}
