package stor

import (
	"github.com/materials-commons/roster/pkg/rosterdb/model"
	"gorm.io/gorm"
)

type TeamStor interface {
	CreateTeam(team *model.Team, admin *model.User, members []model.User) (*model.Team, error)
	GetTeamByID(teamID int) (*model.Team, error)
	GetTeamByName(name string) (*model.Team, error)
	GetTeamBySlug(slug string) (*model.Team, error)
	ListTeams() ([]model.Team, error)
	UpdateTeam(team *model.Team, updates *model.Team) (*model.Team, error)
	DeleteTeam(team *model.Team) error
	AddMembersToTeam(team *model.Team, users []model.User) (*model.Team, error)
	RemoveMemberFromTeam(team *model.Team, user *model.User) error
	MoveUserToTeam(user *model.User, dest *model.Team) (*model.Team, error)
}

type UserStor interface {
	CreateUser(user *model.User) (*model.User, error)
	GetUserByID(userID int) (*model.User, error)
	GetUsersByIDs(userIDs []int) ([]model.User, error)
	GetUserByEmail(email string) (*model.User, error)
}

type Stors struct {
	TeamStor TeamStor
	UserStor UserStor
}

func NewGormStors(db *gorm.DB) *Stors {
	return &Stors{
		TeamStor: NewGormTeamStor(db),
		UserStor: NewGormUserStor(db),
	}
}
