package stor

import (
	"github.com/gosimple/slug"
	"github.com/hashicorp/go-uuid"
	"github.com/materials-commons/roster/pkg/rosterdb/model"
	"gorm.io/gorm"
)

type GormTeamStor struct {
	db *gorm.DB
}

func NewGormTeamStor(db *gorm.DB) *GormTeamStor {
	return &GormTeamStor{db: db}
}

// CreateTeam creates the team and attaches the admin and members to it in a
// single transaction. The admin's role is set to EXTERNAL_SUPER_ADMIN, each
// member's role to EXTERNAL_MEMBER, and every attached user's team reference
// points at the new team. The admin is skipped in the member batch so the
// admin role assignment can't be overwritten. The returned team has its
// member list loaded. If any step fails the transaction rolls back and no
// team row or role change is left behind.
func (s *GormTeamStor) CreateTeam(team *model.Team, admin *model.User, members []model.User) (*model.Team, error) {
	var err error

	if team.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	team.Slug = slug.Make(team.Name)

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		adminUpdates := map[string]interface{}{
			"role":    model.RoleExternalSuperAdmin,
			"team_id": team.ID,
		}
		if err := tx.Model(&model.User{}).Where("id = ?", admin.ID).Updates(adminUpdates).Error; err != nil {
			return err
		}

		var memberIDs []int
		for _, member := range members {
			if member.ID == admin.ID {
				continue
			}
			memberIDs = append(memberIDs, member.ID)
		}

		if len(memberIDs) != 0 {
			memberUpdates := map[string]interface{}{
				"role":    model.RoleExternalMember,
				"team_id": team.ID,
			}
			if err := tx.Model(&model.User{}).Where("id in ?", memberIDs).Updates(memberUpdates).Error; err != nil {
				return err
			}
		}

		// Re-read the team with its resolved member set so the caller gets
		// back what the transaction actually committed.
		return tx.Preload("Members").First(team, team.ID).Error
	})

	if err != nil {
		return nil, err
	}

	return team, nil
}

func (s *GormTeamStor) GetTeamByID(teamID int) (*model.Team, error) {
	var team model.Team
	if err := s.db.Preload("Members").First(&team, teamID).Error; err != nil {
		return nil, err
	}

	return &team, nil
}

func (s *GormTeamStor) GetTeamByName(name string) (*model.Team, error) {
	var team model.Team
	if err := s.db.Where("name = ?", name).First(&team).Error; err != nil {
		return nil, err
	}

	return &team, nil
}

func (s *GormTeamStor) GetTeamBySlug(teamSlug string) (*model.Team, error) {
	var team model.Team
	if err := s.db.Preload("Members").Where("slug = ?", teamSlug).First(&team).Error; err != nil {
		return nil, err
	}

	return &team, nil
}

func (s *GormTeamStor) ListTeams() ([]model.Team, error) {
	var teams []model.Team
	err := s.db.Preload("Members").Find(&teams).Error
	return teams, err
}

// UpdateTeam applies the name/description in updates to team. The slug is
// regenerated whenever the name changes.
func (s *GormTeamStor) UpdateTeam(team *model.Team, updates *model.Team) (*model.Team, error) {
	changes := map[string]interface{}{
		"name":        updates.Name,
		"description": updates.Description,
	}

	if updates.Name != team.Name {
		changes["slug"] = slug.Make(updates.Name)
	}

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Model(team).Updates(changes).Error
	})

	if err != nil {
		return nil, err
	}

	return s.GetTeamByID(team.ID)
}

// DeleteTeam clears the team reference on every member and removes the team
// row, all in one transaction. A failure part way through rolls back so no
// member is left detached from a team that still exists.
func (s *GormTeamStor) DeleteTeam(team *model.Team) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		clearTeam := map[string]interface{}{"team_id": nil}
		if err := tx.Model(&model.User{}).Where("team_id = ?", team.ID).Updates(clearTeam).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Team{}, team.ID).Error
	})
}

// AddMembersToTeam points each user at the team with role EXTERNAL_MEMBER.
// Users already on another team are reassigned, the same last write wins
// semantics CreateTeam applies to its member batch.
func (s *GormTeamStor) AddMembersToTeam(team *model.Team, users []model.User) (*model.Team, error) {
	var userIDs []int
	for _, user := range users {
		userIDs = append(userIDs, user.ID)
	}

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		memberUpdates := map[string]interface{}{
			"role":    model.RoleExternalMember,
			"team_id": team.ID,
		}
		return tx.Model(&model.User{}).Where("id in ?", userIDs).Updates(memberUpdates).Error
	})

	if err != nil {
		return nil, err
	}

	return s.GetTeamByID(team.ID)
}

// RemoveMemberFromTeam clears the user's team reference and team role.
func (s *GormTeamStor) RemoveMemberFromTeam(team *model.Team, user *model.User) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		clearMembership := map[string]interface{}{
			"role":    "",
			"team_id": nil,
		}
		return tx.Model(&model.User{}).Where("id = ?", user.ID).Updates(clearMembership).Error
	})
}

// MoveUserToTeam detaches the user from its current team and attaches it to
// dest with the role reset to EXTERNAL_MEMBER. Detach and attach are a
// single row update so there is no window where the user belongs to both or
// neither team.
func (s *GormTeamStor) MoveUserToTeam(user *model.User, dest *model.Team) (*model.Team, error) {
	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		membership := map[string]interface{}{
			"role":    model.RoleExternalMember,
			"team_id": dest.ID,
		}
		return tx.Model(&model.User{}).Where("id = ?", user.ID).Updates(membership).Error
	})

	if err != nil {
		return nil, err
	}

	return s.GetTeamByID(dest.ID)
}
