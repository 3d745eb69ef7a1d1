package stor

import (
	"github.com/hashicorp/go-uuid"
	"github.com/materials-commons/roster/pkg/rosterdb/model"
	"gorm.io/gorm"
)

type GormUserStor struct {
	db *gorm.DB
}

func NewGormUserStor(db *gorm.DB) *GormUserStor {
	return &GormUserStor{db: db}
}

// CreateUser creates a new user.
func (s *GormUserStor) CreateUser(user *model.User) (*model.User, error) {
	var err error

	if user.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *GormUserStor) GetUserByID(userID int) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUsersByIDs returns the users that exist for the given ids. Ids with no
// matching user are silently dropped; callers that care compare counts.
func (s *GormUserStor) GetUsersByIDs(userIDs []int) ([]model.User, error) {
	var users []model.User

	if len(userIDs) == 0 {
		return users, nil
	}

	err := s.db.Where("id in ?", userIDs).Find(&users).Error
	return users, err
}

func (s *GormUserStor) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
