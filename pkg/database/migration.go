package database

import (
	"tasktrack/internal/model"
	"tasktrack/pkg/constant"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migrate keeps the schema current and seeds the role table plus a
// bootstrap admin account on an empty database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.RoleEntityModel{},
		&model.UserEntityModel{},
		&model.TaskEntityModel{},
	); err != nil {
		return err
	}
	return seed(db)
}

func seed(db *gorm.DB) error {
	var roleCount int64
	if err := db.Model(&model.RoleEntityModel{}).Count(&roleCount).Error; err != nil {
		return err
	}
	if roleCount == 0 {
		roles := []model.RoleEntityModel{
			{ID: constant.ROLE_ID_ADMIN, RoleEntity: model.RoleEntity{Name: constant.ROLE_NAME_ADMIN, Description: "unrestricted access to every entity"}},
			{ID: constant.ROLE_ID_USER, RoleEntity: model.RoleEntity{Name: constant.ROLE_NAME_USER, Description: "scoped to the account entity"}},
		}
		if err := db.Create(&roles).Error; err != nil {
			return err
		}
		logrus.Info("seeded role table")
	}

	var userCount int64
	if err := db.Model(&model.UserEntityModel{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := model.UserEntityModel{
			UserEntity: model.UserEntity{
				Name:     "Administrator",
				Email:    "admin@tasktrack.local",
				Password: string(hashed),
				RoleId:   constant.ROLE_ID_ADMIN,
				EntityId: 1,
			},
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		logrus.Info("seeded bootstrap admin account")
	}
	return nil
}
