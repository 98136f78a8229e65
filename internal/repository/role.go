package repository

import (
	"tasktrack/internal/abstraction"
	"tasktrack/internal/model"

	"gorm.io/gorm"
)

type Role interface {
	Find(ctx *abstraction.Context) (data []*model.RoleEntityModel, err error)
	FindById(ctx *abstraction.Context, id int) (*model.RoleEntityModel, error)
}

type role struct {
	abstraction.Repository
}

func NewRole(db *gorm.DB) *role {
	return &role{
		Repository: abstraction.Repository{
			Db: db,
		},
	}
}

func (r *role) Find(ctx *abstraction.Context) (data []*model.RoleEntityModel, err error) {
	err = r.CheckTrx(ctx).
		Order("id ASC").
		Find(&data).
		Error
	return
}

func (r *role) FindById(ctx *abstraction.Context, id int) (*model.RoleEntityModel, error) {
	conn := r.CheckTrx(ctx)

	var data model.RoleEntityModel
	err := conn.
		Where("id = ?", id).
		First(&data).
		Error
	if err != nil {
		return nil, err
	}
	return &data, nil
}
