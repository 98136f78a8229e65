package repository

import (
	"strings"

	"tasktrack/internal/abstraction"
	"tasktrack/internal/model"
	"tasktrack/pkg/util/general"

	"gorm.io/gorm"
)

// TaskFilter is the narrowed filter the service hands down after
// precedence resolution. EntityId nil means unrestricted (admin);
// otherwise every branch is pinned to that entity.
type TaskFilter struct {
	EntityId *int
	Search   string
	Category string
	Priority string
}

type Task interface {
	Create(ctx *abstraction.Context, data *model.TaskEntityModel) *gorm.DB
	FindById(ctx *abstraction.Context, id int) (*model.TaskEntityModel, error)
	Find(ctx *abstraction.Context, filter *TaskFilter) (data []*model.TaskEntityModel, err error)
	Update(ctx *abstraction.Context, data *model.TaskEntityModel) *gorm.DB
	UpdateStatus(ctx *abstraction.Context, id int, status string) *gorm.DB
	Delete(ctx *abstraction.Context, data *model.TaskEntityModel) *gorm.DB
	Count(ctx *abstraction.Context, entityId *int) (data *int, err error)
	CountDistinctEntities(ctx *abstraction.Context, entityId *int) (data *int, err error)
	CountByPriority(ctx *abstraction.Context, entityId *int) (map[string]int, error)
}

type task struct {
	abstraction.Repository
}

func NewTask(db *gorm.DB) *task {
	return &task{
		Repository: abstraction.Repository{
			Db: db,
		},
	}
}

func (r *task) Create(ctx *abstraction.Context, data *model.TaskEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).Create(data)
}

func (r *task) FindById(ctx *abstraction.Context, id int) (*model.TaskEntityModel, error) {
	conn := r.CheckTrx(ctx)

	var data model.TaskEntityModel
	err := conn.
		Where("id = ?", id).
		First(&data).
		Error
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *task) Find(ctx *abstraction.Context, filter *TaskFilter) (data []*model.TaskEntityModel, err error) {
	conn := r.CheckTrx(ctx).Order("id ASC")
	conn = applyScope(conn, filter.EntityId)
	if filter.Search != "" {
		val := "%" + general.EscapeLike(strings.ToLower(filter.Search)) + "%"
		conn = conn.Where("LOWER(title) LIKE ? ESCAPE '|' OR LOWER(description) LIKE ? ESCAPE '|'", val, val)
	}
	if filter.Category != "" {
		conn = conn.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		conn = conn.Where("priority = ?", filter.Priority)
	}
	err = conn.Find(&data).Error
	return
}

// Update is a full replace: every mutable column is overwritten,
// zero values included. The id never changes.
func (r *task) Update(ctx *abstraction.Context, data *model.TaskEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).
		Model(&model.TaskEntityModel{}).
		Where("id = ?", data.ID).
		Select("title", "description", "due_date", "status", "entity_id",
			"category", "priority", "task_identifier", "user_name").
		Updates(data)
}

func (r *task) UpdateStatus(ctx *abstraction.Context, id int, status string) *gorm.DB {
	return r.CheckTrx(ctx).
		Model(&model.TaskEntityModel{}).
		Where("id = ?", id).
		Update("status", status)
}

func (r *task) Delete(ctx *abstraction.Context, data *model.TaskEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).Delete(data)
}

func (r *task) Count(ctx *abstraction.Context, entityId *int) (data *int, err error) {
	var count model.TaskCountDataModel
	conn := r.CheckTrx(ctx).
		Table("task").
		Select("COUNT(*) AS count")
	conn = applyScope(conn, entityId)
	err = conn.Find(&count).Error
	data = &count.Count
	return
}

func (r *task) CountDistinctEntities(ctx *abstraction.Context, entityId *int) (data *int, err error) {
	var count model.TaskCountDataModel
	conn := r.CheckTrx(ctx).
		Table("task").
		Select("COUNT(DISTINCT entity_id) AS count")
	conn = applyScope(conn, entityId)
	err = conn.Find(&count).Error
	data = &count.Count
	return
}

func (r *task) CountByPriority(ctx *abstraction.Context, entityId *int) (map[string]int, error) {
	var rows []model.TaskPriorityCountDataModel
	conn := r.CheckTrx(ctx).
		Table("task").
		Select("priority, COUNT(*) AS count").
		Group("priority")
	conn = applyScope(conn, entityId)
	if err := conn.Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := map[string]int{
		model.TaskPriorityRed:   0,
		model.TaskPriorityGreen: 0,
		model.TaskPriorityGray:  0,
	}
	for _, row := range rows {
		if _, ok := counts[row.Priority]; ok {
			counts[row.Priority] = row.Count
		}
	}
	return counts, nil
}

func applyScope(conn *gorm.DB, entityId *int) *gorm.DB {
	if entityId != nil {
		return conn.Where("entity_id = ?", *entityId)
	}
	return conn
}
