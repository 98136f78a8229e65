package repository

import (
	"fmt"
	"testing"
	"time"

	"tasktrack/internal/abstraction"
	"tasktrack/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTaskRepo(t *testing.T) *task {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.TaskEntityModel{}))
	return NewTask(db)
}

func insertTask(t *testing.T, r *task, entityId int, title, description, category, priority string) *model.TaskEntityModel {
	t.Helper()

	data := &model.TaskEntityModel{
		TaskEntity: model.TaskEntity{
			Title:       title,
			Description: description,
			DueDate:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			Status:      model.TaskStatusPending,
			EntityId:    entityId,
			Category:    category,
			Priority:    priority,
		},
	}
	require.NoError(t, r.Create(&abstraction.Context{}, data).Error)
	return data
}

func entityPtr(v int) *int { return &v }

func TestFindInsertionOrder(t *testing.T) {
	r := newTaskRepo(t)
	first := insertTask(t, r, 1, "first", "x", "", "")
	second := insertTask(t, r, 1, "second", "x", "", "")
	third := insertTask(t, r, 1, "third", "x", "", "")

	data, err := r.Find(&abstraction.Context{}, &TaskFilter{})
	require.NoError(t, err)
	require.Len(t, data, 3)
	assert.Equal(t, []int{first.ID, second.ID, third.ID}, []int{data[0].ID, data[1].ID, data[2].ID})
}

func TestFindSearchCaseInsensitive(t *testing.T) {
	r := newTaskRepo(t)
	insertTask(t, r, 1, "Prepare REPORT", "numbers", "", "")
	insertTask(t, r, 1, "Dentist", "bring the report printout", "", "")
	insertTask(t, r, 1, "Groceries", "milk and eggs", "", "")

	data, err := r.Find(&abstraction.Context{}, &TaskFilter{Search: "Report"})
	require.NoError(t, err)
	assert.Len(t, data, 2)
}

func TestFindSearchMatchesLiterally(t *testing.T) {
	r := newTaskRepo(t)
	insertTask(t, r, 1, "Pay rent", "monthly", "", "")
	insertTask(t, r, 1, "Dentist", "bring insurance card", "", "")

	// punctuation matches nothing rather than everything
	data, err := r.Find(&abstraction.Context{}, &TaskFilter{Search: "!!!"})
	require.NoError(t, err)
	assert.Empty(t, data)

	// the wildcard characters are literals in search text
	insertTask(t, r, 1, "50% done", "progress", "", "")
	data, err = r.Find(&abstraction.Context{}, &TaskFilter{Search: "50%"})
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, "50% done", data[0].Title)

	data, err = r.Find(&abstraction.Context{}, &TaskFilter{Search: "_"})
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFindSearchArabicText(t *testing.T) {
	r := newTaskRepo(t)
	insertTask(t, r, 1, "مهمة العمل", "تقرير نهاية الشهر", "", "")
	insertTask(t, r, 1, "Dentist", "bring the report printout", "", "")

	data, err := r.Find(&abstraction.Context{}, &TaskFilter{Search: "العمل"})
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, "مهمة العمل", data[0].Title)

	data, err = r.Find(&abstraction.Context{}, &TaskFilter{Search: "الشهر"})
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, "مهمة العمل", data[0].Title)
}

func TestFindScopePinsEveryBranch(t *testing.T) {
	r := newTaskRepo(t)
	insertTask(t, r, 1, "report one", "x", model.TaskCategoryAcademic, model.TaskPriorityRed)
	insertTask(t, r, 2, "report two", "x", model.TaskCategoryAcademic, model.TaskPriorityRed)

	data, err := r.Find(&abstraction.Context{}, &TaskFilter{EntityId: entityPtr(1), Search: "report"})
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, 1, data[0].EntityId)

	data, err = r.Find(&abstraction.Context{}, &TaskFilter{EntityId: entityPtr(1), Category: model.TaskCategoryAcademic, Priority: model.TaskPriorityRed})
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, 1, data[0].EntityId)
}

func TestUpdateReplacesEveryColumn(t *testing.T) {
	r := newTaskRepo(t)
	existing := insertTask(t, r, 1, "old", "old desc", model.TaskCategoryAcademic, model.TaskPriorityRed)

	replacement := &model.TaskEntityModel{
		ID: existing.ID,
		TaskEntity: model.TaskEntity{
			Title:       "new",
			Description: "new desc",
			DueDate:     time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			Status:      model.TaskStatusCompleted,
			EntityId:    existing.EntityId,
		},
	}
	require.NoError(t, r.Update(&abstraction.Context{}, replacement).Error)

	got, err := r.FindById(&abstraction.Context{}, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Empty(t, got.Category)
	assert.Empty(t, got.Priority)
}

func TestCountByPriorityZeroFilled(t *testing.T) {
	r := newTaskRepo(t)
	insertTask(t, r, 1, "a", "x", "", model.TaskPriorityRed)
	insertTask(t, r, 2, "b", "x", "", model.TaskPriorityGreen)

	counts, err := r.CountByPriority(&abstraction.Context{}, entityPtr(1))
	require.NoError(t, err)
	assert.Equal(t, 1, counts[model.TaskPriorityRed])
	assert.Equal(t, 0, counts[model.TaskPriorityGreen])
	assert.Equal(t, 0, counts[model.TaskPriorityGray])
}

func TestCountDistinctEntities(t *testing.T) {
	r := newTaskRepo(t)
	insertTask(t, r, 1, "a", "x", "", "")
	insertTask(t, r, 1, "b", "x", "", "")
	insertTask(t, r, 3, "c", "x", "", "")

	count, err := r.CountDistinctEntities(&abstraction.Context{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, *count)

	count, err = r.Count(&abstraction.Context{}, entityPtr(1))
	require.NoError(t, err)
	assert.Equal(t, 2, *count)
}
