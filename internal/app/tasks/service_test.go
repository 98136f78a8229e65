package tasks

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"tasktrack/internal/abstraction"
	"tasktrack/internal/dto"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
	"tasktrack/pkg/constant"
	"tasktrack/pkg/util/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.TaskEntityModel{}))

	return &service{
		TaskRepository: repository.NewTask(db),
		DB:             db,
	}
}

func adminCtx() *abstraction.Context {
	return &abstraction.Context{
		Auth: &abstraction.AuthContext{ID: 1, RoleID: constant.ROLE_ID_ADMIN, EntityID: 1},
		Lang: "en",
	}
}

func userCtx(entityId int) *abstraction.Context {
	return &abstraction.Context{
		Auth: &abstraction.AuthContext{ID: 2, RoleID: constant.ROLE_ID_USER, EntityID: entityId},
		Lang: "en",
	}
}

func intPtr(v int) *int { return &v }

func seedTask(t *testing.T, s *service, entityId int, title, description, category, priority string) *model.TaskEntityModel {
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
	require.NoError(t, s.TaskRepository.Create(&abstraction.Context{}, data).Error)
	return data
}

func asMetaError(t *testing.T, err error) *response.MetaError {
	t.Helper()

	var me *response.MetaError
	require.True(t, errors.As(err, &me), "expected *response.MetaError, got %T", err)
	return me
}

func TestResolveFilterPrecedence(t *testing.T) {
	admin := adminCtx()

	tests := []struct {
		name    string
		ctx     *abstraction.Context
		payload dto.TaskFilterRequest
		want    repository.TaskFilter
	}{
		{
			name:    "search wins over category and priority",
			ctx:     admin,
			payload: dto.TaskFilterRequest{Search: "report", Category: model.TaskCategoryAcademic, Priority: model.TaskPriorityRed},
			want:    repository.TaskFilter{Search: "report"},
		},
		{
			name:    "category and priority combine",
			ctx:     admin,
			payload: dto.TaskFilterRequest{Category: model.TaskCategoryAcademic, Priority: model.TaskPriorityRed},
			want:    repository.TaskFilter{Category: model.TaskCategoryAcademic, Priority: model.TaskPriorityRed},
		},
		{
			name:    "category alone",
			ctx:     admin,
			payload: dto.TaskFilterRequest{Category: model.TaskCategoryProfessional},
			want:    repository.TaskFilter{Category: model.TaskCategoryProfessional},
		},
		{
			name:    "priority alone",
			ctx:     admin,
			payload: dto.TaskFilterRequest{Priority: model.TaskPriorityGreen},
			want:    repository.TaskFilter{Priority: model.TaskPriorityGreen},
		},
		{
			name:    "explicit entity for admin",
			ctx:     admin,
			payload: dto.TaskFilterRequest{EntityId: intPtr(7)},
			want:    repository.TaskFilter{EntityId: intPtr(7)},
		},
		{
			name:    "admin with nothing set sees everything",
			ctx:     admin,
			payload: dto.TaskFilterRequest{},
			want:    repository.TaskFilter{},
		},
		{
			name:    "non-admin entity param is ignored",
			ctx:     userCtx(3),
			payload: dto.TaskFilterRequest{EntityId: intPtr(7)},
			want:    repository.TaskFilter{EntityId: intPtr(3)},
		},
		{
			name:    "non-admin search is still pinned to own entity",
			ctx:     userCtx(3),
			payload: dto.TaskFilterRequest{Search: "report", EntityId: intPtr(7)},
			want:    repository.TaskFilter{EntityId: intPtr(3), Search: "report"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveFilter(tt.ctx, &tt.payload)
			assert.Equal(t, tt.want.Search, got.Search)
			assert.Equal(t, tt.want.Category, got.Category)
			assert.Equal(t, tt.want.Priority, got.Priority)
			if tt.want.EntityId == nil {
				assert.Nil(t, got.EntityId)
			} else {
				require.NotNil(t, got.EntityId)
				assert.Equal(t, *tt.want.EntityId, *got.EntityId)
			}
		})
	}
}

func TestFindScopedToCallerEntity(t *testing.T) {
	s := newTestService(t)
	seedTask(t, s, 1, "Prepare report", "quarterly numbers", model.TaskCategoryProfessional, model.TaskPriorityRed)
	seedTask(t, s, 1, "Book dentist", "appointment downtown", model.TaskCategoryAppointments, model.TaskPriorityGray)
	seedTask(t, s, 2, "Grade essays", "midterm batch", model.TaskCategoryAcademic, model.TaskPriorityGreen)

	res, err := s.Find(userCtx(1), &dto.TaskFilterRequest{EntityId: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, res["count"])

	res, err = s.Find(adminCtx(), &dto.TaskFilterRequest{EntityId: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 1, res["count"])

	res, err = s.Find(adminCtx(), &dto.TaskFilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, res["count"])
}

func TestFindSearchWinsOverOtherFilters(t *testing.T) {
	s := newTestService(t)
	seedTask(t, s, 1, "Prepare report", "quarterly numbers", model.TaskCategoryProfessional, model.TaskPriorityRed)
	seedTask(t, s, 1, "Review REPORT draft", "second pass", model.TaskCategoryAcademic, model.TaskPriorityGreen)
	seedTask(t, s, 1, "Book dentist", "appointment downtown", model.TaskCategoryAppointments, model.TaskPriorityGray)

	// category filter would exclude both matches; search must ignore it
	res, err := s.Find(adminCtx(), &dto.TaskFilterRequest{
		Search:   "report",
		Category: model.TaskCategoryAppointments,
		Priority: model.TaskPriorityGray,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res["count"])
}

func TestCategoryFilterNeverWidensScope(t *testing.T) {
	s := newTestService(t)
	seedTask(t, s, 1, "Pay rent", "monthly", model.TaskCategoryAppointments, model.TaskPriorityRed)
	seedTask(t, s, 2, "Submit thesis", "final draft", model.TaskCategoryAcademic, model.TaskPriorityGreen)

	res, err := s.Find(adminCtx(), &dto.TaskFilterRequest{Category: model.TaskCategoryAcademic})
	require.NoError(t, err)
	assert.Equal(t, 1, res["count"])

	// entity 1 has no academic task; the match on entity 2 stays hidden
	res, err = s.Find(userCtx(1), &dto.TaskFilterRequest{Category: model.TaskCategoryAcademic})
	require.NoError(t, err)
	assert.Equal(t, 0, res["count"])
}

func TestFindCategoryAndPriorityCombine(t *testing.T) {
	s := newTestService(t)
	seedTask(t, s, 1, "a", "x", model.TaskCategoryAcademic, model.TaskPriorityRed)
	seedTask(t, s, 1, "b", "x", model.TaskCategoryAcademic, model.TaskPriorityGreen)
	seedTask(t, s, 1, "c", "x", model.TaskCategoryProfessional, model.TaskPriorityRed)

	res, err := s.Find(adminCtx(), &dto.TaskFilterRequest{
		Category: model.TaskCategoryAcademic,
		Priority: model.TaskPriorityRed,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res["count"])
}

func TestCreateAssignsEntityFromCaller(t *testing.T) {
	s := newTestService(t)

	payload := &dto.TaskCreateRequest{
		Title:       "Prepare slides",
		Description: "for monday",
		DueDate:     "2026-09-15",
		EntityId:    intPtr(9), // must be overridden for non-admin
	}
	res, err := s.Create(userCtx(4), payload)
	require.NoError(t, err)

	data := res["data"].(map[string]interface{})
	assert.Equal(t, 4, data["entity_id"])
	assert.Equal(t, model.TaskStatusPending, data["status"])
	assert.Equal(t, model.TaskPriorityGray, data["priority"])
}

func TestCreateAdminRequiresEntity(t *testing.T) {
	s := newTestService(t)

	payload := &dto.TaskCreateRequest{
		Title:       "Prepare slides",
		Description: "for monday",
		DueDate:     "2026-09-15",
	}
	_, err := s.Create(adminCtx(), payload)
	me := asMetaError(t, err)
	assert.Equal(t, http.StatusBadRequest, me.Code)

	payload.EntityId = intPtr(2)
	res, err := s.Create(adminCtx(), payload)
	require.NoError(t, err)
	data := res["data"].(map[string]interface{})
	assert.Equal(t, 2, data["entity_id"])
}

func TestUpdateIsFullReplace(t *testing.T) {
	s := newTestService(t)
	existing := seedTask(t, s, 1, "Old title", "old description", model.TaskCategoryAcademic, model.TaskPriorityRed)
	existing.TaskIdentifier = "T-1"
	require.NoError(t, s.DB.Save(existing).Error)

	payload := &dto.TaskUpdateRequest{
		ID:          existing.ID,
		Title:       "New title",
		Description: "new description",
		DueDate:     "2026-10-01",
		Status:      model.TaskStatusCompleted,
	}
	_, err := s.Update(userCtx(1), payload)
	require.NoError(t, err)

	got, err := s.TaskRepository.FindById(&abstraction.Context{}, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "New title", got.Title)
	assert.Equal(t, model.TaskStatusCompleted, got.Status)
	// untouched payload fields overwrite, not merge
	assert.Empty(t, got.Category)
	assert.Empty(t, got.Priority)
	assert.Empty(t, got.TaskIdentifier)
	assert.Equal(t, 1, got.EntityId)
}

func TestUpdateIdMismatch(t *testing.T) {
	s := newTestService(t)
	existing := seedTask(t, s, 1, "Old title", "old description", "", "")

	payload := &dto.TaskUpdateRequest{
		ID:          existing.ID,
		BodyID:      intPtr(existing.ID + 1),
		Title:       "New title",
		Description: "new description",
		DueDate:     "2026-10-01",
		Status:      model.TaskStatusPending,
	}
	_, err := s.Update(userCtx(1), payload)
	me := asMetaError(t, err)
	assert.Equal(t, http.StatusBadRequest, me.Code)
}

func TestUpdateMissingTask(t *testing.T) {
	s := newTestService(t)

	payload := &dto.TaskUpdateRequest{
		ID:          99,
		Title:       "New title",
		Description: "new description",
		DueDate:     "2026-10-01",
		Status:      model.TaskStatusPending,
	}
	_, err := s.Update(userCtx(1), payload)
	me := asMetaError(t, err)
	assert.Equal(t, http.StatusNotFound, me.Code)
}

func TestUpdateStatus(t *testing.T) {
	s := newTestService(t)
	existing := seedTask(t, s, 1, "Old title", "old description", "", "")

	_, err := s.UpdateStatus(userCtx(1), &dto.TaskUpdateStatusRequest{
		ID:     existing.ID,
		Status: model.TaskStatusCompleted,
	})
	require.NoError(t, err)

	got, err := s.TaskRepository.FindById(&abstraction.Context{}, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusCompleted, got.Status)

	_, err = s.UpdateStatus(userCtx(1), &dto.TaskUpdateStatusRequest{ID: 99, Status: model.TaskStatusPending})
	me := asMetaError(t, err)
	assert.Equal(t, http.StatusNotFound, me.Code)
}

func TestDeleteTwiceReportsNotFound(t *testing.T) {
	s := newTestService(t)
	existing := seedTask(t, s, 1, "Old title", "old description", "", "")

	require.NoError(t, s.Delete(userCtx(1), &dto.TaskDeleteByIDRequest{ID: existing.ID}))

	err := s.Delete(userCtx(1), &dto.TaskDeleteByIDRequest{ID: existing.ID})
	me := asMetaError(t, err)
	assert.Equal(t, http.StatusNotFound, me.Code)
}

func TestFindByIdMissing(t *testing.T) {
	s := newTestService(t)

	_, err := s.FindById(adminCtx(), &dto.TaskFindByIDRequest{ID: 42})
	me := asMetaError(t, err)
	assert.Equal(t, http.StatusNotFound, me.Code)
}

func TestDashboardCounts(t *testing.T) {
	s := newTestService(t)
	seedTask(t, s, 1, "a", "x", "", model.TaskPriorityRed)
	seedTask(t, s, 1, "b", "x", "", model.TaskPriorityRed)
	seedTask(t, s, 2, "c", "x", "", model.TaskPriorityGreen)

	res, err := s.Dashboard(adminCtx(), &dto.TaskDashboardRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, *res["tasks_count"].(*int))
	assert.Equal(t, 2, *res["users_count"].(*int))

	res, err = s.Dashboard(userCtx(1), &dto.TaskDashboardRequest{EntityId: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, *res["tasks_count"].(*int))
	assert.Equal(t, 1, *res["users_count"].(*int))
}

func TestPriorityCountZeroFilled(t *testing.T) {
	s := newTestService(t)
	seedTask(t, s, 1, "a", "x", "", model.TaskPriorityRed)
	seedTask(t, s, 1, "b", "x", "", model.TaskPriorityRed)
	seedTask(t, s, 2, "c", "x", "", model.TaskPriorityGreen)

	res, err := s.PriorityCount(userCtx(1), &dto.TaskPriorityCountRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, res["red"])
	assert.Equal(t, 0, res["green"])
	assert.Equal(t, 0, res["gray"])
}

func TestShareLink(t *testing.T) {
	s := newTestService(t)
	existing := seedTask(t, s, 1, "Prepare report", "quarterly numbers", "", "")

	res, err := s.ShareLink(userCtx(1), &dto.TaskShareRequest{ID: existing.ID})
	require.NoError(t, err)

	link := res["link"].(string)
	assert.Contains(t, link, "https://wa.me/")
	assert.Contains(t, link, "text=")

	message := res["message"].(string)
	assert.Contains(t, message, "Prepare report")
	assert.Contains(t, message, res["pdf_url"].(string))
	assert.Contains(t, res["pdf_url"].(string), fmt.Sprintf("/tasks/%d/pdf", existing.ID))

	_, err = s.ShareLink(userCtx(1), &dto.TaskShareRequest{ID: 99})
	me := asMetaError(t, err)
	assert.Equal(t, http.StatusNotFound, me.Code)
}

func TestExportProducesDocuments(t *testing.T) {
	s := newTestService(t)
	seedTask(t, s, 1, "Prepare report", "quarterly numbers", model.TaskCategoryProfessional, model.TaskPriorityRed)

	filename, buf, format, err := s.Export(userCtx(1), &dto.TaskExportRequest{Format: "pdf"})
	require.NoError(t, err)
	assert.Equal(t, "pdf", format)
	assert.Contains(t, filename, ".pdf")
	assert.NotZero(t, buf.Len())

	filename, buf, format, err = s.Export(userCtx(1), &dto.TaskExportRequest{Format: "excel"})
	require.NoError(t, err)
	assert.Equal(t, "excel", format)
	assert.Contains(t, filename, ".xlsx")
	assert.NotZero(t, buf.Len())
}
