package tasks

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tasktrack/internal/abstraction"
	"tasktrack/internal/config"
	"tasktrack/internal/dto"
	"tasktrack/internal/factory"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
	"tasktrack/pkg/constant"
	"tasktrack/pkg/translator"
	"tasktrack/pkg/util/general"
	"tasktrack/pkg/util/response"
	"tasktrack/pkg/util/trxmanager"
	"tasktrack/pkg/ws"

	"github.com/go-redis/redis/v8"
	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type Service interface {
	Find(ctx *abstraction.Context, payload *dto.TaskFilterRequest) (map[string]interface{}, error)
	FindById(ctx *abstraction.Context, payload *dto.TaskFindByIDRequest) (map[string]interface{}, error)
	Create(ctx *abstraction.Context, payload *dto.TaskCreateRequest) (map[string]interface{}, error)
	Update(ctx *abstraction.Context, payload *dto.TaskUpdateRequest) (map[string]interface{}, error)
	UpdateStatus(ctx *abstraction.Context, payload *dto.TaskUpdateStatusRequest) (map[string]interface{}, error)
	Delete(ctx *abstraction.Context, payload *dto.TaskDeleteByIDRequest) error
	Dashboard(ctx *abstraction.Context, payload *dto.TaskDashboardRequest) (map[string]interface{}, error)
	PriorityCount(ctx *abstraction.Context, payload *dto.TaskPriorityCountRequest) (map[string]interface{}, error)
	Export(ctx *abstraction.Context, payload *dto.TaskExportRequest) (string, *bytes.Buffer, string, error)
	DocumentPdf(ctx *abstraction.Context, payload *dto.TaskFindByIDRequest) (string, *bytes.Buffer, string, error)
	ShareLink(ctx *abstraction.Context, payload *dto.TaskShareRequest) (map[string]interface{}, error)
}

type service struct {
	TaskRepository repository.Task

	DB      *gorm.DB
	DbRedis *redis.Client
}

func NewService(f *factory.Factory) Service {
	return &service{
		TaskRepository: f.TaskRepository,

		DB:      f.Db,
		DbRedis: f.DbRedis,
	}
}

// resolveEntityScope pins every non-admin caller to its own entity,
// whatever the request asked for. Admins get the requested entity,
// or nil for everything.
func resolveEntityScope(ctx *abstraction.Context, requested *int) *int {
	if ctx.Auth.RoleID != constant.ROLE_ID_ADMIN {
		return &ctx.Auth.EntityID
	}
	return requested
}

// resolveFilter applies the read-filter precedence on top of the
// entity scope: search beats category/priority, category+priority beat
// either alone, and the explicit entity filter only matters when
// nothing else is set.
func resolveFilter(ctx *abstraction.Context, payload *dto.TaskFilterRequest) *repository.TaskFilter {
	scope := resolveEntityScope(ctx, payload.EntityId)

	search := strings.TrimSpace(payload.Search)
	switch {
	case search != "":
		return &repository.TaskFilter{EntityId: scope, Search: search}
	case payload.Category != "" && payload.Priority != "":
		return &repository.TaskFilter{EntityId: scope, Category: payload.Category, Priority: payload.Priority}
	case payload.Category != "":
		return &repository.TaskFilter{EntityId: scope, Category: payload.Category}
	case payload.Priority != "":
		return &repository.TaskFilter{EntityId: scope, Priority: payload.Priority}
	default:
		return &repository.TaskFilter{EntityId: scope}
	}
}

func taskResponse(v *model.TaskEntityModel) map[string]interface{} {
	res := map[string]interface{}{
		"id":              v.ID,
		"title":           v.Title,
		"description":     v.Description,
		"due_date":        general.FormatDateOnly(v.DueDate),
		"status":          v.Status,
		"entity_id":       v.EntityId,
		"category":        v.Category,
		"priority":        v.Priority,
		"task_identifier": v.TaskIdentifier,
		"user_name":       v.UserName,
		"created_at":      general.FormatWithZWithoutChangingTime(v.CreatedAt),
	}
	if v.UpdatedAt != nil {
		res["updated_at"] = general.FormatWithZWithoutChangingTime(*v.UpdatedAt)
	}
	return res
}

func (s *service) Find(ctx *abstraction.Context, payload *dto.TaskFilterRequest) (map[string]interface{}, error) {
	var res []map[string]interface{} = nil

	filter := resolveFilter(ctx, payload)
	data, err := s.TaskRepository.Find(ctx, filter)
	if err != nil && err.Error() != "record not found" {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	for _, v := range data {
		res = append(res, taskResponse(v))
	}
	return map[string]interface{}{
		"count": len(data),
		"data":  res,
	}, nil
}

func (s *service) FindById(ctx *abstraction.Context, payload *dto.TaskFindByIDRequest) (map[string]interface{}, error) {
	data, err := s.TaskRepository.FindById(ctx, payload.ID)
	if err != nil && err.Error() != "record not found" {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	if data == nil {
		return nil, response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), translator.T(ctx.Lang, "task_not_found"))
	}
	return map[string]interface{}{
		"data": taskResponse(data),
	}, nil
}

func (s *service) Create(ctx *abstraction.Context, payload *dto.TaskCreateRequest) (map[string]interface{}, error) {
	var created *model.TaskEntityModel

	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		var entityId int
		if ctx.Auth.RoleID != constant.ROLE_ID_ADMIN {
			entityId = ctx.Auth.EntityID
		} else {
			if payload.EntityId == nil {
				return response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), translator.T(ctx.Lang, "entity_id_required"))
			}
			entityId = *payload.EntityId
		}

		dueDate, err := time.Parse("2006-01-02", payload.DueDate)
		if err != nil {
			return response.ErrorBuilder(http.StatusBadRequest, err, "invalid due date")
		}

		status := payload.Status
		if status == "" {
			status = model.TaskStatusPending
		}
		priority := payload.Priority
		if priority == "" {
			priority = model.TaskPriorityGray
		}

		modelTask := &model.TaskEntityModel{
			Context: ctx,
			TaskEntity: model.TaskEntity{
				Title:          payload.Title,
				Description:    payload.Description,
				DueDate:        dueDate,
				Status:         status,
				EntityId:       entityId,
				Category:       payload.Category,
				Priority:       priority,
				TaskIdentifier: payload.TaskIdentifier,
				UserName:       payload.UserName,
			},
		}
		if err = s.TaskRepository.Create(ctx, modelTask).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		created = modelTask

		return nil
	}); err != nil {
		return nil, err
	}

	ws.PublishTaskEvent(created.EntityId, "created", taskResponse(created))

	return map[string]interface{}{
		"message": translator.T(ctx.Lang, "task_created"),
		"data":    taskResponse(created),
	}, nil
}

func (s *service) Update(ctx *abstraction.Context, payload *dto.TaskUpdateRequest) (map[string]interface{}, error) {
	var updated *model.TaskEntityModel

	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		if payload.BodyID != nil && *payload.BodyID != payload.ID {
			return response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), translator.T(ctx.Lang, "task_id_mismatch"))
		}

		taskData, err := s.TaskRepository.FindById(ctx, payload.ID)
		if err != nil && err.Error() != "record not found" {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		if taskData == nil {
			return response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), translator.T(ctx.Lang, "task_not_found"))
		}

		var entityId int
		if ctx.Auth.RoleID != constant.ROLE_ID_ADMIN {
			entityId = ctx.Auth.EntityID
		} else if payload.EntityId != nil {
			entityId = *payload.EntityId
		} else {
			entityId = taskData.EntityId
		}

		dueDate, err := time.Parse("2006-01-02", payload.DueDate)
		if err != nil {
			return response.ErrorBuilder(http.StatusBadRequest, err, "invalid due date")
		}

		newTaskData := new(model.TaskEntityModel)
		newTaskData.Context = ctx
		newTaskData.ID = payload.ID
		newTaskData.TaskEntity = model.TaskEntity{
			Title:          payload.Title,
			Description:    payload.Description,
			DueDate:        dueDate,
			Status:         payload.Status,
			EntityId:       entityId,
			Category:       payload.Category,
			Priority:       payload.Priority,
			TaskIdentifier: payload.TaskIdentifier,
			UserName:       payload.UserName,
		}
		if err = s.TaskRepository.Update(ctx, newTaskData).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		updated = newTaskData

		return nil
	}); err != nil {
		return nil, err
	}

	ws.PublishTaskEvent(updated.EntityId, "updated", taskResponse(updated))

	return map[string]interface{}{
		"message": translator.T(ctx.Lang, "task_updated"),
		"data":    taskResponse(updated),
	}, nil
}

func (s *service) UpdateStatus(ctx *abstraction.Context, payload *dto.TaskUpdateStatusRequest) (map[string]interface{}, error) {
	var entityId int

	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		taskData, err := s.TaskRepository.FindById(ctx, payload.ID)
		if err != nil && err.Error() != "record not found" {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		if taskData == nil {
			return response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), translator.T(ctx.Lang, "task_not_found"))
		}
		entityId = taskData.EntityId

		if err = s.TaskRepository.UpdateStatus(ctx, payload.ID, payload.Status).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	ws.PublishTaskEvent(entityId, "status_updated", map[string]interface{}{
		"id":     payload.ID,
		"status": payload.Status,
	})

	return map[string]interface{}{
		"message": translator.T(ctx.Lang, "task_status_updated"),
	}, nil
}

func (s *service) Delete(ctx *abstraction.Context, payload *dto.TaskDeleteByIDRequest) error {
	var entityId int

	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		taskData, err := s.TaskRepository.FindById(ctx, payload.ID)
		if err != nil && err.Error() != "record not found" {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		if taskData == nil {
			return response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), translator.T(ctx.Lang, "task_not_found"))
		}
		entityId = taskData.EntityId

		if err = s.TaskRepository.Delete(ctx, taskData).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		return nil
	}); err != nil {
		return err
	}

	ws.PublishTaskEvent(entityId, "deleted", map[string]interface{}{
		"id": payload.ID,
	})

	return nil
}

func (s *service) Dashboard(ctx *abstraction.Context, payload *dto.TaskDashboardRequest) (map[string]interface{}, error) {
	scope := resolveEntityScope(ctx, payload.EntityId)

	tasksCount, err := s.TaskRepository.Count(ctx, scope)
	if err != nil && err.Error() != "record not found" {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	usersCount, err := s.TaskRepository.CountDistinctEntities(ctx, scope)
	if err != nil && err.Error() != "record not found" {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	return map[string]interface{}{
		"tasks_count": tasksCount,
		"users_count": usersCount,
	}, nil
}

func (s *service) PriorityCount(ctx *abstraction.Context, payload *dto.TaskPriorityCountRequest) (map[string]interface{}, error) {
	scope := resolveEntityScope(ctx, payload.EntityId)

	counts, err := s.TaskRepository.CountByPriority(ctx, scope)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	return map[string]interface{}{
		"red":   counts[model.TaskPriorityRed],
		"green": counts[model.TaskPriorityGreen],
		"gray":  counts[model.TaskPriorityGray],
	}, nil
}

func (s *service) Export(ctx *abstraction.Context, payload *dto.TaskExportRequest) (string, *bytes.Buffer, string, error) {
	filter := resolveFilter(ctx, &payload.TaskFilterRequest)
	data, err := s.TaskRepository.Find(ctx, filter)
	if err != nil && err.Error() != "record not found" {
		return "", nil, "", response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	reportDate := general.FormatDateOnly(*general.Now())

	if payload.Format == "pdf" {
		pdf := gofpdf.New("L", "mm", "A4", "")
		pdf.SetMargins(10, 10, 10)
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(0, 10, fmt.Sprintf("TaskTrack - Tasks Report (%s)", reportDate))
		pdf.Ln(12)
		pdf.SetFont("Arial", "B", 10)
		header := []string{
			"No", "Title", "Description", "Due Date", "Status",
			"Entity", "Category", "Priority", "Assignee",
		}
		colWidths := []float64{
			10, 45, 70, 25, 25, 18, 30, 22, 32,
		}
		xStart := pdf.GetX()
		yStart := pdf.GetY()
		headerHeight := 8.0

		for i, str := range header {
			pdf.Rect(xStart, yStart, colWidths[i], headerHeight, "D")
			pdf.MultiCell(colWidths[i], 5, str, "", "C", false)
			xStart += colWidths[i]
			pdf.SetXY(xStart, yStart)
		}
		pdf.Ln(headerHeight)
		pdf.SetFont("Arial", "", 9)

		for i, v := range data {
			row := []string{
				fmt.Sprintf("%d", i+1),
				v.Title,
				v.Description,
				general.FormatDateOnly(v.DueDate),
				v.Status,
				fmt.Sprintf("%d", v.EntityId),
				v.Category,
				v.Priority,
				v.UserName,
			}

			startX := pdf.GetX()
			startY := pdf.GetY()
			maxHeight := 0.0
			for j, txt := range row {
				lines := pdf.SplitLines([]byte(txt), colWidths[j])
				h := float64(len(lines)) * 5
				if h > maxHeight {
					maxHeight = h
				}
			}
			x := startX
			for j, txt := range row {
				y := pdf.GetY()
				pdf.Rect(x, y, colWidths[j], maxHeight, "D")
				pdf.MultiCell(colWidths[j], 5, txt, "", "", false)
				x += colWidths[j]
				pdf.SetXY(x, y)
			}
			pdf.SetXY(startX, startY+maxHeight)
		}
		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			return "", nil, "", response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		filename := fmt.Sprintf("(%s) TaskTrack - Tasks Report.pdf", strings.ReplaceAll(reportDate, "-", ""))
		return filename, &buf, "pdf", nil

	} else {
		f := excelize.NewFile()
		sheet := "TaskTrack"
		index, err := f.NewSheet(general.TruncateSheetName(sheet))
		if err != nil {
			return "", nil, "", response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		f.DeleteSheet("Sheet1")
		f.SetActiveSheet(index)
		f.SetCellValue(sheet, "A1", "No")
		f.SetCellValue(sheet, "B1", "Title")
		f.SetCellValue(sheet, "C1", "Description")
		f.SetCellValue(sheet, "D1", "Due Date")
		f.SetCellValue(sheet, "E1", "Status")
		f.SetCellValue(sheet, "F1", "Entity")
		f.SetCellValue(sheet, "G1", "Category")
		f.SetCellValue(sheet, "H1", "Priority")
		f.SetCellValue(sheet, "I1", "Assignee")
		for i, v := range data {
			row := i + 2
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), v.Title)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), v.Description)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), general.FormatDateOnly(v.DueDate))
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), v.Status)
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), v.EntityId)
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), v.Category)
			f.SetCellValue(sheet, fmt.Sprintf("H%d", row), v.Priority)
			f.SetCellValue(sheet, fmt.Sprintf("I%d", row), v.UserName)
		}

		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			return "", nil, "", response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		filename := fmt.Sprintf("(%s) TaskTrack - Tasks Report.xlsx", strings.ReplaceAll(reportDate, "-", ""))
		return filename, &buf, "excel", nil
	}
}

func (s *service) DocumentPdf(ctx *abstraction.Context, payload *dto.TaskFindByIDRequest) (string, *bytes.Buffer, string, error) {
	data, err := s.TaskRepository.FindById(ctx, payload.ID)
	if err != nil && err.Error() != "record not found" {
		return "", nil, "", response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	if data == nil {
		return "", nil, "", response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), translator.T(ctx.Lang, "task_not_found"))
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, translator.T(ctx.Lang, "share_message"))
	pdf.Ln(16)

	rows := [][2]string{
		{translator.T(ctx.Lang, "share_title"), data.Title},
		{"Description", data.Description},
		{translator.T(ctx.Lang, "share_due_date"), general.FormatDateOnly(data.DueDate)},
		{translator.T(ctx.Lang, "share_status"), data.Status},
		{"Category", data.Category},
		{"Priority", data.Priority},
		{"Assignee", data.UserName},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(40, 8, row[0])
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 8, row[1], "", "", false)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", nil, "", response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	filename := fmt.Sprintf("TaskTrack - Task %d.pdf", data.ID)
	return filename, &buf, "pdf", nil
}

func (s *service) ShareLink(ctx *abstraction.Context, payload *dto.TaskShareRequest) (map[string]interface{}, error) {
	data, err := s.TaskRepository.FindById(ctx, payload.ID)
	if err != nil && err.Error() != "record not found" {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	if data == nil {
		return nil, response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), translator.T(ctx.Lang, "task_not_found"))
	}

	pdfUrl := fmt.Sprintf("%s/tasks/%d/pdf", config.Get().App.BaseUrl, data.ID)
	message := fmt.Sprintf(
		"*%s*\n%s: %s\n%s: %s\n%s: %s\n%s: %s",
		translator.T(ctx.Lang, "share_message"),
		translator.T(ctx.Lang, "share_title"), data.Title,
		translator.T(ctx.Lang, "share_due_date"), general.FormatDateOnly(data.DueDate),
		translator.T(ctx.Lang, "share_status"), data.Status,
		translator.T(ctx.Lang, "share_download"), pdfUrl,
	)

	link := "https://wa.me/"
	if phone := config.Get().App.SharePhone; phone != "" {
		link += phone
	}
	link += "?text=" + url.QueryEscape(message)

	return map[string]interface{}{
		"link":    link,
		"message": message,
		"pdf_url": pdfUrl,
	}, nil
}
