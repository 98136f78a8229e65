package tasks

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tasktrack/internal/abstraction"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payloadValidator struct {
	validator *validator.Validate
}

func (pv *payloadValidator) Validate(i interface{}) error {
	return pv.validator.Struct(i)
}

func postCreate(t *testing.T, h *handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Validator = &payloadValidator{validator: validator.New()}
	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	cc := &abstraction.Context{Context: e.NewContext(req, rec)}
	cc.Auth = userCtx(1).Auth
	cc.Lang = "en"
	require.NoError(t, h.Create(cc))
	return rec
}

func taskRowCount(t *testing.T, s *service) int64 {
	t.Helper()

	var count int64
	require.NoError(t, s.DB.Table("task").Count(&count).Error)
	return count
}

func TestCreateRejectsInvalidPayload(t *testing.T) {
	s := newTestService(t)
	h := &handler{service: s}

	tests := []struct {
		name string
		body string
	}{
		{"missing description", `{"title":"Pay rent","due_date":"2026-09-01"}`},
		{"missing title", `{"description":"monthly","due_date":"2026-09-01"}`},
		{"missing due date", `{"title":"Pay rent","description":"monthly"}`},
		{"description too long", `{"title":"Pay rent","description":"` + strings.Repeat("x", 501) + `","due_date":"2026-09-01"}`},
		{"malformed due date", `{"title":"Pay rent","description":"monthly","due_date":"01-09-2026"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postCreate(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	// none of the rejected payloads reached the store
	assert.EqualValues(t, 0, taskRowCount(t, s))
}

func TestCreateAcceptsValidPayload(t *testing.T) {
	s := newTestService(t)
	h := &handler{service: s}

	rec := postCreate(t, h, `{"title":"Pay rent","description":"monthly","due_date":"2026-09-01"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.EqualValues(t, 1, taskRowCount(t, s))
}
