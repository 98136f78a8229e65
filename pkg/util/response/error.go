package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type MetaError struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`

	Err error `json:"-"`
}

// Error satisfies the error interface so services can return a
// *MetaError straight through the handler.
func (m *MetaError) Error() string {
	return m.Message
}

func ErrorBuilder(code int, err error, message string) *MetaError {
	return &MetaError{
		Success: false,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ErrorResponse normalizes any error into a client-facing envelope.
// Unknown errors collapse to a generic 500 so internals never leak.
func ErrorResponse(err error) *MetaError {
	if me, ok := err.(*MetaError); ok {
		return me
	}
	return ErrorBuilder(http.StatusInternalServerError, err, "server_error")
}

func (m *MetaError) SendError(c echo.Context) error {
	if m.Err != nil {
		logrus.Errorf("%s: %s", m.Message, m.Err.Error())
	}
	return c.JSON(m.Code, m)
}
