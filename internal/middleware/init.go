package middleware

import (
	"tasktrack/internal/abstraction"
	"tasktrack/pkg/translator"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

var dbRedis *redis.Client

type customValidator struct {
	validator *validator.Validate
}

func (cv *customValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func Init(e *echo.Echo, redisClient *redis.Client) {
	dbRedis = redisClient

	e.Validator = &customValidator{validator: validator.New()}

	e.Use(
		echoMiddleware.Recover(),
		echoMiddleware.CORS(),
		Context,
		Language,
	)
}

// Context wraps every request in the application context before any
// handler or authenticated middleware runs.
func Context(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cc := &abstraction.Context{Context: c}
		return next(cc)
	}
}

// Language resolves the response language from Accept-Language,
// falling back to English.
func Language(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cc := c.(*abstraction.Context)
		lang := c.Request().Header.Get("Accept-Language")
		if lang == "" {
			lang = translator.LanguageEn
		}
		cc.Lang = lang
		return next(cc)
	}
}
