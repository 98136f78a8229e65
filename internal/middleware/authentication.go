package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"tasktrack/internal/abstraction"
	"tasktrack/internal/config"
	modeltoken "tasktrack/internal/model/token"
	"tasktrack/pkg/constant"
	"tasktrack/pkg/util/general"
	"tasktrack/pkg/util/response"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// Authentication validates the bearer token and attaches the decoded
// claims to the request context. Sessions revoked through the
// auto-logout list are rejected even with a valid signature.
func Authentication(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth, metaErr := parseAuthHeader(c, false)
		if metaErr != nil {
			return metaErr.SendError(c)
		}

		userMustLogout := general.GetRedisUUIDArray(dbRedis, constant.REDIS_KEY_AUTO_LOGOUT)
		if slices.Contains(userMustLogout, auth.UuidLogin) {
			return response.ErrorBuilder(http.StatusUnprocessableEntity, errors.New("unprocessable"), "expired_token").SendError(c)
		}

		cc := c.(*abstraction.Context)
		cc.Auth = auth
		return next(cc)
	}
}

// Logout accepts an expired token so a client can always end its session.
func Logout(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth, metaErr := parseAuthHeader(c, true)
		if metaErr != nil {
			return metaErr.SendError(c)
		}

		cc := c.(*abstraction.Context)
		cc.Auth = auth
		return next(cc)
	}
}

// RefreshToken accepts an expired token and counts refresh attempts per
// session; past the limit the session must log in again.
func RefreshToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth, metaErr := parseAuthHeader(c, true)
		if metaErr != nil {
			return metaErr.SendError(c)
		}

		userMustLogout := general.GetRedisUUIDArray(dbRedis, constant.REDIS_KEY_AUTO_LOGOUT)
		if slices.Contains(userMustLogout, auth.UuidLogin) {
			return response.ErrorBuilder(http.StatusUnprocessableEntity, errors.New("unprocessable"), "expired_token").SendError(c)
		}

		keysRefreshToken := fmt.Sprintf(constant.REDIS_KEY_REFRESH_TOKEN, auth.UuidLogin)
		value := dbRedis.Incr(context.Background(), keysRefreshToken)
		if value.Err() != nil {
			return response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "invalid_token").SendError(c)
		}
		if value.Val() > constant.REDIS_MAX_REFRESH_TOKEN {
			dbRedis.Del(context.Background(), keysRefreshToken)
			return response.ErrorBuilder(http.StatusUnprocessableEntity, errors.New("unprocessable"), "expired_token").SendError(c)
		}

		cc := c.(*abstraction.Context)
		cc.Auth = auth
		return next(cc)
	}
}

// JustValidateToken decodes a raw token outside the HTTP middleware
// chain; the websocket connect handshake uses it.
func JustValidateToken(tokenString string) (*abstraction.Context, *response.MetaError) {
	auth, metaErr := parseToken(tokenString, false)
	if metaErr != nil {
		return nil, metaErr
	}
	cc := new(abstraction.Context)
	cc.Auth = auth
	return cc, nil
}

func parseAuthHeader(c echo.Context, allowExpired bool) (*abstraction.AuthContext, *response.MetaError) {
	authToken := c.Request().Header.Get("Authorization")
	if authToken == "" {
		return nil, response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "invalid_token")
	}
	if !strings.Contains(authToken, "Bearer") {
		return nil, response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "invalid_token")
	}
	tokenString := strings.Replace(authToken, "Bearer ", "", -1)
	return parseToken(tokenString, allowExpired)
}

func parseToken(tokenString string, allowExpired bool) (*abstraction.AuthContext, *response.MetaError) {
	jwtKey := config.Get().JWT.SecretKey

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method :%v", token.Header["alg"])
		}
		return []byte(jwtKey), nil
	}

	var (
		token *jwt.Token
		err   error
	)
	if allowExpired {
		// expiry is skipped, a parse error here always means a bad token
		token, err = jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, keyFunc, jwt.WithoutClaimsValidation())
	} else {
		token, err = jwt.Parse(tokenString, keyFunc)
	}
	if token == nil || !token.Valid || err != nil {
		if errJWT, ok := err.(*jwt.ValidationError); ok && errJWT.Errors == jwt.ValidationErrorExpired {
			return nil, response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), errJWT.Error())
		}
		return nil, response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "invalid_token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, response.ErrorBuilder(http.StatusUnauthorized, err, "error when claim token")
	}

	tokenClaims := modeltoken.TokenClaims{
		ID:        claimString(claims, "id"),
		RoleID:    claimString(claims, "role_id"),
		EntityID:  claimString(claims, "entity_id"),
		Email:     claimString(claims, "email"),
		UuidLogin: claimString(claims, "uuid_login"),
	}
	auth, authErr := tokenClaims.AuthContext()
	if authErr != nil {
		return nil, response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "invalid_token")
	}
	return auth, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if claims[key] == nil {
		return ""
	}
	return fmt.Sprintf("%v", claims[key])
}
