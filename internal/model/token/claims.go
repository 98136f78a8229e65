package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"tasktrack/internal/abstraction"
	"tasktrack/internal/config"
	"tasktrack/pkg/util/aescrypt"
	"tasktrack/pkg/util/encoding"

	"github.com/golang-jwt/jwt/v4"
)

type TokenClaims struct {
	ID        string `json:"id"`
	RoleID    string `json:"role_id"`
	EntityID  string `json:"entity_id"`
	Email     string `json:"email"`
	UuidLogin string `json:"uuid_login"`
	Exp       int64  `json:"exp"`

	jwt.RegisteredClaims
}

// AuthContext decodes the scrambled claim set back into the request
// auth context. Numeric claims are AES-encrypted, string claims base64.
func (c TokenClaims) AuthContext() (*abstraction.AuthContext, error) {
	var (
		id         int
		roleId     int
		entityId   int
		email      string
		uuidLogin  string
		err        error
		encryptKey = config.Get().JWT.SecretKey
	)

	if id, err = decryptIntClaim(c.ID, encryptKey); err != nil {
		return nil, errors.New("invalid_token")
	}
	if roleId, err = decryptIntClaim(c.RoleID, encryptKey); err != nil {
		return nil, errors.New("invalid_token")
	}
	if entityId, err = decryptIntClaim(c.EntityID, encryptKey); err != nil {
		return nil, errors.New("invalid_token")
	}
	if c.Email == "" {
		return nil, errors.New("invalid_token")
	}
	if email, err = encoding.Decode(c.Email); err != nil {
		return nil, errors.New("invalid_token")
	}
	if c.UuidLogin == "" {
		return nil, errors.New("invalid_token")
	}
	if uuidLogin, err = encoding.Decode(c.UuidLogin); err != nil {
		return nil, errors.New("invalid_token")
	}

	return &abstraction.AuthContext{
		ID:        id,
		RoleID:    roleId,
		EntityID:  entityId,
		Email:     email,
		UuidLogin: uuidLogin,
	}, nil
}

// decryptIntClaim accepts either a plain number or an AES-encrypted one,
// so tokens minted before claim scrambling keep working.
func decryptIntClaim(raw, key string) (int, error) {
	if raw == "" {
		return 0, errors.New("empty claim")
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v, nil
	}
	plain, err := aescrypt.DecryptAES(raw, key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(plain)
}

type AuthToken struct {
	token *jwt.Token
}

func NewAuthToken(claims *TokenClaims) *AuthToken {
	return &AuthToken{token: jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":         claims.ID,
		"role_id":    claims.RoleID,
		"entity_id":  claims.EntityID,
		"email":      claims.Email,
		"uuid_login": claims.UuidLogin,
		"exp":        claims.Exp,
	})}
}

func (t *AuthToken) Token() (string, error) {
	return t.token.SignedString([]byte(config.Get().JWT.SecretKey))
}

// AuthEksternalToken is the short-lived token mailed out for
// password resets.
type AuthEksternalToken struct {
	UserId int `json:"user_id"`

	jwt.RegisteredClaims
}

func (t *AuthEksternalToken) GenerateTokenEksternal() (*string, error) {
	claims := jwt.MapClaims{
		"user_id": t.UserId,
		"exp":     time.Now().Add(1 * time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.Get().JWT.SecretKey))
	if err != nil {
		return nil, err
	}
	return &signed, nil
}

func ValidateTokenEksternal(tokenString string) (*AuthEksternalToken, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method :%v", token.Header["alg"])
		}
		return []byte(config.Get().JWT.SecretKey), nil
	})
	if token == nil || !token.Valid || err != nil {
		return nil, errors.New("invalid_token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid_token")
	}
	rawUserId, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("invalid_token")
	}
	return &AuthEksternalToken{UserId: int(rawUserId)}, nil
}
