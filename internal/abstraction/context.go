package abstraction

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Context wraps the echo context with everything a service call needs:
// the authenticated claims, the negotiated language and, when a
// trxmanager transaction is open, the transactional connection.
type Context struct {
	echo.Context

	Auth *AuthContext
	Lang string
	Trx  *TrxContext
}

// AuthContext carries the identity claims decoded from the bearer token.
// EntityID is the authorization partition key: every non-admin request
// is pinned to it.
type AuthContext struct {
	ID        int
	RoleID    int
	EntityID  int
	Email     string
	UuidLogin string
}

type TrxContext struct {
	Db *gorm.DB
}
