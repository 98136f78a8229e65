package abstraction

import (
	"gorm.io/gorm"
)

type Repository struct {
	Db *gorm.DB
}

// CheckTrx returns the transactional connection when the request runs
// inside trxmanager, the shared pool otherwise.
func (r *Repository) CheckTrx(ctx *Context) *gorm.DB {
	if ctx.Trx != nil {
		return ctx.Trx.Db
	}
	return r.Db
}
