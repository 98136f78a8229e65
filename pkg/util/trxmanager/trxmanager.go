package trxmanager

import (
	"tasktrack/internal/abstraction"

	"gorm.io/gorm"
)

type trxManager struct {
	db *gorm.DB
}

func New(db *gorm.DB) *trxManager {
	return &trxManager{db}
}

// WithTrx runs fn inside a transaction; the transactional connection is
// exposed to repositories through ctx.Trx. Rollback on error or panic,
// no partial effect survives a failed write.
func (g *trxManager) WithTrx(ctx *abstraction.Context, fn func(ctx *abstraction.Context) error) (err error) {
	trx := g.db.Begin()
	if trx.Error != nil {
		return trx.Error
	}

	ctx.Trx = &abstraction.TrxContext{Db: trx}
	defer func() {
		ctx.Trx = nil
		if r := recover(); r != nil {
			trx.Rollback()
			panic(r)
		}
	}()

	if err = fn(ctx); err != nil {
		trx.Rollback()
		return err
	}

	return trx.Commit().Error
}
