package telemetry

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// gormHook is a before/after pair registered around every gorm processor
type gormHook struct {
	name   string
	before func(*gorm.DB)
	after  func(*gorm.DB)
}

// register installs the hook around create, query, update, delete, row and raw
func (h gormHook) register(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register(h.name+":before_create", h.before),
		cb.Create().After("gorm:create").Register(h.name+":after_create", h.wrapAfter("create")),
		cb.Query().Before("gorm:query").Register(h.name+":before_query", h.before),
		cb.Query().After("gorm:query").Register(h.name+":after_query", h.wrapAfter("select")),
		cb.Update().Before("gorm:update").Register(h.name+":before_update", h.before),
		cb.Update().After("gorm:update").Register(h.name+":after_update", h.wrapAfter("update")),
		cb.Delete().Before("gorm:delete").Register(h.name+":before_delete", h.before),
		cb.Delete().After("gorm:delete").Register(h.name+":after_delete", h.wrapAfter("delete")),
		cb.Row().Before("gorm:row").Register(h.name+":before_row", h.before),
		cb.Row().After("gorm:row").Register(h.name+":after_row", h.wrapAfter("select")),
		cb.Raw().Before("gorm:raw").Register(h.name+":before_raw", h.before),
		cb.Raw().After("gorm:raw").Register(h.name+":after_raw", h.wrapAfter("raw")),
	)
}

func (h gormHook) wrapAfter(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		db.InstanceSet(operationKey, operation)
		h.after(db)
	}
}

const (
	startTimeKey = "telemetry:start_time"
	operationKey = "telemetry:operation"
)

func markStart(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

// elapsed returns the time since markStart, or false if it was never called
func elapsed(db *gorm.DB) (time.Duration, bool) {
	v, ok := db.InstanceGet(startTimeKey)
	if !ok {
		return 0, false
	}
	start, ok := v.(time.Time)
	if !ok {
		return 0, false
	}
	return time.Since(start), true
}

func operationOf(db *gorm.DB) string {
	if v, ok := db.InstanceGet(operationKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "unknown"
}

// queryFailed ignores not-found, which repositories translate themselves
func queryFailed(db *gorm.DB) bool {
	return db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound)
}
