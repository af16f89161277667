package postgres

import (
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormConfig is the gorm configuration every connection to the users store
// opens with. Repository writes are single statements, so gorm's implicit
// per-write transaction is off.
func GormConfig(l gormlogger.Interface) *gorm.Config {
	return &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 l,
	}
}
