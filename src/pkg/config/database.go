package config

import (
	"github.com/tuumbleweed/xerr"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDatabase opens the gorm connection every cmd entrypoint shares,
// using Cfg.DatabaseDSN. Call after InitializeConfig.
func OpenDatabase() (*gorm.DB, *xerr.Error) {
	db, err := gorm.Open(postgres.Open(Cfg.DatabaseDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, xerr.NewError(err, "open database connection", Cfg.DatabaseDSN)
	}
	return db, nil
}
