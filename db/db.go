package db

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/texcare/texcare360-backend/models"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	if err := Migrate(DB); err != nil {
		logrus.WithError(err).Fatal("failed to migrate models")
	}
	logrus.Info("database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Machine{},
		&models.Technician{},
		&models.MaintenanceLog{},
		&models.InventoryItem{},
		&models.StockHistory{},
	); err != nil {
		return err
	}

	// 同一台机器最多一条未完成日志
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_open_per_machine
	  ON %s (machine_id)
	  WHERE NOT completed;
	`, models.MaintenanceLogTable, models.MaintenanceLogTable)).Error; err != nil {
		return err
	}

	// 同一名技师最多一条未完成日志
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_open_per_tech
	  ON %s (tech_id)
	  WHERE NOT completed;
	`, models.MaintenanceLogTable, models.MaintenanceLogTable)).Error; err != nil {
		return err
	}

	// 查询当前指派更快
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_open_machine_datetime_desc
	  ON %s (machine_id, date_time DESC)
	  WHERE NOT completed;
	`, models.MaintenanceLogTable, models.MaintenanceLogTable)).Error; err != nil {
		return err
	}

	return nil
}
