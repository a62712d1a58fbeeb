package postgres

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/iwtcode/lineDispatch/internal/adapters/repositories/postgres/dispatch_record"
	"github.com/iwtcode/lineDispatch/internal/config"
	"github.com/iwtcode/lineDispatch/internal/domain/entities"
	"github.com/iwtcode/lineDispatch/internal/interfaces"
	"github.com/iwtcode/lineDispatch/internal/middleware/logging"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Repository struct {
	interfaces.DispatchRecordRepository
}

func dsn(db config.DatabaseConfig, name string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		db.Host, db.Username, db.Password, name, db.Port)
}

func NewRepository(cfg *config.AppConfig, appLogger *logging.Logger) (interfaces.DispatchRecordRepository, error) {
	dbCfg := cfg.Audit.Database

	// Служебная БД 'postgres' нужна только для проверки и создания целевой БД
	db, err := gorm.Open(postgres.Open(dsn(dbCfg, "postgres")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к служебной БД 'postgres': %w", err)
	}

	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = ?)"
	if err := db.Raw(query, dbCfg.DBName).Scan(&exists).Error; err != nil {
		return nil, fmt.Errorf("не удалось проверить существование БД '%s': %w", dbCfg.DBName, err)
	}

	if !exists {
		appLogger.Info("Database not found. Creating...", "db_name", dbCfg.DBName)
		if err := db.Exec(fmt.Sprintf("CREATE DATABASE %s", dbCfg.DBName)).Error; err != nil {
			return nil, fmt.Errorf("не удалось создать БД '%s': %w", dbCfg.DBName, err)
		}
		appLogger.Info("Database created successfully.", "db_name", dbCfg.DBName)
	} else {
		appLogger.Info("Database already exists.", "db_name", dbCfg.DBName)
	}

	sqlDB, _ := db.DB()
	_ = sqlDB.Close()

	level := logger.Warn
	if cfg.GinMode == "debug" {
		level = logger.Info
	}
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	appDb, err := gorm.Open(postgres.Open(dsn(dbCfg, dbCfg.DBName)), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных '%s': %w", dbCfg.DBName, err)
	}

	if err := autoMigrate(appDb); err != nil {
		return nil, fmt.Errorf("ошибка выполнения автомиграций: %w", err)
	}

	return &Repository{
		DispatchRecordRepository: dispatch_record.NewDispatchRecordRepository(appDb),
	}, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&entities.DispatchRecord{})
}
