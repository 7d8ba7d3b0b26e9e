package config

import (
	"fmt"
	"strings"

	"luxestay/models"
	"luxestay/services/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// loadDBConfig đọc DB_*, cho phép ghi đè theo môi trường bằng <ENV>_DB_* (DEV_DB_HOST, PROD_DB_HOST...)
func loadDBConfig(env string) DBConfig {
	prefix := strings.ToUpper(env) + "_"
	get := func(key, fallback string) string {
		return GetEnv(prefix+key, GetEnv(key, fallback))
	}
	return DBConfig{
		Host:     get("DB_HOST", "localhost"),
		User:     get("DB_USER", "postgres"),
		Password: get("DB_PASSWORD", ""),
		Name:     get("DB_NAME", "luxestay"),
		Port:     get("DB_PORT", "5432"),
		SSLMode:  get("DB_SSLMODE", "disable"),
	}
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

const bookingExclusion = `ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
EXCLUDE USING gist (room_id WITH =, daterange(check_in, check_out, '[)') WITH &&)
WHERE (status <> 'cancelled')`

// ConnectDB mở kết nối postgres và migrate schema
func ConnectDB(cfg DBConfig, log logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.HotelImage{},
		&models.Amenity{},
		&models.Room{},
		&models.Review{},
		&models.Booking{},
		&models.ContactSubmission{},
	); err != nil {
		return nil, fmt.Errorf("fail to migrate db: %w", err)
	}

	installBookingExclusion(db, log)
	log.Info("Successfully connected to db %s@%s", cfg.Name, cfg.Host)
	return db, nil
}

// installBookingExclusion thêm ràng buộc chống trùng lịch ở mức DB, lỗi chỉ được log lại
func installBookingExclusion(db *gorm.DB, log logger.Logger) {
	var exists bool
	db.Raw("SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap')").Scan(&exists)
	if exists {
		return
	}
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		log.Error("btree_gist extension unavailable: %v", err)
		return
	}
	if err := db.Exec(bookingExclusion).Error; err != nil {
		log.Error("could not install booking exclusion constraint: %v", err)
	}
}
