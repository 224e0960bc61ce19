package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN строит строку подключения SQLite. busy_timeout нужен, чтобы
// конкурентные записи ждали освобождения файла вместо SQLITE_BUSY.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_fk=1", path)
}

// Open открывает файл SQLite через GORM. TranslateError включён, чтобы
// нарушение UNIQUE приходило как gorm.ErrDuplicatedKey.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(DSN(path)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	return db, nil
}
