package mock

import (
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dbOnce sync.Once
	db     *Db
)

// Db is a process-wide in-memory sqlite database migrated with the application models.
type Db struct {
	DbConn *gorm.DB
	tables map[string]any
}

// NewDb opens the shared database and migrates models. Later calls return the same instance.
func NewDb(models ...any) *Db {
	dbOnce.Do(func() {
		conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			panic("failed to open test database: " + err.Error())
		}

		// One connection keeps every query on the same in-memory database.
		sqlDB, err := conn.DB()
		if err != nil {
			panic(err)
		}
		sqlDB.SetMaxOpenConns(1)

		if err := conn.AutoMigrate(models...); err != nil {
			panic("failed to migrate test database: " + err.Error())
		}

		tables := make(map[string]any, len(models))
		for _, model := range models {
			stmt := &gorm.Statement{DB: conn}
			if err := stmt.Parse(model); err != nil {
				panic(err)
			}
			tables[stmt.Schema.Table] = model
		}

		db = &Db{DbConn: conn, tables: tables}
	})
	return db
}

// ClearDB deletes every row of every migrated table.
func (d *Db) ClearDB() error {
	return d.DbConn.Transaction(func(tx *gorm.DB) error {
		for table := range d.tables {
			if err := tx.Exec(fmt.Sprintf("DELETE FROM %q", table)).Error; err != nil {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
		}
		return nil
	})
}

// Count returns the number of rows in table whose columns equal the given values.
func (d *Db) Count(table string, criteria map[string]any) (int64, error) {
	if _, ok := d.tables[table]; !ok {
		return 0, fmt.Errorf("table '%s' is not migrated", table)
	}

	query := d.DbConn.Table(table)
	for column, value := range criteria {
		query = query.Where(fmt.Sprintf("%q = ?", column), value)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
