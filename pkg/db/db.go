package db

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

var (
	instance *DB
	once     sync.Once
)

// Open connects, migrates the history tables and applies sqlite pragmas.
func Open(dialector gorm.Dialector) (*DB, error) {
	logger := common.GetLogger()

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

	if d, ok := dialector.(*sqlite.Dialector); ok {
		if isMemoryDSN(d.DSN) {
			// one connection keeps a shared-cache memory db free of table locks
			sqlDB, err := conn.DB()
			if err != nil {
				return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
			}
			sqlDB.SetMaxOpenConns(1)
		}

		if err := conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
			return nil, fmt.Errorf("failed to set sqlite journal mode: %w", err)
		}
	}

	if err := conn.AutoMigrate(models.GetAllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed")

	return &DB{Conn: conn}, nil
}

// GetInstance opens the process wide database once.
func GetInstance(dialector gorm.Dialector) *DB {
	once.Do(func() {
		var err error
		instance, err = Open(dialector)
		if err != nil {
			log.Fatal("Failed to open database:", err)
		}
	})
	return instance
}

func (d *DB) Close() error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping is used by health checks.
func (d *DB) Ping() error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// sqliteBusyTimeoutMs is set through the DSN so every pooled connection
// gets it, not only the one a PRAGMA happens to run on.
const sqliteBusyTimeoutMs = 5000

func UseSqliteDialector(dbPath string) gorm.Dialector {
	if dbPath == "" {
		dbPath = "data/app.db"
	}
	return sqlite.Open(withBusyTimeout(dbPath))
}

func withBusyTimeout(dsn string) string {
	if strings.Contains(dsn, "_timeout=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", dsn, sep, sqliteBusyTimeoutMs)
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}

// UseIsolatedMemorySqliteDialector gives every caller its own named memory db.
func UseIsolatedMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}

func UsePostgresDialector(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}

func UseMySQLDialector(dsn string) gorm.Dialector {
	return mysql.Open(dsn)
}

// DialectorFor maps a configured db type to its dialector.
func DialectorFor(dbType, path, dsn string) (gorm.Dialector, error) {
	switch dbType {
	case "file":
		return UseSqliteDialector(path), nil
	case "memory":
		return UseMemorySqliteDialector(), nil
	case "postgres":
		if dsn == "" {
			return nil, fmt.Errorf("postgres requires a dsn")
		}
		return UsePostgresDialector(dsn), nil
	case "mysql":
		if dsn == "" {
			return nil, fmt.Errorf("mysql requires a dsn")
		}
		return UseMySQLDialector(dsn), nil
	default:
		return nil, fmt.Errorf("unknown db type: %q", dbType)
	}
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
