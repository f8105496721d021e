package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

type DDSContext string

const (
	DBContextURL DDSContext = "dds-backend-url"
)

// uniqueViolations maps the tables whose unique constraints users can run
// into to the error returned for them.
var uniqueViolations = []struct {
	table string
	err   error
}{
	{"subcategories", ErrSubcategoryNameNotUnique},
	{"categories", ErrCategoryNameNotUnique},
	{"statuses", ErrStatusNameNotUnique},
	{"types", ErrTypeNameNotUnique},
}

func config() *gorm.Config {
	return &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger:        log.Logger,
			SlowThreshold: 200 * time.Millisecond,
		},
	}
}

// Connect opens the SQLite database and configures the connection pool.
func Connect(dsn string) error {
	// Migrate with foreign keys disabled as sqlite does not support
	// ALTER COLUMN, tables are copied, dropped and recreated
	db, err := gorm.Open(sqlite.Open(dsn), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Now, reconnect with foreign keys enabled
	db, err = gorm.Open(sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return setup(db)
}

// ConnectPostgres opens a PostgreSQL database.
func ConnectPostgres(dsn string) error {
	db, err := gorm.Open(postgres.Open(dsn), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return setup(db)
}

// setup registers the callbacks and sets the exported variable.
func setup(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "dds:after_query", queryCallback},
		{db.Callback().Query().After("*"), "dds:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "dds:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "dds:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "dds:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "dds:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "dds:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		err := c.processor.Register(c.name, c.fn)
		if err != nil {
			return err
		}
	}

	DB = db
	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, resourceName(db))
	}
}

// resourceName returns a human readable name for the resource of a statement,
// e.g. "cash flow record" for CashFlowRecord.
func resourceName(db *gorm.DB) string {
	if db.Statement.Schema == nil {
		return strings.ReplaceAll(db.Statement.Table, "_", " ")
	}

	var b strings.Builder
	for i, r := range db.Statement.Schema.Name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteRune(' ')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}

	return b.String()
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	msg := db.Error.Error()

	var pgErr *pgconn.PgError
	isPgUnique := errors.As(db.Error, &pgErr) && pgErr.Code == "23505"

	if strings.Contains(msg, "UNIQUE constraint failed") || isPgUnique {
		for _, u := range uniqueViolations {
			if strings.Contains(msg, fmt.Sprintf(" %s.", u.table)) || (isPgUnique && pgErr.TableName == u.table) {
				db.Error = u.err
				return
			}
		}
	}

	if strings.Contains(msg, "FOREIGN KEY constraint failed") || (pgErr != nil && pgErr.Code == "23503") {
		db.Error = ErrInvalidReference
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if isGeneral(db.Error) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// isGeneral reports if err is a driver error users cannot act upon.
func isGeneral(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError

	// "sql: database is closed" is hard-coded in the sql module
	return err.Error() == "sql: database is closed" || reflect.TypeOf(err) == reflect.TypeOf(&go_sqlite.Error{}) || errors.As(err, &pgErr)
}

// Transaction runs fc in a database transaction. Errors beginning or
// committing the transaction do not pass through the callbacks and are
// translated here.
func Transaction(db *gorm.DB, fc func(tx *gorm.DB) error) error {
	err := db.Transaction(fc)
	if isGeneral(err) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrGeneral
	}

	return err
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(Status{}, Type{}, Category{}, Subcategory{}, CashFlowRecord{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
