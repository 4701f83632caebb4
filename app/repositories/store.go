package repositories

import (
	"fmt"
	"strings"
	"time"

	"blog/app/models"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverBadger = "badger"
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Options selects and configures a storage backend.
type Options struct {
	Driver string
	// Path is the badger directory or the sqlite file.
	Path string
	// DSN is the mysql data source name.
	DSN      string
	InMemory bool
	Logger   *zap.Logger
}

// Store bundles the repositories of one opened backend.
type Store struct {
	Posts    PostRepository
	Comments CommentRepository

	// Exactly one of Badger and SQL is set.
	Badger *badger.DB
	SQL    *gorm.DB
}

// Open opens the backend named by opts.Driver.
func Open(opts Options) (*Store, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	switch strings.ToLower(opts.Driver) {
	case "", DriverBadger:
		return openBadger(opts)
	case DriverMySQL:
		if opts.DSN == "" {
			return nil, fmt.Errorf("mysql storage requires a dsn")
		}
		return openSQL(mysql.Open(opts.DSN), opts)
	case DriverSQLite:
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite storage requires a path")
		}
		return openSQL(sqlite.Open(opts.Path), opts)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}

func openBadger(opts Options) (*Store, error) {
	bopts := badger.DefaultOptions(opts.Path).
		WithLogger(badgerLogger{opts.Logger.Sugar().Named("badger")}).
		WithNumVersionsToKeep(1)
	if opts.InMemory {
		bopts = bopts.WithInMemory(true).WithDir("").WithValueDir("")
	}
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", opts.Path, err)
	}
	return NewBadgerStore(db), nil
}

// NewBadgerStore wraps an already opened badger database.
func NewBadgerStore(db *badger.DB) *Store {
	return &Store{
		Posts:    NewBadgerPostRepository(db),
		Comments: NewBadgerCommentRepository(db),
		Badger:   db,
	}
}

func openSQL(dialector gorm.Dialector, opts Options) (*Store, error) {
	gLogger := gormlogger.New(
		zap.NewStdLog(opts.Logger.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(&models.Post{}, &models.Comment{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return NewGormStore(db), nil
}

// NewGormStore wraps an already opened GORM database.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Posts:    NewGormPostRepository(db),
		Comments: NewGormCommentRepository(db),
		SQL:      db,
	}
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s.Badger != nil {
		return s.Badger.Close()
	}
	if s.SQL != nil {
		sqlDB, err := s.SQL.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l badgerLogger) Errorf(f string, v ...interface{})   { l.s.Errorf(strings.TrimSpace(f), v...) }
func (l badgerLogger) Warningf(f string, v ...interface{}) { l.s.Warnf(strings.TrimSpace(f), v...) }
func (l badgerLogger) Infof(f string, v ...interface{})    { l.s.Debugf(strings.TrimSpace(f), v...) }
func (l badgerLogger) Debugf(f string, v ...interface{})   { l.s.Debugf(strings.TrimSpace(f), v...) }
