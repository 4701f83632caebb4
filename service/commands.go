package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"blog/app/config"
	"blog/app/repositories"

	"github.com/dgraph-io/badger/v4"
)

// HandleCommand runs a blog subcommand and returns its exit code.
func HandleCommand(args []string) int {
	if len(args) < 1 {
		printHelp()
		return 1
	}

	cmd := args[0]
	rest, yes := splitFlags(args[1:])

	if cmd == "help" {
		printHelp()
		return 0
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		return 1
	}

	switch cmd {
	case "serve":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	case "init":
		return initDb(cfg)
	case "clean":
		return clean(cfg, yes)
	case "backup":
		return backup(cfg)
	case "restore":
		if len(rest) < 1 {
			fmt.Println("Error: backup file path required for restore")
			return 1
		}
		return restore(cfg, rest[0], yes)
	case "import":
		if len(rest) < 1 {
			fmt.Println("Error: posts file path required for import")
			return 1
		}
		return importPosts(cfg, rest[0])
	case "comment-active":
		if len(rest) < 2 {
			fmt.Println("Error: usage is comment-active <id> <true|false>")
			return 1
		}
		return commentActive(cfg, rest[0], rest[1])
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		printHelp()
		return 1
	}
}

// printHelp prints help for the blog subcommands.
func printHelp() {
	helpText := `Usage: blog <command> [options]

Commands:
  serve                           Run the blog web server
  init                            Initialize a new empty database
  clean [--yes]                   Remove the blog database
  backup                          Create a backup of the database
  restore [--yes] <file>          Restore database from backup
  import <file.json>              Import posts from a JSON array
  comment-active <id> <bool>      Show or hide a comment
  help                            Display this help message
  version                         Show version information

Configuration is read from config/config.json (or $BLOG_CONFIG) and BLOG_* environment variables.
`
	fmt.Println(helpText)
}

// initDb creates an empty database, or the SQL schema for SQL drivers.
func initDb(cfg config.Config) int {
	if cfg.Storage.Driver == repositories.DriverBadger {
		if _, err := os.Stat(cfg.Storage.Path); err == nil {
			fmt.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
			return 0
		}
		if err := os.MkdirAll(cfg.Storage.Path, 0755); err != nil {
			fmt.Printf("Failed to create database directory: %v\n", err)
			return 1
		}
	} else if cfg.Storage.Driver == repositories.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0755); err != nil {
			fmt.Printf("Failed to create database directory: %v\n", err)
			return 1
		}
	}

	store, err := openStore(cfg, nil)
	if err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		return 1
	}
	defer store.Close()

	fmt.Println("Database initialized successfully")
	return 0
}

// clean removes the database files.
func clean(cfg config.Config, yes bool) int {
	if cfg.Storage.Driver == repositories.DriverMySQL {
		fmt.Println("clean is not supported for mysql storage; drop the database instead")
		return 1
	}
	if _, err := os.Stat(cfg.Storage.Path); os.IsNotExist(err) {
		fmt.Println("Database is already clean (does not exist)")
		return 0
	}

	if !confirm("Are you sure you want to clean the database? This cannot be undone.", yes) {
		fmt.Println("Operation cancelled")
		return 1
	}

	if err := os.RemoveAll(cfg.Storage.Path); err != nil {
		fmt.Printf("Failed to clean database: %v\n", err)
		return 1
	}
	fmt.Println("Database cleaned successfully")
	return 0
}

func requireBadger(cfg config.Config, op string) bool {
	if cfg.Storage.Driver != repositories.DriverBadger {
		fmt.Printf("%s is only supported for badger storage (configured: %s)\n", op, cfg.Storage.Driver)
		return false
	}
	return true
}

// backup writes a full badger backup next to the database directory.
func backup(cfg config.Config) int {
	if !requireBadger(cfg, "backup") {
		return 1
	}
	if _, err := os.Stat(cfg.Storage.Path); os.IsNotExist(err) {
		fmt.Println("No database exists to backup")
		return 1
	}

	backupDir := filepath.Join(filepath.Dir(cfg.Storage.Path), "backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		fmt.Printf("Failed to create backup directory: %v\n", err)
		return 1
	}

	db, err := badger.Open(badger.DefaultOptions(cfg.Storage.Path).WithLogger(nil))
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		fmt.Printf("Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		fmt.Printf("Failed to backup database: %v\n", err)
		return 1
	}

	fmt.Printf("Database backed up successfully to %s\n", backupFile)
	return 0
}

// restore replaces the badger database with the contents of backupFile.
func restore(cfg config.Config, backupFile string, yes bool) int {
	if !requireBadger(cfg, "restore") {
		return 1
	}
	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if err == nil && fi.Size() == 0 {
		fmt.Printf("Backup file is empty: %s\n", backupFile)
		return 1
	}

	if _, err := os.Stat(cfg.Storage.Path); err == nil {
		if !confirm("Existing database found. Do you want to replace it?", yes) {
			fmt.Println("Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(cfg.Storage.Path); err != nil {
			fmt.Printf("Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	if err := os.MkdirAll(cfg.Storage.Path, 0755); err != nil {
		fmt.Printf("Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := badger.Open(badger.DefaultOptions(cfg.Storage.Path).WithLogger(nil))
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Printf("Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	err = func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic occurred during restore: %v", r)
			}
		}()
		return db.Load(f, 4)
	}()
	if err != nil {
		fmt.Printf("Failed to restore database: %v\n", err)
		return 1
	}

	fmt.Println("Database restored successfully")
	return 0
}
