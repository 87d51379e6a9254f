package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/andy/depobill/internal/config"
	"github.com/andy/depobill/internal/crypto"
	"github.com/andy/depobill/internal/db"
	"github.com/andy/depobill/internal/export"
	"github.com/andy/depobill/internal/logging"
	"github.com/andy/depobill/internal/repository"
	"github.com/andy/depobill/internal/service"
)

// App is the dependency injection container for all application components
type App struct {
	Config     *config.Config
	ConfigPath string
	DB         *db.DB
	Logger     *log.Logger

	// Repositories
	KV          repository.KVStore
	AddressBook repository.AddressBookRepository
	Profile     repository.ProfileRepository
	Sequence    repository.SequenceRepository

	// Services
	ExportService service.ExportService

	// Where invoices go when nobody is asked
	DirectSaver *export.DirectSaver

	logCloser io.Closer
}

// New creates a new App instance, initializing all dependencies.
// It loads config, unlocks the encrypted store (prompting on first run),
// migrates it and wires repositories and services on top.
func New(ctx context.Context) (*App, error) {
	path := config.DefaultConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a, err := NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.ConfigPath = path
	return a, nil
}

// NewWithConfig creates an App backed by the SQLCipher database in cfg
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	password, err := unlockKey(crypto.NewKeyring())
	if err != nil {
		closer.Close()
		return nil, err
	}

	database, err := db.Open(cfg.Database.Path, password)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	applied, err := database.RunMigrations(ctx)
	if err != nil {
		database.Close()
		closer.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if applied > 0 {
		logger.Info("database migrated", "applied", applied, "path", database.Path)
	}

	a := NewWithStore(cfg, repository.NewKVRepo(database), logger)
	a.DB = database
	a.logCloser = closer
	return a, nil
}

// NewWithStore wires repositories and services over an existing store.
// Tests pass a repository.MemoryKV.
func NewWithStore(cfg *config.Config, kv repository.KVStore, logger *log.Logger) *App {
	addressBook := repository.NewAddressBookRepo(kv, logger)
	profile := repository.NewProfileRepo(kv)
	sequence := repository.NewSequenceRepo(kv, logger)

	direct := &export.DirectSaver{Dir: cfg.Export.OutputDir}
	exportService := service.NewExportService(sequence, profile, addressBook, direct, logger,
		&export.PDFRasterizer{}, &export.HTMLRasterizer{})

	return &App{
		Config:        cfg,
		ConfigPath:    config.DefaultConfigPath(),
		Logger:        logger,
		KV:            kv,
		AddressBook:   addressBook,
		Profile:       profile,
		Sequence:      sequence,
		ExportService: exportService,
		DirectSaver:   direct,
	}
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	var err error
	if a.DB != nil {
		err = a.DB.Close()
	}
	if a.logCloser != nil {
		a.logCloser.Close()
	}
	return err
}

// ExportFormat returns the configured default format
func (a *App) ExportFormat() export.Format {
	f, err := export.ParseFormat(a.Config.Export.Format)
	if err != nil {
		return export.FormatPDF
	}
	return f
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(a.ConfigPath)
}

// unlockKey returns the stored database key, asking for a new one on first run
func unlockKey(kr crypto.Keyring) (string, error) {
	password, err := kr.GetKey()
	if err == nil {
		return password, nil
	}

	fmt.Println("Setting up database encryption for the first time...")
	password, err = promptForPassword()
	if err != nil {
		return "", fmt.Errorf("failed to set password: %w", err)
	}
	if err := kr.SetKey(password); err != nil {
		return "", fmt.Errorf("failed to store encryption key: %w", err)
	}
	return password, nil
}

// promptForPassword prompts user for a new database password (first run)
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your profile, address book and invoice numbers are stored encrypted.")
	fmt.Println("The password is kept in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	fd := int(os.Stdin.Fd())
	password, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) == 0 {
		return "", crypto.ErrEmptyPassword
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}
	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured successfully")
	fmt.Println()
	return string(password), nil
}
