package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/authgate/internal/authz"
	"github.com/dmitrijs2005/authgate/internal/config"
	"github.com/dmitrijs2005/authgate/internal/cryptox"
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/otpx"
	"github.com/dmitrijs2005/authgate/internal/repositories/repomanager"
	"github.com/dmitrijs2005/authgate/internal/services"
)

type App struct {
	config  *config.Config
	module  *services.Module
	storage io.Closer
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp wires storage, hashing, one-time codes and the role policy from c
// into a Module. Diagnostics go to stderr so they never mix with the menu.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewTextLogger(os.Stderr, c.LogLevel)
	if err != nil {
		return nil, err
	}

	hasher, err := cryptox.NewHasher(c.HashMethod)
	if err != nil {
		return nil, err
	}

	gate, err := authz.NewGate(c.PolicyFile)
	if err != nil {
		return nil, err
	}

	rm, err := repomanager.Open(ctx, repomanager.Options{
		Storage:    c.Storage,
		DataDir:    c.DataDir,
		UsersFile:  c.UsersFile,
		AuditFile:  c.AuditFile,
		SQLitePath: c.SQLitePath,
		DSN:        c.DatabaseDSN,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("error opening %s storage: %w", c.Storage, err)
	}

	m, err := services.NewModule(ctx, services.Options{
		Identities: rm.Identities(),
		AuditLog:   rm.AuditLog(),
		Hasher:     hasher,
		Codes:      otpx.NewHOTPGenerator(c.CodeTTL),
		Gate:       gate,
		Logger:     logger,
	})
	if err != nil {
		_ = rm.Close()
		return nil, err
	}

	logger.Debug(ctx, "authgate ready", "storage", c.Storage, "hasher", hasher.Name(), "identities", len(m.Identities()))

	return &App{
		config:  c,
		module:  m,
		storage: rm,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run serves the REPL on the App's input until exit or EOF.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.storage.Close(); err != nil {
			a.logger.Warn(ctx, "error closing storage", "error", err)
		}
	}()

	printlnFn("Secure Authentication Module (type 'help' for the menu)")
	printMenu()
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.module.CurrentSession() != nil
}

func (a *App) getStatus() string {
	s := a.module.CurrentSession()
	if s == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", s.Identity.Username, s.Identity.Role)
}
