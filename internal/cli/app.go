package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/inodesk/internal/config"
	"github.com/dmitrijs2005/inodesk/internal/directory"
	"github.com/dmitrijs2005/inodesk/internal/filex"
	"github.com/dmitrijs2005/inodesk/internal/logging"
	"github.com/dmitrijs2005/inodesk/internal/obs"
	"github.com/dmitrijs2005/inodesk/internal/repositories/accounts"
	"github.com/dmitrijs2005/inodesk/internal/repositories/mirror"
	"github.com/dmitrijs2005/inodesk/internal/services"
	"github.com/dmitrijs2005/inodesk/internal/session"
	"github.com/dmitrijs2005/inodesk/internal/storage"
)

type App struct {
	config   *config.Config
	service  *services.IdentityService
	db       *sql.DB
	registry *prometheus.Registry
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the database named in c, wires the identity service over it
// and runs its Init, so the returned App already has the persisted
// directory and any restored session.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if err := filex.EnsureDBDir(c.DatabaseDSN); err != nil {
		return nil, err
	}
	db, err := storage.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	reg := prometheus.NewRegistry()
	sess := session.NewStore(mirror.NewSQLiteRepository(db),
		session.WithLogger(log),
		session.WithTimeout(c.StorageTimeout),
	)

	opts := []services.Option{
		services.WithAccounts(accounts.NewSQLiteRepository(db)),
		services.WithMetrics(obs.NewMetrics(reg)),
		services.WithLogger(log),
		services.WithPasswordCost(c.PasswordCost),
		services.WithStorageTimeout(c.StorageTimeout),
	}
	if !c.SeedDefaults {
		opts = append(opts, services.WithSeeds())
	}
	svc := services.NewIdentityService(directory.New(), sess, opts...)

	if err := svc.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:   c,
		service:  svc,
		db:       db,
		registry: reg,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run serves metrics if configured and runs the shell until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if a.config.MetricsAddr != "" {
		srv := a.serveMetrics(ctx)
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	a.println("Welcome to inodesk (type 'help' for commands)")
	if u, ok := a.service.CurrentUser(); ok {
		a.println("Session restored for", u.Name)
	}
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) serveMetrics(ctx context.Context) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", obs.Handler(a.registry))
	srv := &http.Server{Addr: a.config.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		a.log.Info(ctx, "metrics listener started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error(ctx, "metrics listener failed", "error", err)
		}
	}()
	return srv
}

// Close releases the database.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.service.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	u, ok := a.service.CurrentUser()
	return ok && u.IsAdmin
}

func (a *App) status() string {
	u, ok := a.service.CurrentUser()
	if !ok {
		return ""
	}
	return fmt.Sprintf(" (%s %s)", u.Name, u.Role())
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// fail prints the user-facing reason for err and returns it.
func (a *App) fail(err error) error {
	a.println(services.Reason(err))
	return err
}
