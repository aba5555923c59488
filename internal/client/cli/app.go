package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/softasistence/internal/client/client"
	"github.com/dmitrijs2005/softasistence/internal/client/config"
	"github.com/dmitrijs2005/softasistence/internal/server/models"
	"github.com/dmitrijs2005/softasistence/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/softasistence/internal/server/services"
	"github.com/dmitrijs2005/softasistence/internal/server/validators"
)

const passwordEnv = "ATTENDCTL_PASSWORD"

// UserCreator seeds accounts. *services.AuthService satisfies it.
type UserCreator interface {
	CreateUser(ctx context.Context, u validators.NewUser, active bool) (*models.User, error)
}

type App struct {
	config *config.Config
	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer

	newClient func(*config.Config) (client.Client, error)
	openUsers func(ctx context.Context, dsn string) (UserCreator, io.Closer, error)
}

func NewApp(in io.Reader, out, errOut io.Writer) *App {
	return &App{
		reader:    bufio.NewReader(in),
		out:       out,
		errOut:    errOut,
		newClient: newClient,
		openUsers: openUsers,
	}
}

func newClient(cfg *config.Config) (client.Client, error) {
	if cfg.Transport == config.TransportGRPC {
		return client.NewGRPCClient(cfg.GRPCAddr)
	}
	return client.NewHTTPClient(cfg.ServerURL, cfg.Timeout), nil
}

// openUsers connects to dsn and checks the users table before handing out
// an AuthService for account creation.
func openUsers(ctx context.Context, dsn string) (UserCreator, io.Closer, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("db connect error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.VerifySchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	return services.NewAuthService(db, m, nil, nil, nil), db, nil
}

// password returns ATTENDCTL_PASSWORD when set, otherwise prompts.
func (a *App) password(prompt string) ([]byte, error) {
	if v, ok := os.LookupEnv(passwordEnv); ok {
		return []byte(v), nil
	}
	return getPassword(a.errOut, prompt)
}

// withClient runs fn with a client and a per-call timeout.
func (a *App) withClient(ctx context.Context, fn func(ctx context.Context, c client.Client) error) error {
	c, err := a.newClient(a.config)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()
	return fn(ctx, c)
}
