package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AbdulWasayUl/country-explorer/internal/config"
	"github.com/AbdulWasayUl/country-explorer/internal/db"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/internal/session"
	"github.com/AbdulWasayUl/country-explorer/services/country"
	"github.com/AbdulWasayUl/country-explorer/services/favorites"
	"github.com/urfave/cli/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

// env is what every command shares, built once in Before.
type env struct {
	cfg       *config.Config
	directory *country.Service
	session   *session.Session

	mongo     *mongo.Client
	favorites *favorites.Service
}

func newApp() *cli.App {
	e := &env{}

	return &cli.App{
		Name:  "country-explorer",
		Usage: "browse, search and bookmark world countries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "token",
				Usage:   "identity provider ID token; omit to browse anonymously",
				EnvVars: []string{"ID_TOKEN"},
			},
		},
		Before: func(c *cli.Context) error {
			return e.setup(c)
		},
		After: func(c *cli.Context) error {
			e.close(c.Context)
			return nil
		},
		Commands: []*cli.Command{
			countriesCommand(e),
			countryCommand(e),
			favoritesCommand(e),
			featuredCommand(e),
			jobsCommand(e),
		},
	}
}

func (e *env) setup(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	e.cfg = cfg

	// keep stdout for command output
	logger.SetOutput(os.Stderr, cfg.LogLevel)

	e.directory = country.NewService(cfg)
	e.session = session.New()

	provider := session.NewTokenProvider(cfg.SessionJWTSecret, c.String("token"))
	if err := e.session.Start(c.Context, provider); err != nil {
		logger.Warn("Continuing anonymously: %v", err)
	}
	return nil
}

// connect opens MongoDB and wires favorites. Commands that only need the
// directory call it with required=false and carry on without favorites.
func (e *env) connect(ctx context.Context, required bool) error {
	if e.mongo != nil {
		return nil
	}

	client, err := db.ConnectMongoDB(ctx, e.cfg)
	if err == nil {
		err = db.RunMigrations(ctx, client, e.cfg)
		if err != nil {
			_ = db.DisconnectMongoDB(ctx, client)
		}
	}
	if err != nil {
		if required {
			return cli.Exit("MongoDB is unavailable: "+err.Error(), 1)
		}
		logger.Warn("MongoDB is unavailable, favorites are disabled: %v", err)
		return nil
	}

	e.mongo = client
	e.favorites = favorites.NewService(favorites.NewMongoStore(client, e.cfg), e.directory)
	return nil
}

func (e *env) close(ctx context.Context) {
	if e.mongo == nil {
		return
	}
	if err := db.DisconnectMongoDB(context.WithoutCancel(ctx), e.mongo); err != nil {
		logger.Error("Error disconnecting MongoDB: %v", err)
	}
}
