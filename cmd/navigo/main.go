package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/logitrans/navigo-go/api"
	"github.com/logitrans/navigo-go/auth"
	"github.com/logitrans/navigo-go/company"
	"github.com/logitrans/navigo-go/internal/config"
	"github.com/logitrans/navigo-go/session"
	"github.com/logitrans/navigo-go/token"
	"github.com/logitrans/navigo-go/token/filestore"
	"github.com/logitrans/navigo-go/vehicle"
)

// app bundles the wired-up SDK services for the commands.
type app struct {
	config   config.Config
	sessions *session.Manager
	auth     *auth.Service
	company  *company.Service
	vehicle  *vehicle.Service
}

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("navigo failed")
	}
}

func run() error {
	c := config.New()
	setupLogging(c.GetLogLevel())

	application, err := buildApp(c)
	if err != nil {
		return err
	}
	defer application.sessions.Dispose()

	return newRootCommand(application).Execute()
}

func buildApp(c config.Config) (*app, error) {
	store, err := filestore.New(c.GetDataFolder())
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(c.GetAPIBaseURL(), api.WithTokenSource(token.Source{Store: store}))
	if err != nil {
		return nil, err
	}

	authService, err := auth.NewService(client, store)
	if err != nil {
		return nil, err
	}

	companyService, err := company.NewService(client)
	if err != nil {
		return nil, err
	}

	vehicleService, err := vehicle.NewService(client)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewManager(authService)
	if err != nil {
		return nil, err
	}

	return &app{
		config:   c,
		sessions: sessions,
		auth:     authService,
		company:  companyService,
		vehicle:  vehicleService,
	}, nil
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
