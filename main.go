package main

import (
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/daehee-lim/fxview/controller/converter"
	_ "github.com/daehee-lim/fxview/docs"
	"github.com/daehee-lim/fxview/service/apilayer"
	"github.com/daehee-lim/fxview/session"
	"github.com/daehee-lim/fxview/storage"
	"github.com/daehee-lim/fxview/storage/persistence"
)

//	@title			Currency Conversion Screen
//	@version		1.0
//	@description	Live exchange-rate lookup and amount conversion sessions

// @host		localhost:3000
func main() {
	_ = godotenv.Load()

	content, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Error().Err(err).Msg("unable to read configuration file")
		os.Exit(1)
	}

	cfg := Config{}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		log.Error().Err(err).Msg("unable to parse configuration file")
		os.Exit(1)
	}

	// the API credential is supplied through the environment
	// only, never through the config file
	cfg.RateAPIKey = os.Getenv("APILAYER_API_KEY")
	if cfg.RateAPIKey == "" {
		log.Error().Msg("APILAYER_API_KEY is not set")
		os.Exit(1)
	}

	if err := New(cfg); err != nil {
		log.Error().Err(err).Msg("unable to initialize application")
		os.Exit(1)
	}
}

func New(cfg Config) error {
	a := Application{cfg: cfg}
	return a.init()
}

type Application struct {
	cfg      Config           // application configuration
	fiberApp *fiber.App       // underlying fiber application
	quoteLog storage.QuoteLog // optional quote history provider
	dbConn   *sql.DB          // underlying persistence connection
	manager  *session.Manager // live conversion sessions
	stopC    chan os.Signal   // handle interrupt for clean up(close connections, etc)
}

func (a *Application) init() error {
	setLogLevel(a.cfg.LogLevel)

	a.fiberApp = fiber.New()
	a.stopC = make(chan os.Signal, 1)
	signal.Notify(a.stopC, os.Interrupt)

	if a.cfg.DBHost != "" {
		connStr := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
			a.cfg.DBUsername,
			a.cfg.DBPassword,
			a.cfg.DBHost,
			a.cfg.DBPort,
			a.cfg.DBName,
		)
		log.Debug().Str("host", a.cfg.DBHost).Msg("initialize db connection")

		dbConn, err := sql.Open("postgres", connStr)
		if err != nil {
			log.Error().Err(err).Msg("unable to connect to db")
			return err
		}

		a.dbConn = dbConn
		a.quoteLog = persistence.New(dbConn)
	}

	rateSource, err := apilayer.New(a.cfg.RateAPIKey, a.cfg.RateAPIURL)
	if err != nil {
		log.Error().Err(err).Msg("unable to create rate API client")
		return err
	}

	a.manager = session.NewManager(rateSource, a.quoteLog, time.Duration(a.cfg.SessionTTLMinutes)*time.Minute)

	a.buildRoutes()
	go a.stop()
	log.Debug().Msg("preparing fiber http server")

	if err := a.fiberApp.Listen(a.cfg.HTTPPort); err != nil {
		log.Error().Err(err).Msg("unable to start http server")
	}

	return nil
}

func (a *Application) buildRoutes() {
	c := converter.New(a.manager, a.quoteLog)

	a.fiberApp.Get("/swagger/*", swagger.HandlerDefault)
	a.fiberApp.Get("/currencies", c.Currencies)
	a.fiberApp.Post("/sessions", c.CreateSession)
	a.fiberApp.Get("/sessions/:id", c.GetSession)
	a.fiberApp.Put("/sessions/:id/pair", c.SelectPair)
	a.fiberApp.Put("/sessions/:id/amount", c.SetAmount)
	a.fiberApp.Post("/sessions/:id/convert", c.Convert)
	a.fiberApp.Post("/sessions/:id/retry", c.Retry)
	a.fiberApp.Get("/history", c.History)
}

func (a *Application) stop() {
	<-a.stopC
	a.fiberApp.Shutdown()
	a.manager.Close()
	if a.dbConn != nil {
		a.dbConn.Close()
	}
	os.Exit(0)
}

func setLogLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}
