package protocal

import (
	"flag"
	"log"
	"os"
	"os/signal"

	"golang-foodbot/configs"
	httpAdapter "golang-foodbot/internal/adapters/input/http"
	"golang-foodbot/internal/adapters/output/gemini"
	lineAdapter "golang-foodbot/internal/adapters/output/line"
	"golang-foodbot/internal/adapters/output/memory"
	"golang-foodbot/internal/adapters/output/overpass"
	"golang-foodbot/internal/adapters/output/postgres"
	"golang-foodbot/internal/application"
	"golang-foodbot/internal/ports/output"
	gormDriver "golang-foodbot/pkg/database_driver/gorm"
	"golang-foodbot/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// ServeHTTP func
func ServeHTTP() error {
	app := fiber.New()
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	logrus.Info(configs.GetViper().Env)

	if err := validator.New().ValidateStruct(configs.GetViper()); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))

	// Session store: postgres when configured, in-memory otherwise.
	var (
		sessionStore output.SessionStore
		dbGorm       *gorm.DB
	)
	if configs.GetViper().Session.Store == "postgres" {
		dbCon, err := gormDriver.ConnectToPostgreSQL(
			configs.GetViper().Postgres.Host,
			configs.GetViper().Postgres.Port,
			configs.GetViper().Postgres.Username,
			configs.GetViper().Postgres.Password,
			configs.GetViper().Postgres.DbName,
			configs.GetViper().Postgres.SSLMode,
		)
		if err != nil {
			return err
		}
		dbGorm = dbCon.Postgres
		sessionStore = postgres.NewSessionRepository(dbGorm)
	} else {
		logrus.Info("Using in-memory session store")
		sessionStore = memory.NewMemorySessionStore()
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			log.Println("Graceful shut down ...")
			if dbGorm != nil {
				gormDriver.DisconnectPostgres(dbGorm)
			}
			err := app.Shutdown()
			if err != nil {
				log.Println("Error when shutdown server: ", err)
			}
		}
	}()

	// Wire up the hexagonal architecture layers
	// Output adapters
	modelClient := gemini.NewGeminiClientAdapter(configs.GetViper().Gemini)
	venueSearch := overpass.NewOverpassClientAdapter(configs.GetViper().Search)
	lineClient, err := lineAdapter.NewLineClientAdapter(configs.GetViper().Line.ChannelToken)
	if err != nil {
		logrus.Fatalf("Failed to create LINE client: %v", err)
	}

	// Application services (use cases)
	dialogueSrv := application.NewDialogueService(sessionStore, modelClient, venueSearch)
	lineWebhookSrv := application.NewLineWebhookService(lineClient, dialogueSrv, sessionStore)

	// Input adapters
	hdl := httpAdapter.New(dbGorm)
	lineWebhookHdl := httpAdapter.NewLineWebhookHandler(lineWebhookSrv, configs.GetViper().Line.ChannelSecret)

	app.Get("/health", hdl.HealthCheck)

	// LINE webhook endpoint
	webhook := app.Group("/webhook")
	{
		webhook.Post("/line", lineWebhookHdl.HandleWebhook)
	}

	err = app.Listen(":" + configs.GetViper().App.Port)
	if err != nil {
		return err
	}

	logrus.Println("Listening on port: ", configs.GetViper().App.Port)
	return nil
}
