package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	onboarding "github.com/rkycareers/go-onboarding"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := onboarding.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := onboarding.NewRepositoryManager(db)
	if err := repo.Validate(); err != nil {
		log.Fatalf("Invalid repository setup: %v", err)
	}

	hooks := onboarding.NewHooks()

	var mailer onboarding.Mailer
	if cfg.SMTP.Host != "" {
		mailer = onboarding.NewSMTPMailer(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
			cfg.SMTP.From,
		)
	} else {
		log.Println("SMTP host not configured, printing welcome emails to console")
		mailer = onboarding.ConsoleMailer{}
	}

	controller := onboarding.NewStudentsController(
		onboarding.WithRepository(repo),
		onboarding.WithAuthenticator(
			onboarding.NewBasicAuthenticator(cfg.Auth.APIUsername, cfg.Auth.APIPassword),
		),
		onboarding.WithHooks(hooks),
		onboarding.WithNotifier(onboarding.NewNotifier(repo, mailer, hooks)),
		onboarding.WithNamespace(cfg.Server.Namespace),
		onboarding.WithDebug(cfg.Server.Debug),
	)

	app := fiber.New(fiber.Config{
		AppName: "student-onboarding",
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	onboarding.RegisterStudentRoutes(app, controller)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()
	log.Printf("Listening on %s, namespace /%s/v1", addr, cfg.Server.Namespace)

	sig := WaitExitSignal()
	log.Printf("Received %s, shutting down", sig)

	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func openDatabase(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if _, err := db.NewCreateTable().
		Model((*onboarding.User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
