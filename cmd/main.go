package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore/internal/handlers"
	"bookstore/internal/logger"
	"bookstore/internal/models"
	"bookstore/internal/repository"
	"bookstore/internal/repository/db"
	"bookstore/internal/server"
	"bookstore/internal/service"

	"github.com/spf13/viper"
)

func main() {
	// init logger (level from config once it's loaded would be circular;
	// config read errors are the only thing logged before loadConfig)
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log_level"))

	// open DB
	conn, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies; the token codec and the HTTP handler are built
	// independently and composed here
	repos := repository.NewRepository(conn)
	services := service.NewService(repos)
	codec := service.NewTokenCodec(
		viper.GetString("auth.signing_key"),
		viper.GetDuration("auth.token_ttl"),
	)
	apiHandler := handlers.NewHandler(services, codec, log)

	// seed users and catalog on an empty database
	if err := seedData(context.Background(), repos, services, log); err != nil {
		log.Fatalw("failed to seed data", "err", err)
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	viper.SetDefault("auth.token_ttl", service.DefaultTokenTTL)
	if err := viper.BindEnv("auth.signing_key", "BOOKSTORE_SIGNING_KEY"); err != nil {
		return err
	}
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "bookstore.db")
		dbPath = "bookstore.db"
	}
	return db.InitDB(dbPath)
}

// seedData populates the demo accounts and a starter catalog, each only
// when its table is empty.
func seedData(ctx context.Context, repos *repository.Repository, services *service.Service, log *logger.Logger) error {
	userCount, err := repos.Users.Count(ctx)
	if err != nil {
		return err
	}
	if userCount == 0 {
		if err := services.EnsureUser(ctx, "admin", "admin123", models.RoleAdmin); err != nil {
			return err
		}
		if err := services.EnsureUser(ctx, "user", "user123", models.RoleUser); err != nil {
			return err
		}
		log.Infow("seeded default accounts", "usernames", []string{"admin", "user"})
	}

	bookCount, err := repos.Books.Count(ctx)
	if err != nil {
		return err
	}
	if bookCount == 0 {
		seedBooks := []models.Book{
			{
				Title:           "Les Misérables",
				Author:          "Victor Hugo",
				ISBN:            "978-1234567890",
				Price:           19.99,
				Description:     "Roman classique de la littérature française.",
				Category:        models.CategoryRoman,
				PublicationYear: 1862,
			},
			{
				Title:           "Les Fleurs du Mal",
				Author:          "Charles Baudelaire",
				ISBN:            "978-1234567891",
				Price:           14.50,
				Category:        models.CategoryPoesie,
				PublicationYear: 1857,
			},
		}
		for _, b := range seedBooks {
			if _, err := services.Catalog.Create(ctx, b); err != nil {
				return err
			}
		}
		log.Infow("seeded catalog", "books", len(seedBooks))
	}
	return nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
