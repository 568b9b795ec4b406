package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/audit"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/config"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/es"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/handlers"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/logging"
	mwauth "github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/middleware/auth"
	loggingmw "github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/middleware/logging"
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/mykafka"
	httpserver "github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/transport/http"
)

const searchIndex = "fleet"

func main() {
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(configuration.JWT_SECRET, "JWT_SECRET")

	logger := logging.New(configuration.LOG_LEVEL)

	if err := config.Seed(db, configuration.ADMIN_EMAIL, configuration.ADMIN_PASSWORD); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)

	prod, err := mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	if err != nil {
		log.Printf("kafka disabled: %v", err)
		prod = nil
	}

	esClient := (*elasticsearch.Client)(nil)
	if configuration.ES_URL != "" {
		esClient, err = es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
	} else {
		log.Printf("elasticsearch disabled: no ES_URL configured")
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	gate := &mwauth.Gate{DB: db, JWTSecret: jwtSecret}
	recorder := &audit.Recorder{DB: db, Producer: prod}
	fleet := &handlers.FleetSideEffects{Producer: prod, ES: esClient, Index: searchIndex}

	deps := httpserver.Deps{
		Gate:        gate,
		Auth:        &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret},
		Users:       &handlers.UserHandler{DB: db, Audit: recorder},
		Roles:       &handlers.RoleHandler{DB: db, Audit: recorder},
		Audit:       &handlers.AuditHandler{DB: db},
		Companies:   &handlers.CompanyHandler{DB: db, Fleet: fleet},
		Employees:   &handlers.EmployeeHandler{DB: db},
		Trucks:      &handlers.TruckHandler{DB: db, Fleet: fleet},
		Trips:       &handlers.TripHandler{DB: db, Fleet: fleet},
		Maintenance: &handlers.MaintenanceHandler{DB: db},
		Financial:   &handlers.FinancialHandler{DB: db, Audit: recorder},
		Reports:     &handlers.ReportHandler{DB: db},
		Search:      &handlers.SearchHandler{ES: esClient, Index: searchIndex},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
