package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
	"github.com/greenroomhq/runsheet/modules/runorder/infrastructure/persistence"
	"github.com/greenroomhq/runsheet/modules/runorder/presentation/controllers"
	"github.com/greenroomhq/runsheet/modules/runorder/services"
	"github.com/greenroomhq/runsheet/pkg/configuration"
	"github.com/greenroomhq/runsheet/pkg/eventbus"
	"github.com/greenroomhq/runsheet/pkg/middleware"

	"github.com/gorilla/mux"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}
	defer pool.Close()
	if err := persistence.EnsureSchema(ctx, pool); err != nil {
		logger.WithError(err).Fatal("failed to ensure schema")
	}

	bus := eventbus.NewEventPublisher(logger)
	bus.Subscribe(func(e runorder.ImportCompleted) {
		logger.WithFields(map[string]any{
			"show_id":   e.ShowID,
			"kind":      e.Kind,
			"succeeded": e.Succeeded,
			"failed":    e.Failed,
		}).Info("import completed")
	})
	bus.Subscribe(func(e runorder.ShowDeleted) {
		logger.WithFields(map[string]any{
			"show_id": e.ShowID,
			"title":   e.Title,
		}).Info("show deleted")
	})

	showRepo := persistence.NewShowRepository()
	sketchRepo := persistence.NewSketchRepository()
	performerRepo := persistence.NewCharacterPerformerRepository()
	techRepo := persistence.NewTechDetailsRepository()

	showService := services.NewShowService(showRepo, sketchRepo, bus)
	sketchService := services.NewSketchService(sketchRepo, performerRepo, techRepo)
	importService := services.NewImportService(showRepo, sketchRepo, performerRepo, techRepo, bus)
	optimizerService := services.NewOptimizerService(conf.Optimizer.URL, conf.Optimizer.Timeout, sketchRepo)

	router := mux.NewRouter()
	router.Use(
		middleware.ProvidePool(pool),
		middleware.LogRequests(logger),
	)
	for _, c := range []controllers.Controller{
		controllers.NewShowsAPIController(showService, sketchService),
		controllers.NewSketchesAPIController(sketchService),
		controllers.NewImportAPIController(importService),
		controllers.NewOptimizeAPIController(optimizerService),
	} {
		c.Register(router)
		logger.WithField("controller", c.Key()).Debug("registered controller")
	}
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{conf.Origin},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete,
		},
		AllowedHeaders:   []string{"Content-Type", conf.RequestIDHeader},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         conf.SocketAddress,
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", conf.SocketAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}
