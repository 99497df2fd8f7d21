package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"roombooking/internal/api"
	"roombooking/internal/client"
	"roombooking/internal/config"
	"roombooking/internal/messages"
	"roombooking/internal/metrics"
	"roombooking/internal/repository"
	"roombooking/internal/service"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open DB")
	}
	if err := database.Ping(); err != nil {
		logrus.WithError(err).Fatal("failed to connect to DB")
	}

	bookingMetrics := metrics.NewBookingMetrics()

	store := repository.NewReservationRepository(database)
	lock := repository.NewAdvisoryLock(database, cfg.LockTimeout)
	statsRepo := repository.NewStatsRepository(database)

	rooms := service.NewRoomService(client.NewRoomClient(cfg.RoomServiceURL))
	policy := service.BookingPolicy{
		MaxDaysInRow:   cfg.MaxDaysInRow,
		MaxDaysAdvance: cfg.MaxDaysAdvance,
	}
	bookingService := service.NewBookingService(store, lock, rooms, policy, bookingMetrics)
	jobService := service.NewJobService(statsRepo, bookingMetrics)

	renderer := api.NewErrorRenderer(messages.NewSource(cfg.DefaultLanguage))
	bookingHandler := api.NewBookingHandler(bookingService, renderer)

	r := mux.NewRouter()
	bookingHandler.Register(r)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.StatsCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := jobService.SnapshotOccupancy(ctx); err != nil {
			logrus.WithError(err).Error("occupancy snapshot failed")
		}
	}); err != nil {
		logrus.WithError(err).Fatal("failed to schedule stats job")
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := handlers.CombinedLoggingHandler(os.Stdout,
		handlers.RecoveryHandler()(
			handlers.CORS(
				handlers.AllowedMethods([]string{"GET", "POST", "PUT", "OPTIONS"}),
				handlers.AllowedHeaders([]string{"Content-Type", "Accept-Language"}),
			)(r),
		),
	)

	logrus.WithField("port", cfg.Port).Info("server running")
	if err := http.ListenAndServe(":"+cfg.Port, server); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
