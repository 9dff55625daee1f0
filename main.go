package main

import (
	"context"
	"log"
	"time"

	"cinema-ticketing/cmd"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/jobs"
	"cinema-ticketing/internal/queue"
	"cinema-ticketing/internal/wire"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/mailer"
	"cinema-ticketing/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis backs the rate limiter on the hold/checkout routes; optional
	var rdb *redis.Client
	if config.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable, rate limiting disabled", zap.Error(err))
			rdb = nil
		}
	}

	// RabbitMQ carries booking.confirmed receipt events; optional
	var publisher queue.Publisher
	if config.Queue.URL != "" {
		publisher = queue.NewPublisher(config.Queue.URL, logger)

		mail := mailer.NewMailer(config.Email, logger)
		consumer := queue.NewConsumer(config.Queue.URL, func(ctx context.Context, event queue.BookingConfirmedEvent) error {
			return mail.SendBookingReceipt(mailer.Receipt{
				To:          event.Email,
				UserName:    event.UserName,
				BookingID:   event.BookingID,
				MovieTitle:  event.MovieTitle,
				StartsAt:    event.StartsAt.Format("2006-01-02 15:04"),
				TotalCents:  event.TotalCents,
				TicketCount: event.TicketCount,
			})
		}, logger)
		go consumer.Run(ctx)
	}

	if config.Reaper.Enabled {
		reaper := jobs.NewReaper(repos, time.Duration(config.Reaper.IntervalMinutes)*time.Minute, logger)
		go reaper.Run(ctx)
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, rdb, publisher, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
