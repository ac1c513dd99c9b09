package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/TWRT/arrival-location/internal/api"
	"github.com/TWRT/arrival-location/internal/client/ionapi"
	"github.com/TWRT/arrival-location/internal/config"
	"github.com/TWRT/arrival-location/internal/rabbit"
	"github.com/TWRT/arrival-location/internal/repository"
	"github.com/TWRT/arrival-location/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("init logger:", err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	db, err := repository.InitDB(cfg.DBPath)
	if err != nil {
		logger.Fatal("init DB", zap.Error(err))
	}
	defer db.Close()

	ionClient := ionapi.NewIONAPIClient(cfg.Mongoose.BaseURL, cfg.Mongoose.Token, cfg.Mongoose.Site, cfg.ION.Timeout)
	journal := repository.NewCallJournalRepository(db)

	var opts []service.Option
	if cfg.RabbitURL != "" {
		conn, err := amqp091.Dial(cfg.RabbitURL)
		if err != nil {
			logger.Fatal("connect RabbitMQ", zap.Error(err))
		}
		defer conn.Close()

		ch, err := conn.Channel()
		if err != nil {
			logger.Fatal("open RabbitMQ channel", zap.Error(err))
		}

		publisher, err := rabbit.SetupPublisher(ch, logger)
		if err != nil {
			logger.Fatal("setup result publisher", zap.Error(err))
		}
		opts = append(opts, service.WithNotifier(publisher))
	}

	arrivalService := service.NewArrivalService(cfg, ionClient, journal, logger, opts...)
	router := api.SetupRouter(arrivalService)

	logger.Info("server listening",
		zap.String("port", cfg.Port),
		zap.String("ido", cfg.IDOName),
		zap.Bool("refetch_after_write", cfg.RefetchAfterWrite))

	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
