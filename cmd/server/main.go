package main // Entry point package

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/konris39/TrainGymAppCalendar/internal/config"
	"github.com/konris39/TrainGymAppCalendar/internal/database"
	"github.com/konris39/TrainGymAppCalendar/internal/handler"
	"github.com/konris39/TrainGymAppCalendar/internal/logger"
	"github.com/konris39/TrainGymAppCalendar/internal/queue"
	"github.com/konris39/TrainGymAppCalendar/internal/repository"
	"github.com/konris39/TrainGymAppCalendar/internal/router"
	"github.com/konris39/TrainGymAppCalendar/internal/service"
	"github.com/konris39/TrainGymAppCalendar/internal/utils"
)

func main() {
	_ = godotenv.Load() // .env is optional, real env wins

	cfg := config.Load()
	log := logger.New(cfg.Env)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	users := repository.NewUserRepo(db)
	trainings := repository.NewTrainingRepo(db)
	groups := repository.NewGroupRepo(db)
	profiles := repository.NewProfileRepo(db)
	recommended := repository.NewRecommendedRepo(db)

	tokens := utils.NewTokenIssuer(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTLMin, cfg.RefreshTTLMin)
	publisher := service.NewAmqpPublisher(cfg.AmqpURL, logger.With(log, "publisher"))
	trainingSvc := service.NewTrainingService(users, trainings, groups, publisher, logger.With(log, "training"))

	h := router.Handlers{
		Auth:        handler.NewAuthHandler(tokens, users, cfg.BcryptCost),
		Users:       handler.NewUserHandler(users, groups),
		Trainings:   handler.NewTrainingHandler(trainingSvc),
		Profiles:    handler.NewProfileHandler(profiles),
		Recommended: handler.NewRecommendedHandler(recommended, trainingSvc),
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, rate limiting disabled")
	}

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, h, tokens, users, config.LoadRateLimitConfig(), rdb)

	// The trainer-side listener runs out-of-band; a broker outage never
	// affects request handling.
	go queue.StartTrainerRequestConsumer(cfg.AmqpURL, logger.With(log, "consumer"))

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
