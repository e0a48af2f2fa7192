package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"go-calendar-api/core/cache"
	"go-calendar-api/core/config"
	"go-calendar-api/core/constants"
	"go-calendar-api/core/database"
	"go-calendar-api/core/logger"
	"go-calendar-api/modules/auth"
	"go-calendar-api/modules/event"
	"go-calendar-api/modules/export"
	"go-calendar-api/modules/note"
	"go-calendar-api/modules/reminder"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run boots the API and the reminder worker and blocks until SIGINT/SIGTERM.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.Server.LogLevel)

	db, err := database.New(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	c, err := cache.New(cfg.Redis)
	if err != nil {
		return err
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	taskClient := asynq.NewClient(redisOpt)
	defer taskClient.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())

	auth.Init(e, db, c)
	reminderSvc := reminder.Init(e, db, c, taskClient)
	event.Init(e, db, c, reminderSvc)
	note.Init(e, db, c)
	export.Init(e, db, c)

	worker := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			constants.ReminderQueue: 1,
		},
	})
	mux := asynq.NewServeMux()
	reminder.RegisterWorker(mux, reminderSvc)
	if err := worker.Start(mux); err != nil {
		return err
	}

	go func() {
		if serr := e.Start(":" + cfg.Server.Port); serr != nil && serr != http.ErrServerClosed {
			logger.Error("Server:Start:Error:", "error", serr)
		}
	}()
	logger.Info("Server:Started", "port", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("Server:ShuttingDown")
	worker.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
