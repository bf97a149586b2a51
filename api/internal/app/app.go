package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"sharkpay/api/internal/config"
	"sharkpay/api/internal/delivery"
	"sharkpay/api/internal/infra/nats"
	"sharkpay/api/internal/logger"
	"sharkpay/api/internal/service"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Config    *config.Config
	Db        *gorm.DB
	NatsInfra *nats.NatsInfra // nil disables payment intake
	Redis     *goredis.Client
	Identity  service.IdentityProvider
	Log       logger.Logger
}

func (app *App) Services() *service.Services {
	return service.NewServices(service.Deps{
		Db:       app.Db,
		Nats:     app.NatsInfra,
		Redis:    app.Redis,
		Identity: app.Identity,
		Log:      app.Log,
		Config:   app.Config,
	})
}

func (app *App) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if app.Config.Prod_env {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	services := app.Services()

	if err := app.Autostart(ctx, services); err != nil {
		return err
	}

	{
		h := delivery.InitHandler(services, app.Db, app.Config, app.Log)

		h.InitAPI(r)
	}

	srv := &http.Server{
		Addr:              app.Config.Api.Ipv4,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	eChan := make(chan error, 1)

	fmt.Println("sharkpay api is starting on", app.Config.Api.Ipv4)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			eChan <- fmt.Errorf("listen and serve: %w", err)
		}
	}()

	select {
	case err := <-eChan:
		app.Log.TemplHTTPError("app fatal error", app.Config.Api.Ipv4, err)
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	app.NatsInfra.Close()
	return err
}

// start autostart services
func (app *App) Autostart(ctx context.Context, services *service.Services) error {
	if app.NatsInfra != nil {
		fmt.Println("Autostart: start consume payments")
		if err := services.Payments.StartConsume(ctx); err != nil {
			return fmt.Errorf("start consume payments: %w", err)
		}
	}

	fmt.Println("Autostart: start process events")
	services.OutboxEvents.StartProcessEvents(ctx)

	return nil
}
