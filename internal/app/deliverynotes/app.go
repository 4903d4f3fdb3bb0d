// Package deliverynotes собирает API-приложение: хранилище, миграции, кеш,
// очередь почты, контентное хранилище, сервисы и HTTP-сервер.
package deliverynotes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/albaranes-app/delivery-notes/internal/cache"
	"github.com/albaranes-app/delivery-notes/internal/config"
	"github.com/albaranes-app/delivery-notes/internal/contentstore"
	"github.com/albaranes-app/delivery-notes/internal/lib/jwt"
	"github.com/albaranes-app/delivery-notes/internal/lib/rabbitmq"
	"github.com/albaranes-app/delivery-notes/internal/migrations"
	"github.com/albaranes-app/delivery-notes/internal/pdf"
	authservice "github.com/albaranes-app/delivery-notes/internal/services/auth"
	clientservice "github.com/albaranes-app/delivery-notes/internal/services/client"
	noteservice "github.com/albaranes-app/delivery-notes/internal/services/deliverynote"
	"github.com/albaranes-app/delivery-notes/internal/services/mailqueue"
	projectservice "github.com/albaranes-app/delivery-notes/internal/services/project"
	userservice "github.com/albaranes-app/delivery-notes/internal/services/user"
	"github.com/albaranes-app/delivery-notes/internal/storage/repository"
)

// App - API-приложение с HTTP-сервером и внешними подключениями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New инициализирует все зависимости приложения и настраивает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitConnection, cfg.ConnectRetries, cfg.ConnectDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, []rabbitmq.QueueConfig{rabbitmq.MailQueue})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	store, err := contentstore.New(ctx, cfg.ContentStore)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	publisher := mailqueue.New(ch)

	authService := authservice.NewAuthService(db, jwtMaker, publisher, cfg.MailFrom, logger)
	userService := userservice.New(db, db, store, logger)
	clientService := clientservice.New(db, cacheRedis, logger)
	projectService := projectservice.New(db, db, logger)
	noteService := noteservice.New(db, db, store, pdf.NewRenderer(), logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, jwtMaker, &Services{
		Auth:    authService,
		User:    userService,
		Client:  clientService,
		Project: projectService,
		Note:    noteService,
		MailPub: publisher,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.ch.Close(); closeErr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", closeErr))
		}
		if closeErr := a.conn.Close(); closeErr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		_ = a.db.DB.Close()
		return err
	}
}
