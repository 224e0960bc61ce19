package application

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/psds-microservice/support-portal/internal/config"
	"github.com/psds-microservice/support-portal/internal/database"
	"github.com/psds-microservice/support-portal/internal/handler"
	"github.com/psds-microservice/support-portal/internal/router"
	"github.com/psds-microservice/support-portal/internal/service"
	"github.com/psds-microservice/support-portal/internal/ws"
)

// API приложение: HTTP-сервер портала (режим api).
type API struct {
	cfg     *config.Config
	httpSrv *http.Server
	hub     *ws.Hub
}

// NewAPI собирает приложение: миграции схемы (ошибка фатальна), подключение
// к БД, сервис, live-хаб и роутер. Единственные экземпляры хранилища и хаба
// создаются здесь и передаются хендлерам явно.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	ticketSvc := service.NewTicketService(db)
	hub := ws.NewHub()
	ticketHandler := handler.NewTicketHandler(ticketSvc, hub)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(ticketHandler, hub, cfg.DBPath),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{
		cfg:     cfg,
		httpSrv: httpSrv,
		hub:     hub,
	}, nil
}

// Run запускает HTTP-сервер, блокируется до отмены ctx.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	log.Printf("Support Portal listening on %s", a.httpSrv.Addr)
	log.Printf("  Tickets:    %s/tickets", base)
	log.Printf("  Stats:      %s/stats", base)
	log.Printf("  Live feed:  ws://%s:%s/ws", host, a.cfg.HTTPPort)
	log.Printf("  Swagger UI: %s/swagger", base)
	log.Printf("  Health:     %s/health", base)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.hub.Close()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
