package internal

import (
	"context"
	"fmt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"medreminder/internal/controllers"
	notifyIfaces "medreminder/internal/notify/interfaces"
	"medreminder/internal/providers"
	"medreminder/internal/reminder/interfaces"
	"medreminder/internal/services"
	"medreminder/internal/structures"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

type App struct {
	WebServer   *http.Server
	conf        *structures.Config
	logger      providers.Logger
	sink        notifyIfaces.SinkInterface
	medications services.MedicationServiceInterface
	history     services.HistoryServiceInterface
	scheduler   interfaces.SchedulerInterface
	maintenance interfaces.MaintenanceInterface
}

func NewApp(healthController *controllers.HealthController, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface, sink notifyIfaces.SinkInterface, medications services.MedicationServiceInterface, history services.HistoryServiceInterface, scheduler interfaces.SchedulerInterface, maintenance interfaces.MaintenanceInterface) *App {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	// Wrap API routes with metrics middleware
	instrumentedAPI := providers.MetricsMiddleware(metrics, router.GetRoutes(), apiMux)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		conf:        conf,
		logger:      logger,
		sink:        sink,
		medications: medications,
		history:     history,
		scheduler:   scheduler,
		maintenance: maintenance,
	}
}

// Start asks for notification permission, restores persisted state and arms
// the reminders.
func (a *App) Start() {
	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)
	a.logger.Infof(providers.TypeNotify, "Notification permission: %s", a.sink.RequestPermission())

	a.history.Restore()
	a.medications.Restore()
	a.maintenance.Init()
}

// Stop cancels every pending reminder and flushes history.
func (a *App) Stop() error {
	a.maintenance.Stop()
	a.scheduler.Shutdown()
	if err := a.history.Compact(); err != nil {
		return fmt.Errorf("compact history: %w", err)
	}
	return nil
}

// Run serves until SIGINT/SIGTERM or a server error.
func (a *App) Run() error {
	a.Start()

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
		if err := a.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-stop:
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.WebServer.Shutdown(ctx); err != nil && runErr == nil {
		runErr = err
	}
	if err := a.Stop(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}
