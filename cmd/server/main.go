package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	customerhandler "cleanpos/internal/customer/handler"
	"cleanpos/internal/customer/qr"
	customerservice "cleanpos/internal/customer/service"
	customerstore "cleanpos/internal/customer/store"
	orderhandler "cleanpos/internal/order/handler"
	orderservice "cleanpos/internal/order/service"
	orderstore "cleanpos/internal/order/store"
	"cleanpos/internal/platform/config"
	"cleanpos/internal/platform/httpserver"
	"cleanpos/internal/platform/logger"
	"cleanpos/internal/platform/metrics"
	"cleanpos/internal/platform/middleware"
	"cleanpos/internal/ticketing/adapters"
	ticketinghandler "cleanpos/internal/ticketing/handler"
	ticketingmetrics "cleanpos/internal/ticketing/metrics"
	"cleanpos/internal/ticketing/printer"
	ticketingservice "cleanpos/internal/ticketing/service"
	auditmemory "cleanpos/pkg/platform/audit/memory"
)

// main wires the dependencies explicitly and keeps the server lifecycle
// small. Business logic lives in the internal service packages; every
// collaborator is constructed here and injected, never reached through
// package-level state.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	appMetrics := metrics.New()
	tktMetrics := ticketingmetrics.New()
	auditStore := auditmemory.NewInMemoryStore()

	customers := customerstore.NewInMemoryCustomerStore()
	customerSvc, err := customerservice.New(customers,
		customerservice.WithLogger(log),
		customerservice.WithMetrics(appMetrics),
	)
	if err != nil {
		log.Error("failed to build customer service", "error", err)
		os.Exit(1)
	}

	qrGen, err := qr.New(customers, qr.NewInMemoryAssetStore(),
		qr.WithLogger(log),
		qr.WithMetrics(appMetrics),
	)
	if err != nil {
		log.Error("failed to build qr generator", "error", err)
		os.Exit(1)
	}

	orders := orderstore.NewInMemoryOrderStore()
	orderSvc, err := orderservice.New(orders, customers,
		orderservice.WithLogger(log),
		orderservice.WithMetrics(appMetrics),
	)
	if err != nil {
		log.Error("failed to build order service", "error", err)
		os.Exit(1)
	}

	ticketingSvc, err := ticketingservice.New(orderSvc, orderSvc, printer.NewLogPrinter(log),
		ticketingservice.WithLogger(log),
		ticketingservice.WithMetrics(tktMetrics),
		ticketingservice.WithAuditStore(auditStore),
		ticketingservice.WithSuppressionWindow(cfg.ScanSuppressionWindow),
		ticketingservice.WithCustomerNamer(adapters.NewCustomerNameAdapter(customerSvc)),
	)
	if err != nil {
		log.Error("failed to build ticketing service", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.ContentTypeJSON)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	customerhandler.New(customerSvc, qrGen, log).Register(router)
	orderhandler.New(orderSvc, log).Register(router)
	ticketinghandler.New(ticketingSvc, log).Register(router)

	apiSrv := httpserver.New(cfg.Addr, router)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := httpserver.New(cfg.MetricsAddr, metricsMux)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting cleanpos API", "addr", cfg.Addr)
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting metrics listener", "addr", cfg.MetricsAddr)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := apiSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return metricsSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
