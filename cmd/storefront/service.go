package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"storefront/pkg/storefront/transport"
)

const shutdownTimeout = 10 * time.Second

func serviceCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "serve the storefront HTTP API",
		Action: executeService,
	}
}

func executeService(ctx *cli.Context) error {
	c, err := parseEnv()
	if err != nil {
		return err
	}
	setupLogging(c)

	deps, err := newDependencies(ctx.Context, c)
	if err != nil {
		return err
	}
	defer deps.Close()

	httpServer := &http.Server{
		Addr:              c.ServeHTTPAddress,
		Handler:           transport.Router(deps.storefront),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	grpcListener, err := net.Listen("tcp", c.ServeGRPCAddress)
	if err != nil {
		return errors.Wrapf(err, "listen %s", c.ServeGRPCAddress)
	}
	healthServer := health.NewServer()
	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(appID, healthpb.HealthCheckResponse_SERVING)

	g, gctx := errgroup.WithContext(ctx.Context)
	g.Go(func() error {
		log.WithField("address", c.ServeHTTPAddress).Info("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "http server")
		}
		return nil
	})
	g.Go(func() error {
		log.WithField("address", c.ServeGRPCAddress).Info("Starting gRPC health server")
		return errors.Wrap(grpcServer.Serve(grpcListener), "grpc server")
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("http shutdown error")
		}
		stopGRPC(shutdownCtx, grpcServer)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("bye")
	return nil
}

func stopGRPC(ctx context.Context, s *grpc.Server) {
	stopped := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(stopped)
	}()

	select {
	case <-ctx.Done():
		log.Warn("graceful stop timeout, forcing stop")
		s.Stop()
	case <-stopped:
	}
}
