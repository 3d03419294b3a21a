package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/joseph-ayodele/mpstats/internal/analysis"
	"github.com/joseph-ayodele/mpstats/internal/common"
	"github.com/joseph-ayodele/mpstats/internal/export"
	"github.com/joseph-ayodele/mpstats/internal/extract"
	"github.com/joseph-ayodele/mpstats/internal/ingest"
	"github.com/joseph-ayodele/mpstats/internal/server"
)

func main() {
	// Config
	cfg := common.LoadConfig()
	logger := common.NewLogger(cfg.Log, os.Stdout)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	text, err := extract.New(cfg.Text, logger)
	if err != nil {
		logger.Error("text extractor", "error", err)
		os.Exit(1)
	}
	analyzer := analysis.NewAnalyzer(ingest.NewCollector(text, logger, ingest.WithFileTimeout(cfg.Text.Timeout)), logger)

	// gRPC server
	grpcServer := grpc.NewServer()
	// Health service
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(server.ServiceName, healthpb.HealthCheckResponse_SERVING)
	// Reflection for grpcurl
	reflection.Register(grpcServer)

	// Business service
	svc := server.NewAnalysisServer(analyzer, export.NewService(logger), logger)
	server.RegisterAnalysisServiceServer(grpcServer, svc)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Error("listen", "addr", cfg.Server.GRPCAddr, "error", err)
		os.Exit(1)
	}
	logger.Info("gRPC serving", "addr", lis.Addr().String(), "text_backend", cfg.Text.Backend)

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("grpc serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	hs.Shutdown()
	grpcServer.GracefulStop()
	fmt.Println("stopped.")
}
