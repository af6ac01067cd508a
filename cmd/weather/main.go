package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-lookup/internal/ui"
	"github.com/bobby-s-dev/weather-lookup/pkg/client"
)

func main() {
	_ = godotenv.Load()

	var (
		gatewayURL = flag.String("gateway", "", "Gateway weather endpoint (overrides WEATHER_GATEWAY_URL env)")
		city       = flag.String("city", ui.DefaultCity, "City loaded on start")
		timeout    = flag.Duration("timeout", 10*time.Second, "Gateway request timeout")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	logger := newLogger(*debug)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := client.NewGatewayClient(resolveGatewayURL(*gatewayURL), *timeout, logger)
	controller := ui.NewController(fetcher, ui.NewTerminalView(os.Stdout), logger,
		ui.WithDefaultCity(*city))
	defer controller.Close()

	controller.Initialize(ctx)

	fmt.Println("Try: London, New York, Tokyo, Paris, Mumbai (Ctrl-D to quit)")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Print("city> ")
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case line, ok := <-lines:
			if !ok {
				fmt.Println()
				return
			}
			controller.Search(ctx, line)
		}
	}
}

// resolveGatewayURL follows the priority chain flag > environment > default.
func resolveGatewayURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("WEATHER_GATEWAY_URL"); env != "" {
		return env
	}
	return client.DefaultGatewayURL
}

func newLogger(debug bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return logger
}
