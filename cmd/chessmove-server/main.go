package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"chessmove/internal/engine"
	"chessmove/internal/logging"
	"chessmove/internal/server/game"
	httpserver "chessmove/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start() // headless hosts have no browser
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	webDir := flag.String("web", "", "directory with the web client (empty: API only)")
	budget := flag.Duration("budget", engine.DefaultTimeBudget, "time budget per engine move")
	maxDepth := flag.Int("max-depth", engine.DefaultMaxDepth, "deepest iterative-deepening pass")
	noPruning := flag.Bool("no-pruning", false, "plain minimax instead of alpha-beta")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	cacheSize := flag.Int("cache", 4096, "positions remembered by /move (0 disables)")
	browser := flag.Bool("open", false, "open the web client in the default browser")
	flag.Parse()

	log, err := logging.New(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg := engine.DefaultConfig()
	cfg.TimeBudget = *budget
	cfg.MaxDepth = *maxDepth
	cfg.Pruning = !*noPruning
	eng := engine.NewEngine(cfg).WithLogger(log.With().Str("component", "engine").Logger())

	h := httpserver.NewHandler(eng, game.NewManager()).WithCache(engine.NewCache(*cacheSize))
	srv := &http.Server{
		Addr:              *addr,
		Handler:           httpserver.NewServer(h, *webDir, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), cfg.TimeBudget+time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	log.Info().Str("addr", *addr).Str("web", *webDir).Dur("budget", cfg.TimeBudget).
		Int("max_depth", cfg.MaxDepth).Bool("pruning", cfg.Pruning).Msg("listening")

	if *browser && *webDir != "" {
		go func() {
			time.Sleep(100 * time.Millisecond)
			host := *addr
			if strings.HasPrefix(host, ":") {
				host = "127.0.0.1" + host
			}
			openBrowser("http://" + host + "/")
		}()
	}

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("bye")
}
