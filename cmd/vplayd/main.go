package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vplay/vplay/internal/api"
	"github.com/vplay/vplay/internal/config"
	"github.com/vplay/vplay/internal/engine"
	"github.com/vplay/vplay/internal/history"
	"github.com/vplay/vplay/internal/orchestrator"
	"github.com/vplay/vplay/internal/playlist"
	"github.com/vplay/vplay/internal/repository"
	"github.com/vplay/vplay/internal/session"
	"github.com/vplay/vplay/internal/settings"
	"github.com/vplay/vplay/internal/shortcut"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	db, err := repository.OpenDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	repo := repository.NewRepo(db)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sets := settings.NewService(repo)
	sets.Load(ctx)
	hist := history.NewService(repo)
	hist.Load(ctx)
	playlists := playlist.NewService(repo)
	playlists.Load(ctx)

	dispatcher := shortcut.NewDispatcher(shortcut.DefaultBindings(), cfg.ShortcutsEnabled)
	shortcuts := shortcut.NewService(repo, dispatcher)
	shortcuts.Load(ctx)

	eng := engine.NewSim(cfg.SimItemSeconds)
	machine := session.NewMachine(eng, cfg.SeekStepSeconds, cfg.VolumeStep)
	machine.SetVolume(sets.Get().DefaultVolume)
	machine.SetRate(sets.Get().DefaultRate)

	orch := orchestrator.New(machine, eng, playlists, dispatcher, sets, hist)
	go orch.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.NewServer(orch, playlists, shortcuts, sets, hist).Router(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("shutdown did not finish cleanly", "err", err)
		}
	}()

	slog.Info("vplayd listening", "addr", cfg.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	orch.Stop(context.Background())
}
