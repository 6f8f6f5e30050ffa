package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"github.com/dmoren/tasklist/internal/config"
	"github.com/dmoren/tasklist/internal/store"
	"github.com/dmoren/tasklist/internal/web"
)

func main() {
	configPath := flag.String("config", "tasklist.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("load config", "err", err)
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	s, err := store.Open(cfg.DB)
	if err != nil {
		log.Fatal("open store", "err", err)
	}
	defer s.Close()

	log.Info("tasklist running", "addr", cfg.Addr, "driver", cfg.DB.Driver)
	if err := http.ListenAndServe(cfg.Addr, web.NewRouter(s, cfg)); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
