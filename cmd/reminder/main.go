// The reminder command scans for undone tasks due today and emails their
// owners. It is meant to be run once a day by an external scheduler (cron);
// the scheduler must not overlap runs, there is no lock. Re-running within
// the same day re-sends, the job keeps no delivery state.
package main

import (
	"flag"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dmoren/tasklist/internal/config"
	"github.com/dmoren/tasklist/internal/mail"
	"github.com/dmoren/tasklist/internal/reminder"
	"github.com/dmoren/tasklist/internal/store"
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

	res, err := reminder.Run(s, mail.New(cfg.Email), time.Now())
	if err != nil {
		log.Fatal("reminder run failed", "err", err)
	}
	log.Info("reminder run finished", "sent", res.Sent, "skipped", res.Skipped, "failed", res.Failed)
}
