// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/dropout-cube/cliparse"
	"github.com/danielhkuo/dropout-cube/dashboard"
	"github.com/danielhkuo/dropout-cube/router"
)

func main() {
	cfg, err := cliparse.ParseDashboardFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	client := dashboard.NewClient(cfg.APIURL, nil)

	server := http.Server{
		Handler: router.NewDashboardRouter(client),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		server.Close()
	}()

	slog.Info("Dashboard listening", "port", cfg.Port, "api", cfg.APIURL)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
