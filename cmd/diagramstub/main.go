package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"umlwizard/internal/logging"
)

func main() {
	addr := flag.String("addr", ":8090", "listen address")
	fail := flag.Bool("fail", false, "answer every generate request with 502")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log, err := logging.New(logging.Options{Level: *level, Component: "diagramstub"})
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           newStub(*fail).routes(log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", *addr).WithField("fail", *fail).Info("diagram stub listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("listen")
	}
}
