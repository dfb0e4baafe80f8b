package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"tripplanner/internal/inference/inferencetest"
)

func main() {
	addr := flag.String("addr", ":8090", "listen address")
	reply := flag.String("reply", inferencetest.DefaultReply, "text returned for every prompt")
	fail := flag.Int("fail", 0, "answer every call with this HTTP status")
	delay := flag.Duration("delay", 0, "stall every answer by this long")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	fake := inferencetest.NewServer()
	fake.Reply(*reply)
	if *fail != 0 {
		fake.FailWith(*fail, http.StatusText(*fail))
	}
	fake.Delay(*delay)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		fake.ServeHTTP(w, r)
		logger.Info("inference request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})

	logger.Info("mock inference listening", "addr", *addr)
	srv := &http.Server{Addr: *addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
