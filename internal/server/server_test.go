package server_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/JaimeStill/product-catalog/internal/config"
	"github.com/JaimeStill/product-catalog/internal/server"
	"github.com/JaimeStill/product-catalog/pkg/lifecycle"
)

func TestServer_StartAndShutdown(t *testing.T) {
	cfg := &config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            0,
		ReadTimeout:     "5s",
		WriteTimeout:    "5s",
		ShutdownTimeout: "5s",
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})

	lc := lifecycle.New()
	srv := server.New(cfg, handler, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := srv.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	resp, err := http.Get("http://" + srv.Addr() + "/ping")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if string(body) != "pong" {
		t.Errorf("body = %q, want %q", body, "pong")
	}

	select {
	case <-srv.Stopped():
		t.Fatal("Stopped() closed before shutdown")
	default:
	}

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}

	select {
	case <-srv.Stopped():
	default:
		t.Error("Stopped() not closed after shutdown")
	}

	if _, err := http.Get("http://" + srv.Addr() + "/ping"); err == nil {
		t.Error("server still accepting requests after shutdown")
	}
}

func TestServer_StartFailureClosesStopped(t *testing.T) {
	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: -1, ShutdownTimeout: "1s"}
	srv := server.New(cfg, http.NotFoundHandler(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := srv.Start(lifecycle.New()); err == nil {
		t.Fatal("Start() succeeded on an invalid address")
	}

	select {
	case <-srv.Stopped():
	case <-time.After(time.Second):
		t.Error("Stopped() not closed after failed Start")
	}
}
