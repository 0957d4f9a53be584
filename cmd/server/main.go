package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dkyazzentwatwa/sc-ios/internal/config"
	"github.com/dkyazzentwatwa/sc-ios/internal/handler"
	"github.com/dkyazzentwatwa/sc-ios/internal/logging"
	"github.com/dkyazzentwatwa/sc-ios/web"
)

const (
	appName    = "RTS Render Preview"
	appVersion = "v1.0.0"
)

func main() {
	hostFlag := flag.String("host", "", "preview server host")
	portFlag := flag.String("port", "", "preview server port")
	logLevelFlag := flag.String("log-level", "", "log level (debug, info, warn, error)")
	dataDirFlag := flag.String("data", "", "directory with extracted tileset tables (vr4/vx4/wpe)")
	helpFlag := flag.Bool("help", false, "show help")
	versionFlag := flag.Bool("version", false, "show version")

	flag.Parse()

	if *helpFlag {
		showHelp()
		return
	}

	if *versionFlag {
		fmt.Printf("%s %s\n", appName, appVersion)
		return
	}

	opts := config.LoadOptions{
		Host:     strings.TrimSpace(*hostFlag),
		Port:     strings.TrimSpace(*portFlag),
		LogLevel: strings.TrimSpace(*logLevelFlag),
		DataDir:  strings.TrimSpace(*dataDirFlag),
	}

	cfg, err := config.LoadWithOverrides(opts)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logging.SetLevelFromString(cfg.Logging.Level)

	server := createServer(cfg)
	logging.Info("starting %s on %s:%s (data=%q)", appName, cfg.Server.Host, cfg.Server.Port, cfg.Renderer.DataDir)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalln(err)
	}
}

func createServer(cfg *config.Config) *http.Server {
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(web.Content)))
	mux.HandleFunc("/stream", handler.Stream(cfg))

	h := securityHeadersMiddleware(mux)
	h = requestLoggingMiddleware(h)

	return &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Debug("%s %s from %s in %v", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	})
}

func showHelp() {
	fmt.Printf("%s %s\n\n", appName, appVersion)
	fmt.Println("Streams the indexed render core's output to a browser canvas.")
	fmt.Println("Without --data it renders a synthetic demo scene.")
	fmt.Println()
	flag.PrintDefaults()
}
