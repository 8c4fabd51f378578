package main

import (
	"context"
	"embed"
	"flag"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/Nubit3/trex-art/canvas"
	"github.com/Nubit3/trex-art/core"
	"github.com/Nubit3/trex-art/handlers/api/gallery"
	"github.com/Nubit3/trex-art/handlers/api/games"
	"github.com/Nubit3/trex-art/handlers/api/rexy"
	"github.com/Nubit3/trex-art/handlers/api/templates"
	sitemiddleware "github.com/Nubit3/trex-art/middleware"
	"github.com/Nubit3/trex-art/stores"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

//go:embed all:frontend
var assets embed.FS

const backendHostPlaceholder = "__REXTOON_BACKEND_HOST__"

// handleUI serves files from the public directory when present and falls back
// to the embedded frontend. Unknown extensionless paths get index.html.
func handleUI(publicDir string) http.HandlerFunc {
	sub, err := fs.Sub(assets, "frontend")
	if err != nil {
		panic(err)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/" || path == "" {
			path = "/index.html"
		}

		if publicDir != "" {
			local := filepath.Join(publicDir, filepath.FromSlash(filepath.Clean("/"+path)))
			if info, err := os.Stat(local); err == nil && !info.IsDir() {
				http.ServeFile(w, r, local)
				return
			}
		}

		f, err := sub.Open(strings.TrimPrefix(path, "/"))
		if err != nil {
			if os.IsNotExist(err) && !strings.Contains(path, ".") {
				path = "/index.html"
				f, err = sub.Open("index.html")
			} else {
				http.NotFound(w, r)
				return
			}
		}
		if err != nil {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		defer f.Close()

		fileContent, err := io.ReadAll(f)
		if err != nil {
			http.Error(w, "Error reading file", http.StatusInternalServerError)
			return
		}

		// Lets the page reach the API when served behind a reverse proxy.
		backendHost := os.Getenv("REXTOON_BACKEND_HOST")
		if backendHost == "" {
			backendHost = r.Host
		}
		if strings.HasSuffix(path, ".html") || strings.HasSuffix(path, ".js") {
			fileContent = []byte(strings.ReplaceAll(string(fileContent), backendHostPlaceholder, backendHost))
		}

		contentType := http.DetectContentType(fileContent)
		switch {
		case strings.HasSuffix(path, ".js"):
			contentType = "application/javascript"
		case strings.HasSuffix(path, ".html"):
			contentType = "text/html"
		case strings.HasSuffix(path, ".css"):
			contentType = "text/css"
		case strings.HasSuffix(path, ".wasm"):
			contentType = "application/wasm"
		case strings.HasSuffix(path, ".png"):
			contentType = "image/png"
		case strings.HasSuffix(path, ".woff2"):
			contentType = "font/woff2"
		}

		w.Header().Set("Content-Type", contentType)
		if _, err := w.Write(fileContent); err != nil {
			logrus.WithError(err).WithField("path", path).Warn("Error serving file")
		}
	}
}

func staticDir(r chi.Router, publicDir, collection string) {
	prefix := "/" + collection + "/"
	fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(filepath.Join(publicDir, collection))))
	r.With(sitemiddleware.CacheControl(24*time.Hour)).Handle(prefix+"*", fileServer)
}

func setupRouter(store core.GalleryStore, content *core.SiteContent, registry *canvas.Templates, publicDir string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Origin"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	}))

	r.Route("/api", func(r chi.Router) {
		r.Use(sitemiddleware.NoStore)
		r.Get("/gallery", gallery.HandleURLs(store, "art"))
		r.Get("/comics", gallery.HandleURLs(store, "comics"))
		r.Get("/collections/{collection}", gallery.HandleCollection(store))
		r.Get("/templates", templates.HandleList(registry))
		r.Route("/games", func(r chi.Router) {
			r.Get("/", games.HandleList(content))
			r.Get("/{id}", games.HandleGet(content))
		})
		r.Route("/rexy/faq", func(r chi.Router) {
			r.Get("/", rexy.HandleFAQ(content))
			r.Get("/{index}", rexy.HandleAnswer(content))
		})
	})

	for _, collection := range append(append([]string{}, stores.Collections...), "templates", "games") {
		staticDir(r, publicDir, collection)
	}

	r.NotFound(handleUI(publicDir))
	return r
}

func waitForShutdown(server *http.Server) {
	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	s := <-signalC

	logrus.WithField("signal", s.String()).Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Failed to shut down cleanly")
		os.Exit(1)
	}
	os.Exit(0)
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	listenAddress := flag.String("listen", ":3002", "The address to listen on.")
	logLevel := flag.String("loglevel", "info", "The log level (debug, info, warn, error).")
	contentPath := flag.String("content", "content.yaml", "Optional YAML file with games, FAQ and doodle templates.")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	content, err := core.LoadContent(*contentPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load site content")
	}

	publicDir := stores.PublicDir()
	store := stores.GetStore()

	registry := canvas.NewTemplates(content.Templates...)
	registry.LoadAll(context.Background(), canvas.FileLoader{Dir: publicDir})

	server := &http.Server{
		Addr:    *listenAddress,
		Handler: setupRouter(store, content, registry, publicDir),
	}

	logrus.WithFields(logrus.Fields{"addr": *listenAddress, "publicDir": publicDir}).Info("starting server")
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithField("event", "start server").Fatal(err)
		}
	}()

	logrus.Debug("Server is running in the background")
	waitForShutdown(server)
}
