package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/regenesis/regenesis/backend-go/internal/asset"
	"github.com/regenesis/regenesis/backend-go/internal/auth"
	"github.com/regenesis/regenesis/backend-go/internal/config"
	"github.com/regenesis/regenesis/backend-go/internal/db"
	"github.com/regenesis/regenesis/backend-go/internal/document"
	"github.com/regenesis/regenesis/backend-go/internal/engine"
	"github.com/regenesis/regenesis/backend-go/internal/export"
	mw "github.com/regenesis/regenesis/backend-go/internal/middleware"
	"github.com/regenesis/regenesis/backend-go/internal/plant"
	"github.com/regenesis/regenesis/backend-go/internal/prefs"
	"github.com/regenesis/regenesis/backend-go/internal/project"
	"github.com/regenesis/regenesis/backend-go/internal/session"
	"github.com/regenesis/regenesis/backend-go/internal/typeid"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := db.NewStore(pool)

	authService := auth.NewService(store, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	projectService := project.NewService(store)
	projectHandler := project.NewHandler(projectService)

	prefsService := prefs.NewService(store)
	prefsHandler := prefs.NewHandler(prefsService)

	plantService := plant.NewService(store)
	plantHandler := plant.NewHandler(plantService)
	if err := plantService.Seed(ctx); err != nil {
		slog.Error("seed plant catalog", "error", err)
		os.Exit(1)
	}

	// Document loader for the session hub
	docLoader := func(projectID string) (*document.PlotDocument, error) {
		snap, err := store.GetLatestSnapshot(context.Background(), projectID)
		if err != nil {
			return nil, err
		}
		var doc document.PlotDocument
		if err := json.Unmarshal(snap.Document, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	}

	// Document saver for the session hub
	docSaver := func(projectID string, doc *document.PlotDocument) error {
		docJSON, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}

		currentSnap, err := store.GetLatestSnapshot(context.Background(), projectID)
		nextVersion := int32(1)
		if err == nil {
			nextVersion = currentSnap.Version + 1
		}

		_, err = store.CreateSnapshot(context.Background(), db.Snapshot{
			ID:        typeid.NewSnapshotID(),
			ProjectID: projectID,
			Version:   nextVersion,
			Document:  docJSON,
		})
		if err != nil {
			return fmt.Errorf("create snapshot: %w", err)
		}
		return nil
	}

	// Geometry config for the session hub: each room runs with the project
	// owner's preferences (zoom bounds, drag threshold), defaults on any
	// lookup failure.
	cfgLoader := func(projectID string) engine.Config {
		ctx := context.Background()
		proj, err := store.GetProject(ctx, projectID)
		if err != nil {
			return engine.DefaultConfig()
		}
		p, err := prefsService.Get(ctx, proj.OwnerID)
		if err != nil {
			return engine.DefaultConfig()
		}
		return p.GeometryConfig()
	}

	hub := session.NewHub(docLoader, docSaver, cfgLoader, time.Duration(cfg.SnapshotSeconds)*time.Second)
	go hub.Run()

	assetHandler := asset.NewHandler(cfg.AssetDir)
	exportHandler := export.NewHandler()

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.AllowedOrigins))

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Asset endpoints (public — plant photos)
	r.HandleFunc("/assets/upload", assetHandler.Upload).Methods("POST", "OPTIONS")
	r.PathPrefix("/assets/").Handler(assetHandler.Serve()).Methods("GET")

	// Export endpoint (public — renders a posted document)
	r.HandleFunc("/export/svg", exportHandler.ExportSVG).Methods("POST", "OPTIONS")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.Middleware)

	api.HandleFunc("/projects", projectHandler.List).Methods("GET")
	api.HandleFunc("/projects", projectHandler.Create).Methods("POST")
	api.HandleFunc("/projects/{projectId}", projectHandler.Get).Methods("GET")
	api.HandleFunc("/projects/{projectId}", projectHandler.Delete).Methods("DELETE")
	api.HandleFunc("/projects/{projectId}/invite", projectHandler.Invite).Methods("POST")
	api.HandleFunc("/projects/{projectId}/members", projectHandler.ListMembers).Methods("GET")
	api.HandleFunc("/projects/{projectId}/members/{userId}", projectHandler.RemoveMember).Methods("DELETE")
	api.HandleFunc("/projects/{projectId}/snapshots/latest", projectHandler.GetLatestSnapshot).Methods("GET")

	api.HandleFunc("/preferences", prefsHandler.Get).Methods("GET")
	api.HandleFunc("/preferences", prefsHandler.Update).Methods("PUT")

	api.HandleFunc("/plants", plantHandler.List).Methods("GET")
	api.HandleFunc("/plants/distribution", plantHandler.ColorDistribution).Methods("POST")

	// WebSocket endpoint
	r.HandleFunc("/ws/project/{projectId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, store)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop hub first to save all dirty documents
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *session.Hub, authSvc *auth.Service, store *db.Store) {
	projectID := mux.Vars(r)["projectId"]

	// Auth via query param since browsers cannot set headers on websockets
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	userID, err := authSvc.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	if _, err := store.GetProjectMember(r.Context(), projectID, userID); err != nil {
		http.Error(w, "not a project member", http.StatusForbidden)
		return
	}

	user, err := authSvc.GetUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "user not found", http.StatusInternalServerError)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"localhost:5173", "localhost:3000"},
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := session.NewClient(hub, conn, userID, user.DisplayName, projectID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
