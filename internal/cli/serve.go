package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/conceptatlas/atlas/pkg/cache"
	apperrors "github.com/conceptatlas/atlas/pkg/errors"
	"github.com/conceptatlas/atlas/pkg/httputil"
	"github.com/conceptatlas/atlas/pkg/kgraph"
	"github.com/conceptatlas/atlas/pkg/render"
	"github.com/conceptatlas/atlas/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr   string // listen address
	mongo  string // MongoDB URI; empty means in-memory store
	redis  string // Redis URL; empty means file cache
	config string // optional TOML tunables file
}

// serveCommand creates the serve command for running the HTTP host.
// Without --mongo the server keeps snapshots in memory; without --redis
// it caches settled scenes on the local filesystem.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve snapshots and rendered scenes over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return runServe(ctx, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "MongoDB URI for snapshot storage (default: in-memory)")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis URL for the scene cache (default: file cache)")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML tunables file")

	return cmd
}

// runServe wires the storage and cache backends and runs the HTTP server
// until the context is cancelled.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	tunables, err := loadTunables(opts.config)
	if err != nil {
		return err
	}

	snapStore, err := newSnapshotStore(ctx, opts.mongo)
	if err != nil {
		return err
	}
	defer snapStore.Close(context.Background())

	sceneCache, err := newSceneCache(ctx, opts.redis)
	if err != nil {
		return err
	}
	defer sceneCache.Close()

	srv := &server{
		store:    snapStore,
		cache:    sceneCache,
		tunables: tunables,
		logger:   logger,
	}

	httpServer := &http.Server{
		Addr:         opts.addr,
		Handler:      srv.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", opts.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newSnapshotStore selects the snapshot storage backend.
func newSnapshotStore(ctx context.Context, mongoURI string) (store.Store, error) {
	if mongoURI == "" {
		printWarning("No --mongo URI given, snapshots are kept in memory and lost on exit")
		return store.NewMemoryStore(), nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return store.NewMongoStore(connectCtx, store.MongoConfig{URI: mongoURI})
}

// newSceneCache selects the scene cache backend.
func newSceneCache(ctx context.Context, redisURL string) (cache.Cache, error) {
	if redisURL == "" {
		return newLayoutCache(false)
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return cache.NewRedisCache(connectCtx, redisURL)
}

// =============================================================================
// Server
// =============================================================================

// server holds the HTTP host dependencies.
type server struct {
	store    store.Store
	cache    cache.Cache
	tunables Tunables
	logger   *log.Logger
}

// routes builds the chi router for the API.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/snapshots", func(r chi.Router) {
		r.Post("/", s.handleUpload)
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Get("/scene", s.handleScene)
			r.Get("/render", s.handleRender)
		})
	})

	return r
}

// requestLogger logs each request with method, path, and duration.
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload accepts a snapshot JSON document and stores it.
// The optional ?name= parameter labels the record.
func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	var snap kgraph.Snapshot
	if err := httputil.DecodeJSON(w, r, &snap); err != nil {
		httputil.RespondError(w, err)
		return
	}
	if len(snap.Nodes) == 0 {
		httputil.RespondError(w, apperrors.New(apperrors.ErrCodeInvalidSnapshot, "snapshot has no nodes"))
		return
	}
	snap = snap.Normalize()

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "snapshot"
	}

	rec := store.NewRecord(name, &snap)
	if err := s.store.Put(r.Context(), rec); err != nil {
		httputil.RespondError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "store snapshot"))
		return
	}

	s.logger.Info("stored snapshot", "id", rec.ID, "nodes", rec.NodeCount, "edges", rec.EdgeCount)
	httputil.RespondJSON(w, http.StatusCreated, rec)
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.List(r.Context())
	if err != nil {
		httputil.RespondError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "list snapshots"))
		return
	}
	httputil.RespondJSON(w, http.StatusOK, infos)
}

func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.lookup(r)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, rec)
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		httputil.RespondError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "delete snapshot"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleScene returns the settled scene for a stored snapshot as JSON.
// Query parameters: view (nodes|topics, default topics), lod (all|important|key|hub).
func (s *server) handleScene(w http.ResponseWriter, r *http.Request) {
	scene, _, err := s.buildScene(r)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, scene)
}

// handleRender returns the settled scene encoded as svg, png, or dot.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "svg"
	}
	if !validFormats[format] || format == "json" {
		httputil.RespondError(w, apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid format: %s", format))
		return
	}

	scene, _, err := s.buildScene(r)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}

	data, err := encodeScene(scene, format, defaultPNGScale)
	if err != nil {
		httputil.RespondError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode %s", format))
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// buildScene resolves the snapshot and settles the requested view.
func (s *server) buildScene(r *http.Request) (*render.Scene, string, error) {
	rec, err := s.lookup(r)
	if err != nil {
		return nil, "", err
	}

	view := r.URL.Query().Get("view")
	if view == "" {
		view = kgraph.ViewTopics
	}
	if view != kgraph.ViewNodes && view != kgraph.ViewTopics {
		return nil, "", apperrors.New(apperrors.ErrCodeInvalidView, "invalid view: %s", view)
	}

	tunables := s.tunables
	if level := r.URL.Query().Get("lod"); level != "" {
		tunables.LOD.Level = level
	}

	eng := &engine{
		snap:     rec.Snapshot,
		tunables: tunables,
		cache:    s.cache,
	}

	built, err := eng.scene(withLogger(r.Context(), s.logger), view)
	if err != nil {
		return nil, view, apperrors.Wrap(apperrors.ErrCodeInternal, err, "build %s scene", view)
	}
	return built, view, nil
}

// lookup resolves the snapshot record from the request path.
func (s *server) lookup(r *http.Request) (*store.Record, error) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.New(apperrors.ErrCodeSnapshotNotFound, "snapshot %s not found", id)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "load snapshot %s", id)
	}
	return rec, nil
}

// contentTypeFor maps render formats to MIME types.
func contentTypeFor(format string) string {
	switch format {
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	case "dot":
		return "text/vnd.graphviz"
	default:
		return "application/octet-stream"
	}
}
