package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/seqviz/seqviz/pkg/align"
	"github.com/seqviz/seqviz/pkg/buildinfo"
	"github.com/seqviz/seqviz/pkg/cache"
	seqvizerrors "github.com/seqviz/seqviz/pkg/errors"
	"github.com/seqviz/seqviz/pkg/fonts"
	"github.com/seqviz/seqviz/pkg/glyph"
	"github.com/seqviz/seqviz/pkg/logo"
	"github.com/seqviz/seqviz/pkg/observability"
	"github.com/seqviz/seqviz/pkg/render/pairgraph"
	"github.com/seqviz/seqviz/pkg/render/sink"
	"github.com/seqviz/seqviz/pkg/structure"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	cacheMode string // render cache backend: memory, disk, off
	cacheTTL  time.Duration
}

// serveCommand creates the serve command, a local preview server that
// renders scenes over HTTP and caches results.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      ":8080",
		cacheMode: "memory",
		cacheTTL:  time.Hour,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local preview server",
		Long: `Run a local HTTP server that renders sequence logos, structure
cartoons, and coupling graphs on demand. Results are cached in memory
keyed by the request payload.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.cacheMode, "cache", opts.cacheMode, "render cache backend: memory (default), disk, off")
	cmd.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", opts.cacheTTL, "cached render lifetime")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	store, err := newServeCache(opts.cacheMode)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := &previewServer{
		logger: c.Logger,
		cache:  store,
		keyer:  cache.NewScopedKeyer(cache.NewDefaultKeyer(), "serve"),
		ttl:    opts.cacheTTL,
	}

	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printInfo("preview server listening on %s", opts.addr)
	errCh := make(chan error, 1)
	go func() {
		c.Logger.Infof("Preview server listening on %s", opts.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		c.Logger.Info("Preview server stopped")
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newServeCache builds the render cache for the given mode: an in-process
// memory cache, the shared on-disk cache, or no caching at all.
func newServeCache(mode string) (cache.Cache, error) {
	switch mode {
	case "memory", "":
		return cache.NewMemoryCache(), nil
	case "disk":
		return newCache()
	case "off":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("invalid cache mode: %s (must be 'memory', 'disk', or 'off')", mode)
	}
}

// previewServer renders scenes over HTTP with payload-keyed caching.
type previewServer struct {
	logger *log.Logger
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration

	fontOnce sync.Once
	font     *fonts.Provider
	fontErr  error
}

func (s *previewServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/logo", s.handleLogo)
	r.Post("/v1/structure", s.handleStructure)
	r.Post("/v1/pairs", s.handlePairs)
	return r
}

// observe attaches the server logger to the request context and reports
// request timing through the HTTP hooks.
func (s *previewServer) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(withLogger(r.Context(), s.logger))
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func (s *previewServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// logoRequest is the payload for the logo endpoint.
type logoRequest struct {
	FASTA     string  `json:"fasta"`
	Positions string  `json:"positions,omitempty"`
	Pairs     string  `json:"pairs,omitempty"`
	Keys      string  `json:"keys,omitempty"`
	GapChar   string  `json:"gap_char,omitempty"`
	Format    string  `json:"format,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

func (s *previewServer) handleLogo(w http.ResponseWriter, r *http.Request) {
	var req logoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	format, scale := normalizeRender(req.Format, req.Scale)
	if err := validateFormats([]string{format}); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	key := s.keyer.Key("logo", req.FASTA, req.Positions, req.Pairs, req.Keys, req.GapChar, format, scale)
	if data, ok := s.lookup(r, key); ok {
		writeRendered(w, format, data)
		return
	}

	entries, err := align.ReadFASTA(strings.NewReader(req.FASTA))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	a, err := align.New(entries)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	provider, err := s.fontProvider()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	cfg := logo.Config{Keys: parseKeys(req.Keys)}
	if req.GapChar != "" {
		cfg.GapChar = []rune(req.GapChar)[0]
	}

	lopts := &logoOpts{positions: req.Positions, pairs: req.Pairs, scale: scale}
	shapes, ticks, kind, _, err := buildLogoScene(r.Context(), a, cfg, lopts, provider)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	data, err := renderScene(r.Context(), shapes, ticks, format, kind, scale)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.remember(r, key, data)
	writeRendered(w, format, data)
}

// structureRequest is the payload for the structure endpoint.
type structureRequest struct {
	Labels string  `json:"labels"`
	Helix  string  `json:"helix,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Format string  `json:"format,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

func (s *previewServer) handleStructure(w http.ResponseWriter, r *http.Request) {
	var req structureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	format, scale := normalizeRender(req.Format, req.Scale)
	if err := validateFormats([]string{format}); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	key := s.keyer.Key("structure", req.Labels, req.Helix, req.Width, format, scale)
	if data, ok := s.lookup(r, key); ok {
		writeRendered(w, format, data)
		return
	}

	sopts := &structureOpts{helix: req.Helix, width: req.Width}
	if sopts.helix == "" {
		sopts.helix = "wave"
	}
	if sopts.width == 0 {
		sopts.width = structure.DefaultWidth
	}
	cfg, err := buildStructureConfig(sopts)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	cartoon, err := structure.New(req.Labels, cfg)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	data, err := renderScene(r.Context(), cartoon.Build(), nil, format, "structure", scale)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.remember(r, key, data)
	writeRendered(w, format, data)
}

// pairsRequest is the payload for the pairs endpoint.
type pairsRequest struct {
	Pairs    string `json:"pairs"`
	Detailed bool   `json:"detailed,omitempty"`
	Format   string `json:"format,omitempty"`
}

func (s *previewServer) handlePairs(w http.ResponseWriter, r *http.Request) {
	var req pairsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	format := req.Format
	if format == "" {
		format = defaultFormat
	}

	key := s.keyer.Key("pairs", req.Pairs, req.Detailed, format)
	if data, ok := s.lookup(r, key); ok {
		writeRendered(w, format, data)
		return
	}

	couplings, err := parseCouplings(req.Pairs)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	dot := pairgraph.ToDOT(couplings, pairgraph.Options{Detailed: req.Detailed})

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = pairgraph.RenderSVG(dot)
	case "pdf":
		data, err = pairgraph.RenderPDF(dot)
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format: %s", format))
		return
	}
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.remember(r, key, data)
	writeRendered(w, format, data)
}

// fontProvider loads the glyph outline provider once for the process.
func (s *previewServer) fontProvider() (glyph.OutlineProvider, error) {
	s.fontOnce.Do(func() {
		s.font, s.fontErr = fonts.Default()
	})
	return s.font, s.fontErr
}

// lookup checks the render cache, reporting through the cache hooks.
func (s *previewServer) lookup(r *http.Request, key string) ([]byte, bool) {
	hooks := observability.Cache()
	data, err := cache.Fetch(r.Context(), s.cache, key)
	switch {
	case err == nil:
		hooks.OnCacheHit(r.Context(), key)
		return data, true
	case errors.Is(err, cache.ErrCacheMiss):
		hooks.OnCacheMiss(r.Context(), key)
		return nil, false
	default:
		s.logger.Warnf("Cache get failed: %v", err)
		return nil, false
	}
}

func (s *previewServer) remember(r *http.Request, key string, data []byte) {
	if err := s.cache.Set(r.Context(), key, data, s.ttl); err != nil {
		s.logger.Warnf("Cache set failed: %v", err)
		return
	}
	observability.Cache().OnCacheSet(r.Context(), key, len(data))
}

func (s *previewServer) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warnf("Request failed: %v", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// statusFor maps layout errors to HTTP status codes.
func statusFor(err error) int {
	var e *seqvizerrors.Error
	if errors.As(err, &e) {
		switch e.Code {
		case seqvizerrors.ErrCodeInvalidAlignment,
			seqvizerrors.ErrCodeInvalidPosition,
			seqvizerrors.ErrCodeInvalidLabels,
			seqvizerrors.ErrCodeInvalidScheme,
			seqvizerrors.ErrCodeInvalidColor,
			seqvizerrors.ErrCodeInvalidFormat,
			seqvizerrors.ErrCodeInvalidInput,
			seqvizerrors.ErrCodeUnknownSymbol,
			seqvizerrors.ErrCodeNotFound:
			return http.StatusBadRequest
		case seqvizerrors.ErrCodeUnsupported:
			return http.StatusNotImplemented
		}
	}
	return http.StatusInternalServerError
}

func normalizeRender(format string, scale float64) (string, float64) {
	if format == "" {
		format = defaultFormat
	}
	if scale <= 0 {
		scale = sink.DefaultScale
	}
	return format, scale
}

func writeRendered(w http.ResponseWriter, format string, data []byte) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(data)
}

var contentTypes = map[string]string{
	"svg":  "image/svg+xml",
	"png":  "image/png",
	"pdf":  "application/pdf",
	"json": "application/json",
	"dot":  "text/vnd.graphviz",
}
