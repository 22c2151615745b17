package simulator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/imamik/cbdctl/internal/platform/cbd"
)

// RouterConfig wires the HTTP layer.
type RouterConfig struct {
	Service *Service
	Secret  []byte
	// Users maps usernames to API keys accepted by the token endpoint.
	Users    map[string]string
	TokenTTL time.Duration
	Logger   *zap.Logger
}

type handler struct {
	svc      *Service
	secret   []byte
	users    map[string]string
	tokenTTL time.Duration
	log      *zap.Logger
}

// NewRouter builds the control-plane API router.
func NewRouter(cfg RouterConfig) chi.Router {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = time.Hour
	}

	h := &handler{
		svc:      cfg.Service,
		secret:   cfg.Secret,
		users:    cfg.Users,
		tokenTTL: cfg.TokenTTL,
		log:      cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(httpMetrics)

	r.Get("/ping", h.ping)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/v2/auth/token", h.issueToken)

	r.Route("/v2/{tenant}", func(api chi.Router) {
		api.Use(h.requireToken)

		api.Get("/flavors", h.listFlavors)
		api.Get("/stacks", h.listStacks)
		api.Get("/stacks/{stackID}", h.getStack)
		api.Post("/ssh_keys", h.createSSHKey)

		api.Group(func(g chi.Router) {
			g.Use(h.partitionGuard)
			g.Post("/clusters", h.createCluster)
			g.Get("/clusters", h.listClusters)
			g.Get("/clusters/{clusterID}", h.getCluster)
			g.Delete("/clusters/{clusterID}", h.deleteCluster)
		})
	})

	// Chaos knobs, unauthenticated on purpose.
	r.Route("/sim", func(sim chi.Router) {
		sim.Post("/partition", h.partition)
		sim.Post("/heal", h.heal)
		sim.Post("/fail", h.fail)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no such route")
	})

	return r
}

// requireToken verifies the X-Auth-Token header.
func (h *handler) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Auth-Token")
		if token == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if _, err := VerifyToken(h.secret, token); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// partitionGuard makes cluster routes answer 503 while partitioned.
func (h *handler) partitionGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.svc.Partitioned() {
			writeError(w, http.StatusServiceUnavailable, "region partitioned")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"msg": "pong from cbdsim"})
}

func (h *handler) issueToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		APIKey   string `json:"api_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Username == "" || req.APIKey == "" {
		writeError(w, http.StatusBadRequest, "username and api_key required")
		return
	}

	key, ok := h.users[req.Username]
	if !ok || key != req.APIKey {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := IssueToken(h.secret, req.Username, h.tokenTTL)
	if err != nil {
		h.log.Error("token issue failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token":   token,
		"expires": time.Now().Add(h.tokenTTL).UTC().Format(time.RFC3339),
	})
}

func (h *handler) listFlavors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"flavors": h.svc.ListFlavors(r.Context()),
	})
}

func (h *handler) listStacks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"stacks": h.svc.ListStacks(r.Context()),
	})
}

func (h *handler) getStack(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "stackID")
	stack, err := h.svc.GetStack(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no such stack %q", id))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stack": stack})
}

func (h *handler) createSSHKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		PublicKey string `json:"public_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	key, err := h.svc.CreateSSHKey(r.Context(), req.Name, req.PublicKey)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, ErrKeyExists):
			writeError(w, http.StatusConflict, fmt.Sprintf("ssh key %q already exists", req.Name))
		default:
			h.log.Error("ssh key create failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to register ssh key")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ssh_key": key})
}

func (h *handler) createCluster(w http.ResponseWriter, r *http.Request) {
	var opts cbd.CreateClusterOpts
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	cluster, err := h.svc.CreateCluster(r.Context(), opts)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		h.log.Error("cluster create failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create cluster")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cluster": cluster})
}

func (h *handler) listClusters(w http.ResponseWriter, r *http.Request) {
	clusters, err := h.svc.ListClusters(r.Context())
	if err != nil {
		h.log.Error("cluster list failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list clusters")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clusters": clusters})
}

func (h *handler) getCluster(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "clusterID")
	cluster, err := h.svc.GetCluster(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no such cluster %q", id))
			return
		}
		h.log.Error("cluster get failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get cluster")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cluster": cluster})
}

func (h *handler) deleteCluster(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "clusterID")
	if err := h.svc.DeleteCluster(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no such cluster %q", id))
			return
		}
		h.log.Error("cluster delete failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete cluster")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *handler) partition(w http.ResponseWriter, _ *http.Request) {
	h.svc.SetPartitioned(true)
	writeJSON(w, http.StatusOK, map[string]string{"status": "partitioned"})
}

func (h *handler) heal(w http.ResponseWriter, _ *http.Request) {
	h.svc.SetPartitioned(false)
	writeJSON(w, http.StatusOK, map[string]string{"status": "healed"})
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.ID == "" {
		writeError(w, http.StatusBadRequest, "id required")
		return
	}

	if err := h.svc.FailCluster(r.Context(), body.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no such cluster %q", body.ID))
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fail cluster")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "error", "id": body.ID})
}

// requestLogger logs each request through zap.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}

// httpMetrics records request metrics labeled by the matched route.
func httpMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		recordRequestMetric(r.Method, route, strconv.Itoa(ww.Status()), time.Since(start).Seconds())
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"code": status, "message": msg},
	})
}
