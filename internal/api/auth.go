package api

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"

	"oceanview/internal/config"
	"oceanview/internal/models"
	"oceanview/internal/service"

	"golang.org/x/time/rate"
)

// HTTPAuth gates requests with static API keys and a per-key rate limit.
// Staff sessions (bearer tokens from /users/login) ride on top: handlers
// that change state resolve the acting user through session().
type HTTPAuth struct {
	cfg      config.APIConfig
	users    *service.UserService
	clients  map[string]config.APIClientKey
	limiters sync.Map // map[string]*rate.Limiter
}

func NewHTTPAuth(cfg config.APIConfig, users *service.UserService) *HTTPAuth {
	m := make(map[string]config.APIClientKey, len(cfg.Auth.APIKeys))
	for _, k := range cfg.Auth.APIKeys {
		m[k.Key] = k
	}
	return &HTTPAuth{cfg: cfg, users: users, clients: m}
}

func (a *HTTPAuth) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.cfg.Auth.Enabled && !isPublicPath(r.URL.Path) {
			if err := a.checkAuth(r); err != nil {
				statusCode := http.StatusUnauthorized
				if err == errPermissionDenied {
					statusCode = http.StatusForbidden
				}
				writeError(w, statusCode, err.Error())
				return
			}
		}

		if err := a.checkRateLimit(r); err != nil {
			writeError(w, http.StatusTooManyRequests, err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isPublicPath lists routes reachable without an API key: probes plus the
// login endpoint itself.
func isPublicPath(path string) bool {
	switch path {
	case "/healthz", "/readyz", "/api/v1/users/login":
		return true
	}
	return false
}

var errPermissionDenied = errors.New("permission denied")

func (a *HTTPAuth) checkAuth(r *http.Request) error {
	header := strings.TrimSpace(strings.ToLower(a.cfg.Auth.HeaderAPIKey))
	if header == "" {
		header = "x-api-key"
	}

	apiKey := strings.TrimSpace(r.Header.Get(header))
	if apiKey == "" {
		return errors.New("missing api key")
	}

	client, ok := a.clients[apiKey]
	if !ok {
		return errors.New("invalid api key")
	}

	return a.checkPermissions(client, r)
}

func (a *HTTPAuth) checkPermissions(client config.APIClientKey, r *http.Request) error {
	required := requiredPermission(r)
	if required == "" || len(client.Permissions) == 0 {
		return nil
	}
	for _, p := range client.Permissions {
		if strings.TrimSpace(p) == required {
			return nil
		}
	}
	return errPermissionDenied
}

// requiredPermission maps a request onto the permission an API key must
// carry. Keys with an empty permission list pass everything.
func requiredPermission(r *http.Request) string {
	path := r.URL.Path
	switch {
	case strings.HasPrefix(path, "/api/v1/reports"):
		return "read:reports"
	case strings.HasPrefix(path, "/api/v1/rooms"):
		if r.Method == http.MethodGet {
			return "read:rooms"
		}
		return "write:rooms"
	case strings.HasPrefix(path, "/api/v1/bills"):
		return "read:bills"
	case strings.HasPrefix(path, "/api/v1/reservations"):
		if r.Method == http.MethodGet {
			return "read:reservations"
		}
		return "write:reservations"
	case strings.HasPrefix(path, "/api/v1/users"):
		return "write:users"
	}
	return ""
}

func (a *HTTPAuth) checkRateLimit(r *http.Request) error {
	if a.cfg.RateLimit.RPS <= 0 {
		return nil
	}

	lim := a.getLimiter(a.clientKey(r))
	if !lim.Allow() {
		return errors.New("rate limit exceeded")
	}
	return nil
}

func (a *HTTPAuth) clientKey(r *http.Request) string {
	header := strings.TrimSpace(strings.ToLower(a.cfg.Auth.HeaderAPIKey))
	if header == "" {
		header = "x-api-key"
	}
	if apiKey := strings.TrimSpace(r.Header.Get(header)); apiKey != "" {
		return apiKey
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return "unknown"
}

func (a *HTTPAuth) getLimiter(key string) *rate.Limiter {
	if v, ok := a.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	burst := a.cfg.RateLimit.Burst
	if burst <= 0 {
		burst = 5
	}

	lim := rate.NewLimiter(rate.Limit(a.cfg.RateLimit.RPS), burst)
	actual, loaded := a.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}

// session resolves the staff session from the Authorization bearer token.
// Returns nil when the header is absent or the token is unknown or expired.
func (a *HTTPAuth) session(r *http.Request) *models.Session {
	if a.users == nil {
		return nil
	}
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	token, ok := strings.CutPrefix(raw, "Bearer ")
	if !ok {
		return nil
	}
	sess, err := a.users.SessionByToken(r.Context(), strings.TrimSpace(token))
	if err != nil || sess == nil {
		return nil
	}
	return sess
}
