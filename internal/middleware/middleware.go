package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/PocketCal/PC-Backend/internal/httputil"
	"github.com/PocketCal/PC-Backend/internal/utils"
	"golang.org/x/time/rate"
)

// TokenVerifier decodes a session token into an identity. Verification sits
// behind this interface so a revocation check can be added in one place.
type TokenVerifier interface {
	Verify(token string) (utils.Identity, error)
}

// bearerToken pulls the credential out of the Authorization header. Both
// "Bearer <token>" and a bare token are accepted.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if tok, ok := strings.CutPrefix(header, "Bearer "); ok {
		return tok
	}
	return header
}

func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearerToken(r)
			if tok == "" {
				httputil.Error(w, http.StatusUnauthorized, "Missing token")
				return
			}

			ident, err := verifier.Verify(tok)
			if err != nil {
				httputil.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), utils.ContextIdentityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	wildcard := false
	for _, o := range allowedOrigins {
		if o == "*" {
			wildcard = true
		}
		allowed[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// Echo the origin back only if it's on our allow-list
			if _, ok := allowed[origin]; ok || (wildcard && origin != "") {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin") // important for caches
				w.Header().Set("Access-Control-Allow-Methods",
					"GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers",
					"Content-Type, Authorization")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter keeps one token bucket per client IP. Used on the auth routes
// to slow down credential stuffing.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(perSecond),
		burst:    burst,
	}
}

// maxClients caps the per-IP bucket map. When the cap is hit the map is
// reset wholesale, which briefly refills every bucket but keeps memory
// bounded without a background sweeper.
const maxClients = 10000

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	lim, ok := rl.limiters[key]
	if !ok {
		if len(rl.limiters) >= maxClients {
			rl.limiters = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(rl.rps, rl.burst)
		rl.limiters[key] = lim
	}
	return lim
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !rl.limiterFor(host).Allow() {
			httputil.Error(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
