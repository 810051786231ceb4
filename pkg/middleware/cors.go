package middleware

import (
	"net/http"
	"sort"
	"strings"

	"wedding-marketplace/pkg/apperror"
	"wedding-marketplace/pkg/utils"
)

// CORS enforces a per path prefix origin allow-list. The longest matching
// prefix wins; paths under no prefix are not checked. Requests without an
// Origin header are not browser cross-origin calls and pass through.
type CORS struct {
	prefixes []string
	origins  map[string]map[string]bool
}

func NewCORS(cfg utils.CORSConfig) *CORS {
	c := &CORS{origins: make(map[string]map[string]bool)}
	for prefix, origins := range cfg.Origins {
		set := make(map[string]bool, len(origins))
		for _, o := range origins {
			set[strings.TrimRight(o, "/")] = true
		}
		c.origins[prefix] = set
		c.prefixes = append(c.prefixes, prefix)
	}
	sort.Slice(c.prefixes, func(i, j int) bool { return len(c.prefixes[i]) > len(c.prefixes[j]) })
	return c
}

// Allowed reports whether origin may call path.
func (c *CORS) Allowed(path, origin string) bool {
	if origin == "" {
		return true
	}
	for _, prefix := range c.prefixes {
		if strings.HasPrefix(path, prefix) {
			set := c.origins[prefix]
			return set["*"] || set[origin]
		}
	}
	return true
}

func (c *CORS) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !c.Allowed(r.URL.Path, origin) {
			utils.ResponseError(w, http.StatusForbidden, string(apperror.KindForbidden), "Origin not allowed", nil)
			return
		}

		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Add("Vary", "Origin")
		h.Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Set("Access-Control-Max-Age", "3600")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
