package middleware

import (
	"slices"

	"github.com/rs/cors"

	"github.com/cours-de-latin/scansion/internal/config"
)

// CORS returns middleware handling Cross-Origin Resource Sharing and
// preflight requests as configured.
func CORS(cfg config.CORSConfig) Middleware {
	origins := config.CSV(cfg.AllowedOrigins)
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   config.CSV(cfg.AllowedMethods),
		AllowedHeaders:   config.CSV(cfg.AllowedHeaders),
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: cfg.AllowCredentials && !slices.Contains(origins, "*"),
		MaxAge:           cfg.MaxAge,
	})
	return c.Handler
}
