package middleware

import (
	"log"
	"net/http"

	"github.com/go-chi/cors"
)

// CORS builds the cross-origin policy for the API. An empty origin list
// allows everything, which is only meant for local development.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
		log.Println("CORS: no allowed origins configured, allowing all")
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		// Last-Event-ID is sent by EventSource reconnects.
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "Last-Event-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
