package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"example.com/socialnet/internal/auth"
	appkafka "example.com/socialnet/internal/broker"
	"example.com/socialnet/internal/logger"
	"example.com/socialnet/internal/middleware"
	"example.com/socialnet/internal/store"
	"github.com/gorilla/mux"
)

type Server struct {
	store       store.StoreInterface
	kafkaWriter appkafka.KafkaWriter
	auth        *auth.Authenticator
}

var logg = logger.New()

// routes builds the router shared by Run and the tests.
func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	secret := s.auth.Secret()
	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.JWTAuth(secret, h)
	}

	// Public auth endpoints (no JWT required)
	r.Handle("/auth/register", http.HandlerFunc(s.registerHandler)).Methods(http.MethodPost)
	r.Handle("/auth/login", http.HandlerFunc(s.loginHandler)).Methods(http.MethodPost)

	// Post endpoints
	r.Handle("/posts", protected(s.createPostHandler)).Methods(http.MethodPost)
	r.Handle("/posts", protected(s.getFeedHandler)).Methods(http.MethodGet)
	r.Handle("/posts/user/{userId}", protected(s.getUserPostsHandler)).Methods(http.MethodGet)
	r.Handle("/posts/{id}/like", protected(s.likePostHandler)).Methods(http.MethodPatch)

	// User endpoints
	r.Handle("/users/{id}", protected(s.getUserHandler)).Methods(http.MethodGet)
	r.Handle("/users/{id}/friends", protected(s.getUserFriendsHandler)).Methods(http.MethodGet)
	r.Handle("/users/{id}/{friendId}", protected(s.addRemoveFriendHandler)).Methods(http.MethodPatch)

	return r
}

// Run starts the HTTPS server with JWT-protected routes and graceful shutdown.
func Run(ctx context.Context, st store.StoreInterface, writer appkafka.KafkaWriter, authn *auth.Authenticator, addr string) {
	s := &Server{
		store:       st,
		kafkaWriter: writer,
		auth:        authn,
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second, // prevent slowloris attacks
		WriteTimeout: 10 * time.Second,
	}

	// --- Start server in a goroutine ---
	go func() {
		logg.Info("server", "Starting HTTPS server on "+addr)
		// TLS: cert.pem and key.pem should be valid certificates in specified paths
		if err := srv.ListenAndServeTLS("/certs/cert.pem", "/certs/key.pem"); err != nil && err != http.ErrServerClosed {
			logg.Error("server", "Server stopped unexpectedly", err)
		}
	}()

	// --- Graceful shutdown ---
	<-ctx.Done()
	logg.Info("server", "Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("server", "Error during server shutdown", err)
	} else {
		logg.Info("server", "Server stopped gracefully")
	}
}

// --- Response helpers ---

// writeJSON writes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes the normalized failure body {"message": ...}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
