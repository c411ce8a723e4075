// Package fakeapi serves the booking API contract from in-memory fixtures.
// It backs the --demo mode and the client tests.
package fakeapi

import (
	"crypto/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"cinetix-cli/model"
)

const tokenTTL = 24 * time.Hour

type account struct {
	user         model.User
	passwordHash []byte
}

// Server is an in-memory implementation of the booking API.
type Server struct {
	mu       sync.Mutex
	movies   []model.Movie
	cinemas  []model.Cinema
	accounts map[string]account
	bookings []model.BookingRequest
	taken    map[string]bool

	secret []byte
	now    func() time.Time
	log    *zap.Logger
}

type Option func(*Server)

func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

func WithMovies(movies []model.Movie) Option {
	return func(s *Server) {
		s.movies = movies
	}
}

func WithCinemas(cinemas []model.Cinema) Option {
	return func(s *Server) {
		s.cinemas = cinemas
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates a server seeded with the default fixtures.
func New(opts ...Option) *Server {
	secret := make([]byte, 32)
	_, _ = rand.Read(secret)

	s := &Server{
		accounts: make(map[string]account),
		taken:    make(map[string]bool),
		secret:   secret,
		now:      time.Now,
		log:      zap.NewNop(),
	}
	s.movies = FixtureMovies(s.now())
	s.cinemas = FixtureCinemas()
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(zap.String("component", "fakeapi"))
	return s
}

// Handler returns the chi router for the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/movies", s.listMovies)
		r.Get("/movies/{id}", s.getMovie)
		r.Get("/cinema", s.listCinemas)
		r.Get("/cinemas", s.listCinemas)
		r.Get("/cinemas/{id}", s.getCinema)

		r.Post("/auth/login", s.login)
		r.Post("/auth/register", s.register)

		r.With(s.requireToken).Post("/bookings", s.createBooking)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return r
}

// Bookings returns the bookings accepted so far.
func (s *Server) Bookings() []model.BookingRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.BookingRequest(nil), s.bookings...)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", r.Header.Get("X-Request-ID")),
		)
	})
}
