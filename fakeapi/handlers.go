package fakeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"cinetix-cli/booking"
	"cinetix-cli/model"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, messageBody{Message: msg})
}

func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	movies := append([]model.Movie(nil), s.movies...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, movies)
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, movie := range s.movies {
		if movie.Id == id {
			writeJSON(w, http.StatusOK, movie)
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Movie not found")
}

func (s *Server) listCinemas(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	cinemas := append([]model.Cinema(nil), s.cinemas...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, cinemas)
}

func (s *Server) getCinema(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cinema := range s.cinemas {
		if cinema.Id == id {
			writeJSON(w, http.StatusOK, cinema)
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Cinema not found")
}

// AddUser registers an account directly, bypassing the HTTP handler.
func (s *Server) AddUser(name, email, password string) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return model.User{}, err
	}
	key := strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[key]; exists {
		return model.User{}, errors.New("Email already registered")
	}
	user := model.User{Id: uuid.NewString(), Name: name, Email: key}
	s.accounts[key] = account{user: user, passwordHash: hash}
	return user, nil
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := booking.Validate(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := s.AddUser(req.Name, req.Email, req.Password); err != nil {
		writeMessage(w, http.StatusConflict, err.Error())
		return
	}
	writeMessage(w, http.StatusCreated, "Registration successful!")
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[strings.ToLower(strings.TrimSpace(req.Email))]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := s.issueToken(acc.user)
	if err != nil {
		s.log.Error("sign token", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Login failed")
		return
	}
	writeJSON(w, http.StatusOK, model.AuthResponse{Token: token, User: &acc.user, Message: "Login successful"})
}

func (s *Server) issueToken(user model.User) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			writeMessage(w, http.StatusUnauthorized, "Missing authorization token")
			return
		}

		var claims jwt.RegisteredClaims
		_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := booking.Validate(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if userID, _ := r.Context().Value(userIDKey).(string); userID != req.UserId {
		writeMessage(w, http.StatusForbidden, "Booking user does not match token")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cinema, ok := s.findCinema(req.CinemaId)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Cinema not found")
		return
	}
	want := cinema.Price*int64(len(req.Seats)) + req.ConvenienceFee*int64(len(req.Seats))
	if req.TotalPrice != want {
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf("Total price mismatch: expected %d", want))
		return
	}
	for _, seat := range req.Seats {
		if s.taken[seatKey(req, seat)] {
			writeMessage(w, http.StatusConflict, fmt.Sprintf("Seat %s is already booked", seat))
			return
		}
	}
	for _, seat := range req.Seats {
		s.taken[seatKey(req, seat)] = true
	}
	s.bookings = append(s.bookings, req)

	writeJSON(w, http.StatusCreated, model.BookingConfirmation{
		Id:          uuid.NewString(),
		OrderNumber: req.OrderNumber,
		Status:      booking.StatusBooked,
		Message:     "Booking successful!",
	})
}

func (s *Server) findCinema(id string) (model.Cinema, bool) {
	for _, cinema := range s.cinemas {
		if cinema.Id == id {
			return cinema, true
		}
	}
	return model.Cinema{}, false
}

func seatKey(req model.BookingRequest, seat string) string {
	return strings.Join([]string{req.MovieId, req.CinemaId, req.Date, req.Time, strings.ToUpper(seat)}, "|")
}

// TokenFor issues a valid token for a user without going through login.
func (s *Server) TokenFor(user model.User) (string, error) {
	return s.issueToken(user)
}

// ExpiredTokenFor issues a token that expired an hour ago.
func (s *Server) ExpiredTokenFor(user model.User) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Id,
		IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
