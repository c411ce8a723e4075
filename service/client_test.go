package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"cinetix-cli/fakeapi"
	"cinetix-cli/model"
)

func TestGetJSON_Non2xxReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), WithBaseURL(server.URL))

	var out map[string]any
	err := client.getJSON(context.Background(), server.URL+"/fail", &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetJSON_SingleAttemptByDefault(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.Client(), WithBaseURL(server.URL))
	if _, err := client.ListMovies(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestGetJSON_RetriesTransientServerErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := atomic.AddInt32(&attempts, 1)
		if current < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("retry later"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), WithBaseURL(server.URL), WithMaxAttempts(3))
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond

	var out map[string]any
	if err := client.getJSON(context.Background(), server.URL+"/retry", &out); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
	if ok, _ := out["ok"].(bool); !ok {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestGetJSON_DoesNotRetryOnClientErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad request"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), WithBaseURL(server.URL), WithMaxAttempts(3))
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond

	var out map[string]any
	if err := client.getJSON(context.Background(), server.URL+"/bad-request", &out); err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestGetMovie_NotFoundCarriesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/movies/abc" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Fatalf("expected X-Request-ID header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Movie not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), WithBaseURL(server.URL))
	_, err := client.GetMovie(context.Background(), "abc")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if msg := UserMessage(err, "fallback"); msg != "Movie not found" {
		t.Fatalf("expected server message, got %q", msg)
	}
}

func TestGetMovie_RequiresID(t *testing.T) {
	client := NewClient(nil)
	if _, err := client.GetMovie(context.Background(), "  "); err == nil {
		t.Fatal("expected error")
	}
}

func TestListMovies_DecodesMixedShapes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
  {"_id":"m1","title":"One","rating":8.5,"writer":"Solo Writer","genre":["Drama"],"duration":100},
  {"_id":"m2","title":"Two","rating":"PG-13","writer":["A","B"],
   "showtimes":{"dates":["2025-01-02"],"times":{"2025-01-02":["10:00","13:00"]}}}
]`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), WithBaseURL(server.URL))
	movies, err := client.ListMovies(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	if movies[0].Rating.String() != "8.5" || len(movies[0].Writer) != 1 || movies[0].Writer[0] != "Solo Writer" {
		t.Fatalf("unexpected first movie: %+v", movies[0])
	}
	if movies[1].Rating.String() != "PG-13" || len(movies[1].Writer) != 2 {
		t.Fatalf("unexpected second movie: %+v", movies[1])
	}
	if got := movies[1].Showtimes.Times["2025-01-02"]; len(got) != 2 {
		t.Fatalf("unexpected showtimes: %+v", movies[1].Showtimes)
	}
}

func TestCinemaEndpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/cinema":
			_, _ = w.Write([]byte(`[{"_id":"c1","name":"Directory","location":"Jakarta"}]`))
		case "/api/cinemas":
			_, _ = w.Write([]byte(`[{"_id":"c2","name":"Booking","price":50000}]`))
		case "/api/cinemas/c2":
			_, _ = w.Write([]byte(`{"_id":"c2","name":"Booking","price":50000}`))
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.Client(), WithBaseURL(server.URL+"/"))
	dir, err := client.ListCinemaDirectory(context.Background())
	if err != nil || len(dir) != 1 || dir[0].Name != "Directory" {
		t.Fatalf("unexpected directory: %+v, %v", dir, err)
	}
	list, err := client.ListCinemas(context.Background())
	if err != nil || len(list) != 1 || list[0].Price != 50000 {
		t.Fatalf("unexpected cinemas: %+v, %v", list, err)
	}
	one, err := client.GetCinema(context.Background(), "c2")
	if err != nil || one.Id != "c2" {
		t.Fatalf("unexpected cinema: %+v, %v", one, err)
	}
}

func TestLogin_MissingTokenIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Check your inbox"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), WithBaseURL(server.URL))
	_, err := client.Login(context.Background(), model.LoginRequest{Email: "a@b.co", Password: "x"})
	if err == nil || err.Error() != "Check your inbox" {
		t.Fatalf("expected server message as error, got %v", err)
	}
	if msg := UserMessage(err, "Login failed"); msg != "Check your inbox" {
		t.Fatalf("expected server message to survive the fallback, got %q", msg)
	}
}

func TestIsUnauthorized(t *testing.T) {
	cases := map[int]bool{401: true, 403: true, 404: false, 409: false, 500: false}
	for code, want := range cases {
		err := &APIError{StatusCode: code}
		if got := IsUnauthorized(err); got != want {
			t.Fatalf("expected %v for %d, got %v", want, code, got)
		}
	}
	if IsUnauthorized(errors.New("network down")) {
		t.Fatal("expected plain errors not to count as unauthorized")
	}
}

func TestLogin_FallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.Client(), WithBaseURL(server.URL))
	_, err := client.Login(context.Background(), model.LoginRequest{Email: "a@b.co", Password: "x"})
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if msg := UserMessage(err, ""); msg != "Login failed" {
		t.Fatalf("expected fallback message, got %q", msg)
	}
}

func TestRegister_DefaultMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req model.RegisterRequest
		if err := json.Unmarshal(body, &req); err != nil || req.Name != "Ana" {
			t.Fatalf("unexpected body: %s", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.Client(), WithBaseURL(server.URL))
	msg, err := client.Register(context.Background(), model.RegisterRequest{Email: "ana@b.co", Name: "Ana", Password: "secret1"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if msg != "Registration successful!" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestCreateBooking_SendsBearerAndIsNotRetried(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.Client(), WithBaseURL(server.URL), WithMaxAttempts(5))
	client.retryBase = time.Millisecond

	_, err := client.CreateBooking(context.Background(), "tok", model.BookingRequest{OrderNumber: "ORD000001"})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
	if msg := UserMessage(err, ""); msg != "Booking failed" {
		t.Fatalf("expected fallback message, got %q", msg)
	}
}

func TestAgainstFakeAPI(t *testing.T) {
	api := fakeapi.New()
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	ctx := context.Background()
	client := NewClient(server.Client(), WithBaseURL(server.URL))

	if _, err := client.Register(ctx, model.RegisterRequest{Email: "dewi@example.com", Name: "Dewi", Password: "secret123"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	auth, err := client.Login(ctx, model.LoginRequest{Email: "dewi@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	movies, err := client.ListMovies(ctx)
	if err != nil || len(movies) == 0 {
		t.Fatalf("movies: %v", err)
	}
	cinemas, err := client.ListCinemas(ctx)
	if err != nil || len(cinemas) == 0 {
		t.Fatalf("cinemas: %v", err)
	}

	movie, cinema := movies[0], cinemas[0]
	req := model.BookingRequest{
		UserId:         auth.User.Id,
		MovieId:        movie.Id,
		CinemaId:       cinema.Id,
		OrderNumber:    "ORD424242",
		PaymentMethod:  "QRIS",
		Seats:          []string{"C1"},
		Date:           movie.Showtimes.Dates[0],
		Time:           movie.Showtimes.Times[movie.Showtimes.Dates[0]][0],
		TicketPrice:    cinema.Price,
		TotalPrice:     cinema.Price + 5000,
		TotalTickets:   1,
		ConvenienceFee: 5000,
		Status:         "booked",
		PaymentSuccess: true,
	}
	conf, err := client.CreateBooking(ctx, auth.Token, req)
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	if conf.OrderNumber != "ORD424242" {
		t.Fatalf("unexpected order number %q", conf.OrderNumber)
	}

	_, err = client.CreateBooking(ctx, auth.Token, req)
	if msg := UserMessage(err, "Booking failed"); msg != "Seat C1 is already booked" {
		t.Fatalf("expected seat conflict message, got %q", msg)
	}
}
