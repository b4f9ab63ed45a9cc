package discord

import (
	"cmp"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

const (
	serverReadHeaderTimeout = 5 * time.Second
	serverShutdownTimeout   = 5 * time.Second
	maxAnnounceBody         = 16 << 10
)

// HTTPServer exposes the bot's health probe and the operator announce hook
type HTTPServer struct {
	srv      *http.Server
	bot      *Bot
	apiKey   string
	validate *validator.Validate
}

// AnnounceRequest is posted by operators to publish an embed
type AnnounceRequest struct {
	Title       string `json:"title" validate:"required,max=256"`
	Description string `json:"description" validate:"max=4096"`
	Color       int    `json:"color" validate:"gte=0,lte=16777215"`
}

// NewHTTPServer builds the internal server listening on addr. An empty
// apiKey leaves the announce hook open.
func NewHTTPServer(addr, apiKey string, bot *Bot) *HTTPServer {
	s := &HTTPServer{
		bot:      bot,
		apiKey:   apiKey,
		validate: validator.New(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", s.handleHealth)
	r.With(s.requireAPIKey, middleware.RequestSize(maxAnnounceBody)).Post("/admin/announce", s.handleAnnounce)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: serverReadHeaderTimeout,
	}
	return s
}

// Handler is the routed handler, for tests
func (s *HTTPServer) Handler() http.Handler { return s.srv.Handler }

// Serve listens until ctx is cancelled, then drains in-flight requests
func (s *HTTPServer) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Internal HTTP server listening", "addr", s.srv.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(headerAPIKey)), []byte(s.apiKey)) != 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *HTTPServer) handleAnnounce(w http.ResponseWriter, r *http.Request) {
	var req AnnounceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       req.Title,
		Description: req.Description,
		Color:       cmp.Or(req.Color, ColorGold),
		Footer:      &discordgo.MessageEmbedFooter{Text: EmbedFooter},
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.bot.Announce(embed); err != nil {
		slog.Error("Announcement failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
