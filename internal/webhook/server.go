// Package webhook serves the assistant's fulfillment webhook over HTTP.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/frarold/internal/fulfillment"
)

const maxBodyBytes = 1 << 20

// BadRequestSpeech is said when the webhook body cannot be decoded.
const BadRequestSpeech = "Sorry, I didn't catch that. Could you ask again?"

// Fulfiller is satisfied by *fulfillment.Service.
type Fulfiller interface {
	Speech(ctx context.Context, req fulfillment.Request) string
}

type Server struct {
	Fulfillment Fulfiller
	Log         *zap.Logger
}

type webhookRequest struct {
	Result struct {
		Metadata struct {
			IntentName string `json:"intentName"`
		} `json:"metadata"`
		Parameters struct {
			DiningHall string `json:"dining_hall"`
			Meal       string `json:"meal"`
			FoodItem   string `json:"food_item"`
			Date       string `json:"date"`
		} `json:"parameters"`
	} `json:"result"`
}

func (r webhookRequest) fulfillmentRequest() fulfillment.Request {
	p := r.Result.Parameters
	return fulfillment.Request{
		Intent:   r.Result.Metadata.IntentName,
		Hall:     p.DiningHall,
		Meal:     p.Meal,
		FoodItem: p.FoodItem,
		Date:     p.Date,
	}
}

// Response is the webhook reply. Speech and DisplayText always carry the same text.
type Response struct {
	Speech      string `json:"speech"`
	DisplayText string `json:"displayText"`
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.HandleFunc("/webhook", s.handleWebhook)

	return s.logging(mux)
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req webhookRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.logger().Info("undecodable webhook body", zap.String("request_id", RequestID(r.Context())), zap.Error(err))
		writeSpeech(w, BadRequestSpeech)
		return
	}

	writeSpeech(w, s.Fulfillment.Speech(r.Context(), req.fulfillmentRequest()))
}

// writeSpeech always answers 200; failures are reported in the text itself.
func writeSpeech(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(Response{Speech: text, DisplayText: text})
}

type ctxKeyRequestID struct{}

// RequestID returns the id the logging middleware assigned to the request, if any.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyRequestID{}).(string); ok {
		return v
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *Server) logging(next http.Handler) http.Handler {
	log := s.logger()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), ctxKeyRequestID{}, id)))

		log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", id),
		)
	})
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log.Named("webhook")
}

// Start serves h on addr until ctx is done, then shuts down gracefully.
func Start(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
