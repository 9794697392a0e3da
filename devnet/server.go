package devnet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/everFinance/goar/utils"
	"github.com/flashbots/go-utils/httplogger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/atomic"

	"github.com/padolabs/pado-go-sdk/interfaces"
)

// Config holds the devnet server configuration.
type Config struct {
	ListenAddr string

	// NodeRegistryProcessID and DataRegistryProcessID are the simulated
	// process identifiers the server answers for.
	NodeRegistryProcessID string
	DataRegistryProcessID string

	Log *slog.Logger

	GracefulShutdownDuration time.Duration
	ReadTimeout              time.Duration
	WriteTimeout             time.Duration
}

// Server simulates the AO unit endpoints over in-memory process state.
type Server struct {
	cfg     *Config
	log     *slog.Logger
	isReady atomic.Bool
	state   *State

	resultsMu sync.Mutex
	results   map[string]resultEnvelope

	srv *http.Server
}

type resultMessage struct {
	Data string `json:"Data"`
}

type resultEnvelope struct {
	Messages []resultMessage `json:"Messages"`
	Error    *string         `json:"Error"`
}

// New creates a devnet server.
func New(cfg *Config) *Server {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	srv := &Server{
		cfg:     cfg,
		log:     log,
		state:   NewState(),
		results: make(map[string]resultEnvelope),
	}
	srv.isReady.Store(true)

	srv.srv = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return srv
}

// State exposes the simulated registry state, for test seeding.
func (srv *Server) State() *State {
	return srv.state
}

// Router returns the HTTP handler serving the unit endpoints.
func (srv *Server) Router() http.Handler {
	mux := chi.NewRouter()

	mux.With(srv.httpLogger).Post("/", srv.handleSend)
	mux.With(srv.httpLogger).Get("/result/{messageID}", srv.handleResult)
	mux.With(srv.httpLogger).Post("/dry-run", srv.handleDryRun)

	mux.Get("/livez", srv.handleLivenessCheck)
	mux.Get("/readyz", srv.handleReadinessCheck)

	return mux
}

func (srv *Server) httpLogger(next http.Handler) http.Handler {
	return httplogger.LoggingMiddlewareSlog(srv.log, next)
}

// handleSend accepts a signed ANS-104 data item, executes it against the
// targeted process and records the result under the item's ID.
func (srv *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "could not read request body", http.StatusBadRequest)
		return
	}

	item, err := utils.DecodeBundleItem(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid data item: %v", err), http.StatusBadRequest)
		return
	}

	data, err := utils.Base64Decode(item.Data)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid data item payload: %v", err), http.StatusBadRequest)
		return
	}

	tags := make([]interfaces.Tag, 0, len(item.Tags))
	for _, tag := range item.Tags {
		tags = append(tags, interfaces.Tag{Name: tag.Name, Value: tag.Value})
	}

	msg := inboundMessage{
		Target: item.Target,
		Owner:  item.Owner,
		Tags:   tags,
		Data:   data,
	}

	response, dispatchErr := srv.dispatch(msg)

	envelope := resultEnvelope{Messages: []resultMessage{}}
	if dispatchErr != nil {
		errText := dispatchErr.Error()
		envelope.Error = &errText
	} else {
		envelope.Messages = append(envelope.Messages, resultMessage{Data: string(response)})
	}

	srv.resultsMu.Lock()
	srv.results[item.Id] = envelope
	srv.resultsMu.Unlock()

	srv.log.Debug("Message executed",
		slog.String("message_id", item.Id),
		slog.String("process_id", item.Target),
		slog.Bool("failed", dispatchErr != nil))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"id": item.Id})
}

// handleResult serves the result correlated to a committed message.
func (srv *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	messageID := chi.URLParam(r, "messageID")

	srv.resultsMu.Lock()
	envelope, exists := srv.results[messageID]
	srv.resultsMu.Unlock()

	if !exists {
		http.Error(w, "no result for message", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(envelope)
}

// handleDryRun executes a read-only query without committing state.
func (srv *Server) handleDryRun(w http.ResponseWriter, r *http.Request) {
	var envelope struct {
		Target string           `json:"Target"`
		Owner  string           `json:"Owner"`
		Tags   []interfaces.Tag `json:"Tags"`
		Data   string           `json:"Data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		http.Error(w, fmt.Sprintf("invalid dry-run envelope: %v", err), http.StatusBadRequest)
		return
	}

	target := envelope.Target
	if target == "" {
		target = r.URL.Query().Get("process-id")
	}

	response, dispatchErr := srv.dispatch(inboundMessage{
		Target: target,
		Owner:  envelope.Owner,
		Tags:   envelope.Tags,
		Data:   []byte(envelope.Data),
	})

	result := resultEnvelope{Messages: []resultMessage{}}
	if dispatchErr != nil {
		errText := dispatchErr.Error()
		result.Error = &errText
	} else {
		result.Messages = append(result.Messages, resultMessage{Data: string(response)})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (srv *Server) handleLivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"alive"}`))
}

func (srv *Server) handleReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if !srv.isReady.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"not ready"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

// RunInBackground starts the HTTP server without blocking.
func (srv *Server) RunInBackground() {
	go func() {
		srv.log.Info("Starting devnet server", "listenAddress", srv.cfg.ListenAddr)
		if err := srv.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.log.Error("HTTP server failed", "err", err)
		}
	}()
}

// Shutdown gracefully stops the HTTP server.
func (srv *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), srv.cfg.GracefulShutdownDuration)
	defer cancel()
	if err := srv.srv.Shutdown(ctx); err != nil {
		srv.log.Error("Graceful HTTP server shutdown failed", "err", err)
	} else {
		srv.log.Info("Devnet server gracefully stopped")
	}
}
