// Package service exposes steering document resolution to external
// context assemblers over HTTP and NATS.
package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/steering/activation"
	"github.com/c360studio/steering/config"
	"github.com/c360studio/steering/ranker"
	"github.com/c360studio/steering/registry"
)

// Service resolves steering documents for task contexts. It reads
// immutable registry snapshots, so concurrent requests need no
// synchronization.
type Service struct {
	registry *registry.Registry
	cfg      *config.Config
	budget   *ranker.BudgetCalculator
	logger   *slog.Logger
	metrics  *Metrics
}

// New creates a resolution service. A nil registerer disables metrics
// registration by using a throwaway registry.
func New(reg *registry.Registry, cfg *config.Config, logger *slog.Logger, promReg prometheus.Registerer) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if promReg == nil {
		promReg = prometheus.NewRegistry()
	}
	return &Service{
		registry: reg,
		cfg:      cfg,
		budget:   ranker.NewBudgetCalculator(cfg.Budget.Default, cfg.Budget.Headroom),
		logger:   logger,
		metrics:  NewMetrics(promReg),
	}
}

// Resolve computes the budgeted document set for a request.
func (s *Service) Resolve(req *ResolveRequest) (*ResolveResponse, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		s.metrics.ResolveTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	snap := s.registry.Snapshot()
	s.metrics.Documents.Set(float64(snap.Len()))

	activated := activation.Resolve(snap, activation.TaskContext{
		ActiveFile:  req.File,
		Tags:        req.Tags,
		Description: req.Description,
	})

	budget := s.budget.Calculate(req.Budget, req.Model, s.cfg.MaxForModel)
	ranked := ranker.Rank(activated, req.Description, budget)

	resp := &ResolveResponse{
		RequestID: requestID,
		Documents: make([]DocumentPayload, 0, len(ranked)),
		Budget:    budget,
	}
	for _, rd := range ranked {
		resp.Documents = append(resp.Documents, DocumentPayload{
			ID:        rd.Doc.ID,
			Title:     rd.Doc.Title,
			Mode:      rd.Doc.Mode,
			Content:   rd.Content,
			Score:     rd.Score,
			Truncated: rd.Truncated,
		})
	}
	resp.Count = len(resp.Documents)
	resp.TotalSize = ranker.TotalSize(ranked)

	s.metrics.ResolveTotal.WithLabelValues("ok").Inc()
	s.metrics.ResolveDuration.Observe(time.Since(start).Seconds())

	s.logger.Debug("Resolved task context",
		"request_id", requestID,
		"file", req.File,
		"tags", req.Tags,
		"documents", resp.Count,
		"total_size", resp.TotalSize,
		"budget", budget)

	return resp, nil
}

// Reload rescans the docs directory and swaps the snapshot.
func (s *Service) Reload() *ReloadResponse {
	invalid, err := s.registry.Load()
	if err != nil {
		return &ReloadResponse{
			Success: false,
			Message: err.Error(),
		}
	}

	s.metrics.ReloadsTotal.Inc()
	snap := s.registry.Snapshot()
	s.metrics.Documents.Set(float64(snap.Len()))

	resp := &ReloadResponse{
		Success:   true,
		Documents: snap.Len(),
	}
	for _, le := range invalid {
		resp.Invalid = append(resp.Invalid, le.Error())
	}
	return resp
}

// List returns the current document inventory without content.
func (s *Service) List() *ListResponse {
	snap := s.registry.Snapshot()

	resp := &ListResponse{
		Documents: make([]DocumentInfo, 0, snap.Len()),
	}
	for _, doc := range snap.All() {
		resp.Documents = append(resp.Documents, DocumentInfo{
			ID:      doc.ID,
			Title:   doc.Title,
			Mode:    doc.Mode,
			Pattern: doc.Pattern,
			Tag:     doc.Tag,
			Size:    doc.Size,
			Hash:    doc.Hash,
		})
	}
	resp.Count = len(resp.Documents)
	return resp
}
