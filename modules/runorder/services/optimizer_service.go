package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
)

// OptimizerService shapes the optimization request for the external solver
// and interprets its response. Solver failures of any kind come back as an
// unsuccessful OptimizationResult rather than a Go error, so callers can
// surface them to the client without special-casing transport problems.
type OptimizerService struct {
	url      string
	client   *http.Client
	sketches runorder.SketchRepository
}

func NewOptimizerService(url string, timeout time.Duration, sketches runorder.SketchRepository) *OptimizerService {
	return &OptimizerService{
		url:      url,
		client:   &http.Client{Timeout: timeout},
		sketches: sketches,
	}
}

// Optimize submits the show's sketches with their cast lists. Locked
// sketches are anchored at their current positions on top of whatever
// constraints the caller supplies.
func (s *OptimizerService) Optimize(ctx context.Context, showID uuid.UUID, constraints runorder.OptimizationConstraints) (runorder.OptimizationResult, error) {
	sketches, err := s.sketches.GetByShow(ctx, showID)
	if err != nil {
		return runorder.OptimizationResult{}, err
	}

	payload := runorder.OptimizationRequest{
		Sketches:    make([]runorder.OptimizerSketch, 0, len(sketches)),
		Constraints: constraints,
	}
	anchored := make(map[uuid.UUID]struct{}, len(constraints.Anchored))
	for _, a := range constraints.Anchored {
		anchored[a.SketchID] = struct{}{}
	}
	for _, sk := range sketches {
		cast := make([]string, 0, len(sk.CharacterPerformers))
		for _, cp := range sk.CharacterPerformers {
			if cp.PerformerName != "" {
				cast = append(cast, cp.PerformerName)
			}
		}
		payload.Sketches = append(payload.Sketches, runorder.OptimizerSketch{
			ID:    sk.ID,
			Title: sk.Title,
			Cast:  cast,
		})
		if _, ok := anchored[sk.ID]; sk.Locked && !ok {
			payload.Constraints.Anchored = append(payload.Constraints.Anchored, runorder.AnchoredSketch{
				SketchID: sk.ID,
				Position: sk.Position,
			})
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return runorder.OptimizationResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return runorder.OptimizationResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return runorder.OptimizationResult{Error: fmt.Sprintf("optimizer unreachable: %v", err)}, nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return runorder.OptimizationResult{Error: fmt.Sprintf("optimizer returned status %d", resp.StatusCode)}, nil
	}

	var result runorder.OptimizationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return runorder.OptimizationResult{Error: fmt.Sprintf("optimizer response malformed: %v", err)}, nil
	}
	return result, nil
}
