package client

import (
	"bytes"
	"context"
	"domineering/communication"
	"domineering/experiments/metrics"
	"domineering/game"
	"domineering/utils"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// Client asks a remote agent server for moves. It satisfies agent.Agent.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: time.Minute},
	}
}

func (c *Client) FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error) {
	start := time.Now()
	body, err := json.Marshal(communication.EncodeState(state))
	if err != nil {
		return 0, metrics.SearchMetric{}, fmt.Errorf("encode state: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/findmove", bytes.NewReader(body))
	if err != nil {
		return 0, metrics.SearchMetric{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, metrics.SearchMetric{}, fmt.Errorf("request move: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return 0, metrics.SearchMetric{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var got communication.FindMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		return 0, metrics.SearchMetric{}, fmt.Errorf("decode move: %w", err)
	}

	if got.Move < 0 || got.Move > math.MaxUint8 {
		return 0, metrics.SearchMetric{}, fmt.Errorf("agent returned illegal move %d", got.Move)
	}
	move := game.Move(got.Move)
	if utils.FindIndex(state.LegalMoves(), move) < 0 {
		return 0, metrics.SearchMetric{}, fmt.Errorf("agent returned illegal move %d", got.Move)
	}

	return move, metrics.SearchMetric{
		Searcher:   "remote:" + got.Searcher,
		Candidates: state.Count(),
		Duration:   time.Since(start),
		Playouts:   got.Playouts,
	}, nil
}
