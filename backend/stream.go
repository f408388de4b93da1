package backend

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	errs "github.com/pawtalk/pawtalk-web/internal/errors"
)

// scanBufferSize bounds a single SSE line; model deltas are small but a
// backend may batch several sentences into one frame.
const scanBufferSize = 1 << 20

// StreamChat opens the backend's SSE chat endpoint and invokes onEvent for
// every data frame until the backend sends its [DONE] terminator or the
// stream ends. Cancelling ctx aborts the stream; an aborted request is not
// an error beyond the context's own.
//
// The wire format is standard Server-Sent Events: "data: <json>" lines
// separated by blank lines, with "data: [DONE]" closing the stream. Frames
// that do not decode are skipped rather than killing the stream.
func (c *Client) StreamChat(ctx context.Context, req ChatRequest, onEvent func(ChatEvent) error) error {
	encoded, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat/stream", bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.streamClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: chat stream: %v", errs.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp, http.MethodPost, "/api/chat/stream")
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), scanBufferSize)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			// Comments, event names and blank keep-alive lines.
			continue
		}

		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "[DONE]" {
			return nil
		}

		var event ChatEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			log.Debug().Err(err).Msg("Skipping undecodable chat stream frame")
			continue
		}
		if err := onEvent(event); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("chat stream read: %w", err)
	}
	// Stream closed without a terminator; the reply is complete as far as
	// the caller can tell.
	return nil
}
