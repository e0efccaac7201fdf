// Package slack posts replay summaries to a Slack channel.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/resonance/internal/glyph"
	"github.com/MikeSquared-Agency/resonance/internal/replay"
)

const defaultPostMessageURL = "https://slack.com/api/chat.postMessage"

type Poster struct {
	token   string
	channel string
	client  *http.Client
	logger  *slog.Logger
	apiURL  string
}

func NewPoster(token, channel string, logger *slog.Logger) *Poster {
	return &Poster{
		token:   token,
		channel: channel,
		client:  &http.Client{Timeout: 10 * time.Second},
		apiURL:  defaultPostMessageURL,
		logger:  logger,
	}
}

// PostReplaySummary posts a replay run's summary and returns the message ts.
func (p *Poster) PostReplaySummary(ctx context.Context, sum *replay.Summary, source string) (string, error) {
	text := formatReplaySummary(sum, source)

	body, err := json.Marshal(map[string]any{
		"channel": p.channel,
		"text":    text,
		"blocks": []map[string]any{
			{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": text,
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("slack post: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var slackResp struct {
		OK    bool   `json:"ok"`
		TS    string `json:"ts"`
		Error string `json:"error,omitempty"`
	}
	if err := json.Unmarshal(respBody, &slackResp); err != nil {
		return "", fmt.Errorf("parse slack response: %w", err)
	}
	if !slackResp.OK {
		return "", fmt.Errorf("slack error: %s", slackResp.Error)
	}

	p.logger.Info("posted replay summary to slack", "ts", slackResp.TS, "source", source)
	return slackResp.TS, nil
}

func formatReplaySummary(sum *replay.Summary, source string) string {
	var sb strings.Builder

	mode := "applied"
	if sum.DryRun {
		mode = "dry run"
	}
	fmt.Fprintf(&sb, "*Replay:* %s (%s)\n", source, mode)
	fmt.Fprintf(&sb, "*Files:* %d new, %d already processed\n", sum.Files, sum.AlreadyKnown)
	fmt.Fprintf(&sb, "*Messages:* %d scored, %d applied, %d outside range, %d errors\n\n",
		sum.Messages, sum.Applied, sum.Skipped, sum.Errors)

	if len(sum.GlyphCounts) == 0 {
		sb.WriteString("_No messages replayed._")
		return sb.String()
	}

	names := make([]string, 0, len(sum.GlyphCounts))
	for name := range sum.GlyphCounts {
		names = append(names, name)
	}
	// Most frequent first, ties by name.
	sort.Slice(names, func(i, j int) bool {
		ci, cj := sum.GlyphCounts[names[i]], sum.GlyphCounts[names[j]]
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})

	sb.WriteString("*Glyphs:*\n")
	for _, name := range names {
		symbol := "?"
		if g, err := glyph.Parse(name); err == nil {
			symbol = g.Symbol()
		}
		fmt.Fprintf(&sb, "%s %s: %d\n", symbol, name, sum.GlyphCounts[name])
	}
	return sb.String()
}
