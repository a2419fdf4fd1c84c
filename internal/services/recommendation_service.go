package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Survey is the reader's answers driving a recommendation request.
type Survey struct {
	Genre        string `json:"genre"`
	Length       string `json:"length"`
	Series       string `json:"series"`
	Mood         string `json:"mood"`
	SimilarBooks string `json:"similarBooks,omitempty"`
}

// Recommendation is one suggested title.
type Recommendation struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// RecommendationService asks an external chat-completions provider for three
// suggestions matching the survey. The call is best-effort with no retry:
// when the provider is unconfigured, times out, errors, or returns anything
// that does not parse into exactly three suggestions, the canned fallback
// list is returned instead. Recommend never fails outwardly.
type RecommendationService interface {
	Recommend(ctx context.Context, survey Survey) []Recommendation
}

// fallbackRecommendations is served whenever the provider cannot.
var fallbackRecommendations = []Recommendation{
	{ID: 1, Title: "The Name of the Wind", Author: "Patrick Rothfuss"},
	{ID: 2, Title: "Project Hail Mary", Author: "Andy Weir"},
	{ID: 3, Title: "The Silent Patient", Author: "Alex Michaelides"},
}

type recommendationService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewRecommendationService builds the provider client. An empty apiKey
// disables the provider entirely (fallback only).
func NewRecommendationService(apiKey, baseURL, model string, timeout time.Duration) RecommendationService {
	return &recommendationService{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *recommendationService) Recommend(ctx context.Context, survey Survey) []Recommendation {
	if s.apiKey == "" {
		return fallbackRecommendations
	}
	recs, err := s.callProvider(ctx, survey)
	if err != nil {
		log.Printf("[WARN] Recommend: provider call failed, using fallback: %v", err)
		return fallbackRecommendations
	}
	return recs
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (s *recommendationService) callProvider(ctx context.Context, survey Survey) ([]Recommendation, error) {
	prompt := fmt.Sprintf(
		"Recommend exactly 3 books for a reader. Genre: %s. Preferred length: %s. "+
			"Series preference: %s. Mood: %s.",
		survey.Genre, survey.Length, survey.Series, survey.Mood)
	if survey.SimilarBooks != "" {
		prompt += fmt.Sprintf(" Books they enjoyed: %s.", survey.SimilarBooks)
	}
	prompt += ` Respond with only a JSON array of 3 objects shaped like ` +
		`{"id":1,"title":"...","author":"..."} and nothing else.`

	body, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("provider returned no choices")
	}

	return parseRecommendations(parsed.Choices[0].Message.Content)
}

// parseRecommendations extracts the JSON array from the model's reply,
// tolerating markdown code fences around it.
func parseRecommendations(content string) ([]Recommendation, error) {
	content = strings.TrimSpace(content)
	if start := strings.Index(content, "["); start >= 0 {
		if end := strings.LastIndex(content, "]"); end > start {
			content = content[start : end+1]
		}
	}
	var recs []Recommendation
	if err := json.Unmarshal([]byte(content), &recs); err != nil {
		return nil, err
	}
	if len(recs) != 3 {
		return nil, fmt.Errorf("expected 3 recommendations, got %d", len(recs))
	}
	for i := range recs {
		if recs[i].Title == "" || recs[i].Author == "" {
			return nil, fmt.Errorf("recommendation %d missing title or author", i)
		}
		if recs[i].ID == 0 {
			recs[i].ID = i + 1
		}
	}
	return recs, nil
}
