package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendWithoutProviderFallsBack(t *testing.T) {
	svc := NewRecommendationService("", "https://api.openai.com/v1", "gpt-4o-mini", time.Second)

	recs := svc.Recommend(context.Background(), Survey{
		Genre: "Fantasy", Length: "long", Series: "yes", Mood: "adventurous",
	})
	require.Len(t, recs, 3)
	assert.Equal(t, fallbackRecommendations, recs)
}

func TestRecommendParsesProviderResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content":
				"[{\"id\":1,\"title\":\"Dune\",\"author\":\"Frank Herbert\"},` +
			`{\"id\":2,\"title\":\"Circe\",\"author\":\"Madeline Miller\"},` +
			`{\"id\":3,\"title\":\"Educated\",\"author\":\"Tara Westover\"}]"
			}}]
		}`))
	}))
	defer server.Close()

	svc := NewRecommendationService("test-key", server.URL, "gpt-4o-mini", time.Second)
	recs := svc.Recommend(context.Background(), Survey{
		Genre: "Sci-Fi", Length: "long", Series: "no", Mood: "epic",
	})
	require.Len(t, recs, 3)
	assert.Equal(t, "Dune", recs[0].Title)
	assert.Equal(t, "Madeline Miller", recs[1].Author)
}

func TestRecommendFallsBackOnProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewRecommendationService("test-key", server.URL, "gpt-4o-mini", time.Second)
	recs := svc.Recommend(context.Background(), Survey{
		Genre: "Mystery", Length: "short", Series: "no", Mood: "tense",
	})
	assert.Equal(t, fallbackRecommendations, recs)
}

func TestRecommendFallsBackOnUnparseableContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "I suggest reading more."}}]}`))
	}))
	defer server.Close()

	svc := NewRecommendationService("test-key", server.URL, "gpt-4o-mini", time.Second)
	recs := svc.Recommend(context.Background(), Survey{
		Genre: "Romance", Length: "medium", Series: "yes", Mood: "light",
	})
	assert.Equal(t, fallbackRecommendations, recs)
}

func TestParseRecommendations(t *testing.T) {
	type testCase struct {
		name    string
		content string
		wantErr bool
	}
	valid := `[{"id":1,"title":"A","author":"B"},{"id":2,"title":"C","author":"D"},{"id":3,"title":"E","author":"F"}]`
	testCases := []testCase{
		{
			name:    "plain array",
			content: valid,
		},
		{
			name:    "markdown fenced",
			content: "```json\n" + valid + "\n```",
		},
		{
			name:    "wrong count",
			content: `[{"id":1,"title":"A","author":"B"}]`,
			wantErr: true,
		},
		{
			name:    "missing author",
			content: `[{"id":1,"title":"A"},{"id":2,"title":"C","author":"D"},{"id":3,"title":"E","author":"F"}]`,
			wantErr: true,
		},
		{
			name:    "not json",
			content: "no recommendations today",
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recs, err := parseRecommendations(tc.content)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, recs, 3)
		})
	}
}
