package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func fakeGemini(t *testing.T, handler http.HandlerFunc) (*httptest.Server, Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{
		Endpoint:  srv.URL,
		APIKey:    "test-key",
		Model:     "gemini-2.5-flash",
		TimeoutMs: 2000,
	})
	return srv, client
}

func TestGenerateJSON_Success(t *testing.T) {
	var gotPath string
	var gotReq generateRequest
	_, client := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"summary\":\"ok\"}"}]}}]}`))
	})

	text, err := client.GenerateJSON(context.Background(), "system", "user prompt")
	require.NoError(t, err)
	require.Equal(t, `{"summary":"ok"}`, text)

	require.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
	require.NotNil(t, gotReq.SystemInstruction)
	require.Equal(t, "system", gotReq.SystemInstruction.Parts[0].Text)
	require.Equal(t, "user prompt", gotReq.Contents[0].Parts[0].Text)
	require.Equal(t, "application/json", gotReq.GenerationConfig.ResponseMimeType)
}

func TestGenerateJSON_NoSystemPrompt(t *testing.T) {
	var gotReq generateRequest
	_, client := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hi"}]}}]}`))
	})

	_, err := client.GenerateJSON(context.Background(), "", "prompt")
	require.NoError(t, err)
	require.Nil(t, gotReq.SystemInstruction)
}

func TestGenerateJSON_NonOKStatus(t *testing.T) {
	_, client := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := client.GenerateJSON(context.Background(), "", "prompt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestGenerateJSON_EmptyCandidates(t *testing.T) {
	_, client := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.GenerateJSON(context.Background(), "", "prompt")
	require.ErrorIs(t, err, ErrInvalidOutput)
}

func TestGenerateJSON_MalformedBody(t *testing.T) {
	_, client := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.GenerateJSON(context.Background(), "", "prompt")
	require.ErrorIs(t, err, ErrInvalidOutput)
}

func TestGenerateJSON_Unreachable(t *testing.T) {
	srv, client := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := client.GenerateJSON(context.Background(), "", "prompt")
	require.Error(t, err)
}
