package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func stubResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func TestGenerateSendsPromptAndJoinsParts(t *testing.T) {
	var capturedURL string
	var capturedKey string
	var payload generateRequest

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		capturedKey = req.Header.Get("X-Goog-Api-Key")
		body, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &payload))
		return stubResponse(http.StatusOK,
			`{"candidates":[{"content":{"role":"model","parts":[{"text":"1. Resumen"},{"text":" Operativo"}]}}]}`), nil
	})

	client, err := NewClient("test-key", WithBaseURL("http://gemini.test/v1beta/"), WithHTTPClient(&http.Client{Transport: rt}))
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), "Redacta el informe")
	require.NoError(t, err)
	assert.Equal(t, "1. Resumen Operativo", text)
	assert.Equal(t, "http://gemini.test/v1beta/models/gemini-2.5-flash:generateContent", capturedURL)
	assert.Equal(t, "test-key", capturedKey)
	require.Len(t, payload.Contents, 1)
	assert.Equal(t, "Redacta el informe", payload.Contents[0].Parts[0].Text)
}

func TestGenerateReportsHTTPFailure(t *testing.T) {
	rt := roundTripFunc(func(*http.Request) (*http.Response, error) {
		return stubResponse(http.StatusTooManyRequests, `{"error":{"message":"quota"}}`), nil
	})
	client, err := NewClient("k", WithHTTPClient(&http.Client{Transport: rt}), WithModel("gemini-test"))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestGenerateWithoutCandidatesReturnsEmpty(t *testing.T) {
	rt := roundTripFunc(func(*http.Request) (*http.Response, error) {
		return stubResponse(http.StatusOK, `{"candidates":[]}`), nil
	})
	client, err := NewClient("k", WithHTTPClient(&http.Client{Transport: rt}))
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), "x")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("   ")
	assert.Error(t, err)
}
