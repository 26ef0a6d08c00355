package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWithoutKeySkipsNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient("", "gpt-4.1-mini", srv.URL, nil)
	text, ok := c.Generate(context.Background(), "prompt")

	assert.False(t, ok)
	assert.Empty(t, text)
	assert.False(t, called, "no credential must mean no request")
}

func TestGenerateSuccess(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Write([]byte(`{"output_text":"{\"answer\":\"ok\"}"}`))
	}))
	defer srv.Close()

	c := NewClient("sk-test-key", "gpt-4.1-mini", srv.URL, nil)
	text, ok := c.Generate(context.Background(), "prompt")

	require.True(t, ok)
	assert.Equal(t, `{"answer":"ok"}`, text)
	assert.Equal(t, "Bearer sk-test-key", gotAuth)
	assert.Equal(t, "/v1/responses", gotPath)
}

func TestGenerateFailureModes(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"rate limited", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "slow down", http.StatusTooManyRequests)
		}},
		{"empty output text", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"output_text":""}`))
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json at all`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient("sk-test-key", "gpt-4.1-mini", srv.URL, nil)
			text, ok := c.Generate(context.Background(), "prompt")

			assert.False(t, ok)
			assert.Empty(t, text)
		})
	}
}

func TestGenerateTransportError(t *testing.T) {
	c := NewClient("sk-test-key", "gpt-4.1-mini", "http://host.invalid", nil)
	_, ok := c.Generate(context.Background(), "prompt")
	assert.False(t, ok)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "sk-t****", maskKey("sk-test-key-12345"))
	assert.Equal(t, "****", maskKey("sk"))
	assert.NotContains(t, maskKey("sk-verysecretkey"), "verysecret")
}
