package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/createmusic-space/musicgen/internal/errors"
	"github.com/createmusic-space/musicgen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMusicClientGenerate(t *testing.T) {
	var got models.GenerationRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "audio/wav")
		_, _ = w.Write([]byte("RIFFfake"))
	}))
	defer server.Close()

	c := NewMusicClient(server.URL, 5*time.Second)
	data, err := c.Generate(context.Background(), models.GenerationRequest{Scale: "C_Major", Length: 16})

	require.NoError(t, err)
	assert.Equal(t, []byte("RIFFfake"), data)
	assert.Equal(t, "C_Major", got.Scale)
	assert.Equal(t, 16, got.Length)
}

func TestMusicClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"model unavailable"}`))
	}))
	defer server.Close()

	c := NewMusicClient(server.URL, 5*time.Second)
	_, err := c.Generate(context.Background(), models.GenerationRequest{Scale: "C_Major", Length: 4})

	require.Error(t, err)
	assert.True(t, apperrors.IsAPI(err))
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(err))
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestMusicClientEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewMusicClient(server.URL, 5*time.Second)
	_, err := c.Generate(context.Background(), models.GenerationRequest{Scale: "C_Major", Length: 4})

	assert.ErrorIs(t, err, apperrors.ErrEmptyAudio)
}

func TestMusicClientRejectsInvalidLengthWithoutCalling(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
	}))
	defer server.Close()

	c := NewMusicClient(server.URL, 5*time.Second)
	_, err := c.Generate(context.Background(), models.GenerationRequest{Scale: "C_Major", Length: 0})

	assert.ErrorIs(t, err, apperrors.ErrInvalidLength)
	assert.Equal(t, 0, calls)
}

func TestMusicClientUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewMusicClient(url, time.Second)
	_, err := c.Generate(context.Background(), models.GenerationRequest{Scale: "C_Major", Length: 4})

	require.Error(t, err)
	assert.True(t, apperrors.IsAPI(err))
	assert.Equal(t, 0, apperrors.StatusCode(err))
}
