package provision

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const randomUserFixture = `{
	"results": [
		{
			"login": {"username": "bluebird42"},
			"email": "ada.lovelace@example.com",
			"name": {"title": "Ms", "first": "Ada", "last": "Lovelace"},
			"picture": {"large": "https://img.example.com/l/1.jpg", "medium": "https://img.example.com/m/1.jpg"}
		},
		{
			"login": {"username": "greenfrog7"},
			"email": "alan.turing@example.com",
			"name": {"title": "Mr", "first": "Alan", "last": "Turing"},
			"picture": {"medium": "https://img.example.com/m/2.jpg"}
		}
	],
	"info": {"results": 2}
}`

func TestRandomUserClient_FetchUsers(t *testing.T) {
	var gotResults string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotResults = r.URL.Query().Get("results")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(randomUserFixture))
	}))
	defer srv.Close()

	client := NewRandomUserClient(srv.URL+"/api/", time.Second)
	users, err := client.FetchUsers(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, "2", gotResults)
	require.Len(t, users, 2)

	require.Equal(t, "bluebird42", users[0].Username)
	require.Equal(t, "ada.lovelace@example.com", users[0].Email)
	require.Equal(t, "Ada Lovelace", users[0].Name)
	require.Equal(t, "https://img.example.com/m/1.jpg", users[0].ProfileImageURL)
	require.Nil(t, users[0].AuthCode)

	require.Equal(t, "Alan Turing", users[1].Name)
	require.NotEqual(t, users[0].ID, users[1].ID)
}

func TestRandomUserClient_KeepsExistingQuery(t *testing.T) {
	var gotNat, gotResults string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotNat = r.URL.Query().Get("nat")
		gotResults = r.URL.Query().Get("results")
		_, _ = w.Write([]byte(randomUserFixture))
	}))
	defer srv.Close()

	client := NewRandomUserClient(srv.URL+"/api/?nat=gb", time.Second)
	_, err := client.FetchUsers(context.Background(), 30)
	require.NoError(t, err)
	require.Equal(t, "gb", gotNat)
	require.Equal(t, "30", gotResults)
}

func TestRandomUserClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		timeout time.Duration
		delay   time.Duration
	}{
		{name: "non-2xx status", status: http.StatusServiceUnavailable, body: "down for maintenance"},
		{name: "invalid json", status: http.StatusOK, body: "{not json"},
		{name: "empty results", status: http.StatusOK, body: `{"results": []}`},
		{name: "timeout", status: http.StatusOK, body: randomUserFixture, timeout: 20 * time.Millisecond, delay: 200 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.delay > 0 {
					select {
					case <-time.After(tt.delay):
					case <-r.Context().Done():
						return
					}
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			timeout := tt.timeout
			if timeout == 0 {
				timeout = time.Second
			}
			users, err := NewRandomUserClient(srv.URL, timeout).FetchUsers(context.Background(), 2)
			require.ErrorIs(t, err, ErrUpstream)
			require.Nil(t, users)
		})
	}
}

func TestRandomUserClient_InvalidURL(t *testing.T) {
	_, err := NewRandomUserClient("not a url", time.Second).FetchUsers(context.Background(), 1)
	require.ErrorIs(t, err, ErrUpstream)
}

func TestNewRandomUserClient_DefaultTimeout(t *testing.T) {
	client := NewRandomUserClient("https://randomuser.me/api/", 0)
	require.Equal(t, defaultRequestTimeout, client.timeout)
	require.Equal(t, defaultRequestTimeout, client.client.Timeout)
}
