package gridsolver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubmitSendsPayloadAndReadsVerdict(t *testing.T) {
	var received Payload
	var gotHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, SOLVE_PATH, r.URL.Path)
		gotHeader = r.Header.Get("apikey")

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(Verdict{
			Status:   VERDICT_SOLVED,
			Solution: []int{3, 1},
		})
	}))
	defer server.Close()

	client := NewRemoteClientURL("key-123", server.URL)

	verdict, err := client.Submit(context.Background(), &Payload{
		SoftwareID: SOFTWARE_ID,
		Method:     SOLVE_METHOD,
		SiteURL:    "https://example.com",
		Language:   "en",
		SiteKey:    "sitekey-1",
		Images:     []string{"img"},
		Target:     "bus",
	})

	require.NoError(t, err)
	require.Equal(t, VERDICT_SOLVED, verdict.Status)
	require.Equal(t, []int{3, 1}, verdict.Solution)
	require.Equal(t, "key-123", gotHeader)
	require.Equal(t, "sitekey-1", received.SiteKey)
	require.Equal(t, SOLVE_METHOD, received.Method)
}

func TestPollResultFollowsServiceURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/result/42", r.URL.Path)

		json.NewEncoder(w).Encode(Verdict{Status: VERDICT_NEW})
	}))
	defer server.Close()

	client := NewRemoteClientURL("key-123", server.URL)

	verdict, err := client.PollResult(context.Background(), server.URL+"/result/42")

	require.NoError(t, err)
	require.Equal(t, VERDICT_NEW, verdict.Status)
}

func TestSubmitRejectsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewRemoteClientURL("key-123", server.URL)

	_, err := client.Submit(context.Background(), &Payload{})

	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}

func TestSubmitRejectsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewRemoteClientURL("key-123", server.URL)

	_, err := client.Submit(context.Background(), &Payload{})

	require.Error(t, err)
}

func TestSubmitHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewRemoteClient("key-123", TIER_FREE)

	_, err := client.Submit(ctx, &Payload{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestEndpointForTier(t *testing.T) {
	require.Equal(t, FREE_BASE_URL, EndpointForTier(TIER_FREE))
	require.Equal(t, PRO_BASE_URL, EndpointForTier(TIER_PRO))
	require.Equal(t, FREE_BASE_URL, EndpointForTier(""))
}
