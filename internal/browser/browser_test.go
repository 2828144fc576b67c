package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Successful attachment needs a live browser; what can be covered here is
// that Connect fails fast and cleanly when the endpoint is dead or is not a
// remote-debugging endpoint, instead of hanging or leaking the session.

func TestConnectRefusedEndpoint(t *testing.T) {
	start := time.Now()
	s, err := Connect(context.Background(), "http://127.0.0.1:1")
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Nil(t, s)

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "http://127.0.0.1:1", connErr.Endpoint)
	assert.Contains(t, err.Error(), "http://127.0.0.1:1")

	// A refused connection must surface well before the connect bound.
	assert.Less(t, elapsed, connectTimeout)
}

func TestConnectNonDebuggingEndpoint(t *testing.T) {
	// Answers HTTP but is not a browser: /json/version yields no websocket
	// URL, so allocation must fail with a ConnectionError.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a devtools endpoint"))
	}))
	defer server.Close()

	s, err := Connect(context.Background(), server.URL)
	require.Error(t, err)
	assert.Nil(t, s)

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, server.URL, connErr.Endpoint)
}
