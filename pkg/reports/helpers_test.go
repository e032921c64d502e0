package reports

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opsforge/snowassets/pkg/snow"
)

// testClient spins up a fake instance behind handler and returns a client
// pointed at it.
func testClient(t *testing.T, handler http.HandlerFunc) *snow.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := snow.NewClient(snow.Config{
		BaseURL:    srv.URL + "/api/now",
		Username:   "tester",
		Password:   "secret",
		Timeout:    5 * time.Second,
		MaxRetries: 1,
	})
	require.NoError(t, err)
	return client
}

// resultList wraps records in the response envelope.
func resultList(records string) string {
	return `{"result": ` + records + `}`
}

func daysFromNow(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}
