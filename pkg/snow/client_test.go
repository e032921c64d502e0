package snow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		BaseURL:    srv.URL + "/api/now",
		Username:   "tester",
		Password:   "secret",
		Timeout:    5 * time.Second,
		MaxRetries: 1,
	})
	require.NoError(t, err)
	return client
}

func TestClient_StatusErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
	}{
		{401, KindAuth},
		{403, KindPermission},
		{404, KindNotFound},
		{429, KindRateLimit},
		{500, KindAPI},
		{502, KindAPI},
		{418, KindAPI},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"error": {"message": "boom"}}`)
			}))

			_, err := client.List(context.Background(), "alm_hardware", ListOptions{})
			require.Error(t, err)

			var snowErr *Error
			require.ErrorAs(t, err, &snowErr)
			assert.Equal(t, tt.kind, snowErr.Kind)
			assert.Equal(t, tt.status, snowErr.StatusCode)
			assert.Equal(t, "alm_hardware", snowErr.Table)
			assert.Contains(t, snowErr.Message, "alm_hardware")
			assert.Contains(t, snowErr.Message, "boom")
		})
	}
}

func TestClient_ErrorDetailFallsBackToRawBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, "<html>denied</html>")
	}))

	_, err := client.Get(context.Background(), "alm_asset", "a1", GetOptions{})
	require.Error(t, err)

	var snowErr *Error
	require.ErrorAs(t, err, &snowErr)
	assert.Equal(t, KindPermission, snowErr.Kind)
	assert.Equal(t, "a1", snowErr.SysID)
	assert.Contains(t, snowErr.Message, "<html>denied</html>")
}

func TestClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewClient(Config{
		BaseURL:    url + "/api/now",
		Username:   "tester",
		Password:   "secret",
		MaxRetries: 1,
	})
	require.NoError(t, err)

	_, err = client.List(context.Background(), "alm_hardware", ListOptions{})
	require.Error(t, err)

	var snowErr *Error
	require.ErrorAs(t, err, &snowErr)
	assert.Equal(t, KindConnection, snowErr.Kind)
	assert.Zero(t, snowErr.StatusCode)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		BaseURL:    srv.URL + "/api/now",
		Username:   "tester",
		Password:   "secret",
		Timeout:    50 * time.Millisecond,
		MaxRetries: 1,
	})
	require.NoError(t, err)

	_, err = client.Delete(context.Background(), "alm_hardware", "hw1")
	require.Error(t, err)

	var snowErr *Error
	require.ErrorAs(t, err, &snowErr)
	assert.Equal(t, KindConnection, snowErr.Kind)
	assert.Contains(t, snowErr.Message, "timeout")
}

func TestClient_RetriesTransientStatuses(t *testing.T) {
	attempts := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"result": []}`)
	}))

	records, err := client.List(context.Background(), "alm_hardware", ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 2, attempts)
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.List(context.Background(), "alm_hardware", ListOptions{})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestClient_ListQueryParameters(t *testing.T) {
	var got map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/now/table/alm_hardware", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "tester", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
		fmt.Fprint(w, `{"result": []}`)
	}))

	_, err := client.List(context.Background(), "alm_hardware", ListOptions{
		Query:        "install_status=1^model_categoryLIKEComputer",
		Fields:       []string{"sys_id", "asset_tag"},
		Limit:        25,
		Offset:       50,
		DisplayValue: true,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"sysparm_limit":         "25",
		"sysparm_offset":        "50",
		"sysparm_display_value": "true",
		"sysparm_query":         "install_status=1^model_categoryLIKEComputer",
		"sysparm_fields":        "sys_id,asset_tag",
	}, got)
}

func TestClient_ListDefaults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "100", q.Get("sysparm_limit"))
		assert.Equal(t, "0", q.Get("sysparm_offset"))
		assert.Equal(t, "false", q.Get("sysparm_display_value"))
		assert.False(t, q.Has("sysparm_query"))
		assert.False(t, q.Has("sysparm_fields"))
		fmt.Fprint(w, `{}`)
	}))

	records, err := client.List(context.Background(), "alm_hardware", ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestClient_ListPassesEnvelopeThrough(t *testing.T) {
	payload := `{"result": [
		{"sys_id": "hw1", "model": {"display_value": "Model Y", "value": "m1"}, "cost": "1200.50"},
		{"sys_id": "hw2", "assigned_to": null}
	]}`

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	}))

	records, err := client.List(context.Background(), "alm_hardware", ListOptions{Limit: 100})
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Records come back byte-for-byte equivalent to the envelope contents.
	out, err := json.Marshal(records)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"sys_id": "hw1", "model": {"display_value": "Model Y", "value": "m1"}, "cost": "1200.50"},
		{"sys_id": "hw2", "assigned_to": null}
	]`, string(out))
}

func TestClient_Get(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/now/table/alm_asset/a1", r.URL.Path)
		fmt.Fprint(w, `{"result": {"sys_id": "a1", "asset_tag": "P100"}}`)
	}))

	rec, err := client.Get(context.Background(), "alm_asset", "a1", GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "a1", rec.Display("sys_id"))
	assert.Equal(t, "P100", rec.Display("asset_tag"))
}

func TestClient_GetMissingResult(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))

	rec, err := client.Get(context.Background(), "alm_asset", "a1", GetOptions{})
	require.NoError(t, err)
	assert.NotNil(t, rec)
	assert.Empty(t, rec)
}

func TestClient_CreateAndUpdate(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "P200", body["asset_tag"])

		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "/api/now/table/alm_hardware", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
		case http.MethodPatch:
			assert.Equal(t, "/api/now/table/alm_hardware/hw9", r.URL.Path)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
		fmt.Fprint(w, `{"result": {"sys_id": "hw9", "asset_tag": "P200"}}`)
	}))

	created, err := client.Create(context.Background(), "alm_hardware", map[string]any{"asset_tag": "P200"})
	require.NoError(t, err)
	assert.Equal(t, "hw9", created.Display("sys_id"))

	updated, err := client.Update(context.Background(), "alm_hardware", "hw9", map[string]any{"asset_tag": "P200"})
	require.NoError(t, err)
	assert.Equal(t, "P200", updated.Display("asset_tag"))
}

func TestClient_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusNoContent)
		}))

		ok, err := client.Delete(context.Background(), "alm_hardware", "hw1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("not found", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		ok, err := client.Delete(context.Background(), "alm_hardware", "hw1")
		assert.False(t, ok)

		var snowErr *Error
		require.ErrorAs(t, err, &snowErr)
		assert.Equal(t, KindNotFound, snowErr.Kind)
	})
}

func TestClient_Ping(t *testing.T) {
	t.Run("healthy instance", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/now/table/sys_properties", r.URL.Path)
			assert.Equal(t, "1", r.URL.Query().Get("sysparm_limit"))
			fmt.Fprint(w, `{"result": [{"sys_id": "p1"}]}`)
		}))

		result := client.Ping(context.Background())
		assert.Equal(t, "ok", result.Status)
		assert.Empty(t, result.Error)
		assert.GreaterOrEqual(t, result.ResponseTimeS, 0.0)
	})

	t.Run("failing auth never raises", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error": {"message": "bad credentials"}}`)
		}))

		result := client.Ping(context.Background())
		assert.Equal(t, "error", result.Status)
		assert.NotEmpty(t, result.Error)
		assert.GreaterOrEqual(t, result.ResponseTimeS, 0.0)
	})
}

func TestNewClient_Defaults(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)

	client, err := NewClient(Config{BaseURL: "https://x.example.com/api/now/"})
	require.NoError(t, err)
	assert.Equal(t, "https://x.example.com/api/now", client.baseURL)
	assert.Equal(t, defaultMaxRetries, client.maxRetries)
	assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
}
