package suiteql

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ROW DECODING
// =============================================================================

func TestRow_GetString_Defaults(t *testing.T) {
	row := Row{
		"id":     float64(42),
		"name":   "Acme Inc",
		"parent": nil,
		"flag":   true,
	}

	assert.Equal(t, "42", row.GetString("id"), "numbers format without exponent")
	assert.Equal(t, "Acme Inc", row.GetString("name"))
	assert.Equal(t, "", row.GetString("parent"), "null decodes to empty string")
	assert.Equal(t, "", row.GetString("missing"), "absent decodes to empty string")
	assert.Equal(t, "T", row.GetString("flag"))
}

func TestRow_GetBool_TFConvention(t *testing.T) {
	row := Row{"a": "T", "b": "F", "c": "t", "d": true, "e": "yes"}

	assert.True(t, row.GetBool("a"))
	assert.False(t, row.GetBool("b"))
	assert.True(t, row.GetBool("c"))
	assert.True(t, row.GetBool("d"))
	assert.False(t, row.GetBool("e"))
	assert.False(t, row.GetBool("missing"))
}

func TestRow_GetInt(t *testing.T) {
	row := Row{"n": float64(7), "s": " 12 ", "bad": "x"}

	assert.Equal(t, 7, row.GetInt("n"))
	assert.Equal(t, 12, row.GetInt("s"))
	assert.Equal(t, 0, row.GetInt("bad"))
	assert.Equal(t, 0, row.GetInt("missing"))
}

// =============================================================================
// HTTP CLIENT
// =============================================================================

func testCreds() Credentials {
	return Credentials{
		AccountID:      "TSTDRV123",
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		TokenID:        "tid",
		TokenSecret:    "ts",
	}
}

func TestHTTPClient_QueryRows_SingleRow(t *testing.T) {
	// GIVEN: a backend answering one page
	var gotPrefer, gotAuth string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrefer = r.Header.Get("Prefer")
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items":   []map[string]any{{"id": "1", "name": "Root"}},
			"hasMore": false,
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(testCreds(), WithBaseURL(srv.URL))

	// WHEN: running a query
	rows, err := client.QueryRows(context.Background(), "SELECT id, name FROM subsidiary")

	// THEN: rows decode, the request is signed and marked transient
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Root", rows[0].GetString("name"))
	assert.Equal(t, "transient", gotPrefer)
	assert.Contains(t, gotAuth, "OAuth")
	assert.Contains(t, gotAuth, "oauth_signature_method=\"HMAC-SHA256\"")
	assert.Equal(t, "SELECT id, name FROM subsidiary", gotBody["q"])
}

func TestHTTPClient_QueryPaginated_WalksPages(t *testing.T) {
	// GIVEN: a backend answering two pages
	var queries []string
	var offsets []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		queries = append(queries, body["q"])
		offset := r.URL.Query().Get("offset")
		offsets = append(offsets, offset)

		hasMore := offset == "0"
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items":   []map[string]any{{"id": fmt.Sprintf("row-%s", offset)}},
			"hasMore": hasMore,
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(testCreds(), WithBaseURL(srv.URL))

	// WHEN: running a paginated query with caller-supplied ordering
	rows, err := client.QueryPaginated(context.Background(), "SELECT id FROM department", "fullname")

	// THEN: both pages are joined and ORDER BY was appended once
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, []string{"0", "1000"}, offsets)
	for _, q := range queries {
		assert.Equal(t, "SELECT id FROM department ORDER BY fullname", q)
	}
}

func TestHTTPClient_ErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
	}{
		{"unauthorized", 401, `{"title":"Unauthorized","detail":"Invalid login attempt."}`, CodeUnauthorized},
		{"server error", 500, `{"title":"Internal"}`, CodeHTTPStatus},
		{"bad query", 400, `{"detail":"Unknown identifier subsidairy."}`, CodeHTTPStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewHTTPClient(testCreds(), WithBaseURL(srv.URL))
			_, err := client.QueryRows(context.Background(), "SELECT 1")

			require.Error(t, err)
			qe := AsQueryError(err)
			require.NotNil(t, qe, "failures must be distinguishable QueryErrors")
			assert.Equal(t, tt.wantCode, qe.Code)
			assert.Equal(t, "SELECT 1", qe.Query)
		})
	}
}

func TestHTTPClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewHTTPClient(testCreds(), WithBaseURL(srv.URL))
	_, err := client.QueryRows(context.Background(), "SELECT 1")

	qe := AsQueryError(err)
	require.NotNil(t, qe)
	assert.Equal(t, CodeNetwork, qe.Code)
}
