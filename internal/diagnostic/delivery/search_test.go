package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monpro-diagnostic/internal/common/logger"
)

// esTestServer fakes just enough of the Elasticsearch API for the
// index call, including the product header the v8 client checks.
func esTestServer(t *testing.T, status int, onIndex func(r *http.Request, doc map[string]interface{})) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")

		if onIndex != nil && r.Method == http.MethodPut {
			var doc map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
			onIndex(r, doc)
		}

		w.WriteHeader(status)
		w.Write([]byte(`{"result":"created"}`))
	}))
}

func newSearchSink(t *testing.T, serverURL, index string) *SearchSink {
	t.Helper()
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{serverURL}})
	require.NoError(t, err)
	return NewSearchSink(client, index, logger.NewTestLogger(t))
}

func TestSearchSink_IndexesByLeadID(t *testing.T) {
	var path string
	var indexed map[string]interface{}
	srv := esTestServer(t, http.StatusCreated, func(r *http.Request, doc map[string]interface{}) {
		path = r.URL.Path
		indexed = doc
	})
	defer srv.Close()

	sink := newSearchSink(t, srv.URL, "battlecards")
	card := testCard()
	require.NoError(t, sink.Deliver(context.Background(), card))

	assert.Equal(t, "/battlecards/_doc/"+card.LeadID, path)
	assert.Equal(t, "dev@loom.example", indexed["email"])
	assert.Equal(t, float64(72), indexed["priorityScore"])
}

func TestSearchSink_ErrorStatus(t *testing.T) {
	srv := esTestServer(t, http.StatusInternalServerError, nil)
	defer srv.Close()

	sink := newSearchSink(t, srv.URL, "battlecards")
	err := sink.Deliver(context.Background(), testCard())
	assert.ErrorIs(t, err, ErrSearchIndexFailed)
}

func TestSearchSink_DefaultIndexName(t *testing.T) {
	var path string
	srv := esTestServer(t, http.StatusCreated, func(r *http.Request, _ map[string]interface{}) {
		path = r.URL.Path
	})
	defer srv.Close()

	sink := newSearchSink(t, srv.URL, "")
	require.NoError(t, sink.Deliver(context.Background(), testCard()))
	assert.Contains(t, path, "/battlecards/_doc/")
}
