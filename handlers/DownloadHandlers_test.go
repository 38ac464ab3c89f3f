package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadQuotation(t *testing.T) {
	r, store, _ := newTestApp(t)
	require.NoError(t, store.EnsureDir("Jane_Doe"))
	rel := filepath.Join("Jane_Doe", "Q-123_Acme.pdf")
	require.NoError(t, store.Put(rel, []byte("%PDF-1.4 content")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download?file=Jane_Doe/Q-123_Acme.pdf", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "%PDF-1.4 content", w.Body.String())
}

func TestDownloadMissingParam(t *testing.T) {
	r, _, _ := newTestApp(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadUnknownFile(t *testing.T) {
	r, _, _ := newTestApp(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download?file=Jane_Doe/Q-999_Acme.pdf", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadRejectsTraversal(t *testing.T) {
	r, _, _ := newTestApp(t)

	for _, path := range []string{
		"../../etc/passwd",
		"..%2F..%2Fetc%2Fpasswd",
		"Jane_Doe/../../secret.pdf",
		"/etc/passwd",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download?file="+path, nil))
		assert.NotEqual(t, http.StatusOK, w.Code, "path %q must not be served", path)
	}
}
