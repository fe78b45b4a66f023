package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/John-Robertt/linknorm-go/internal/model"
)

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) normalizeResponse {
	t.Helper()
	var resp normalizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func errorResponse(t *testing.T, rec *httptest.ResponseRecorder) model.AppError {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	NewMux().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok\n", rec.Body.String())
}

func TestDecode_OK(t *testing.T) {
	rec := postJSON(t, NewMux(), "/api/link/decode", map[string]string{
		"link": "ss://YWVzLTI1Ni1nY206cGFzc3dvcmQ=@example.com:8388#MyNode",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.Equal(t, model.TagSS, resp.Config.Type)
	require.Equal(t, "example.com", resp.Config.Server)
	require.Equal(t, 8388, resp.Config.Port)
	require.Empty(t, resp.Errors)
	require.Contains(t, resp.Clash, "type: ss", "accepted records carry the rendered engine block")
}

func TestDecode_UnsupportedScheme(t *testing.T) {
	rec := postJSON(t, NewMux(), "/api/link/decode", map[string]string{
		"link": "socks5://u:p@h.example.com:1080",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	e := errorResponse(t, rec)
	require.Equal(t, "LINK_UNSUPPORTED_SCHEME", e.Code)
	require.Equal(t, "parse_link", e.Stage)
}

func TestDecode_InvalidLink(t *testing.T) {
	rec := postJSON(t, NewMux(), "/api/link/decode", map[string]string{
		"link": "ss://aes-128-gcm:secret@1.2.3.4:abc",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "SS_LINK_INVALID", errorResponse(t, rec).Code)
}

func TestDecode_RequestShapeErrors(t *testing.T) {
	mux := NewMux()

	rec := postJSON(t, mux, "/api/link/decode", map[string]string{"link": "  "})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/link/decode", strings.NewReader("not json"))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "INVALID_ARGUMENT", errorResponse(t, rr).Code)
}

func TestDecode_ValidationFindingsAreNonTerminal(t *testing.T) {
	// Structurally sound link whose uuid fails the format validator: the
	// record still comes back, with the finding on that field.
	rec := postJSON(t, NewMux(), "/api/link/decode", map[string]string{
		"link": "vless://not-a-uuid@example.com:443",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.Equal(t, "not-a-uuid", resp.Config.UUID)
	require.Equal(t, model.KindFormat, resp.Errors[model.FieldUUID].Kind)
	require.Empty(t, resp.Clash, "faulty records are not rendered")
}

func TestValidate_PrunesAndEchoes(t *testing.T) {
	rec := postJSON(t, NewMux(), "/api/config/validate", map[string]any{
		"config": map[string]any{
			"type":     "ss",
			"name":     "n",
			"server":   "example.com",
			"port":     8388,
			"cipher":   "aes-256-gcm",
			"password": "pw",
			"uuid":     "9d0cb9d1-4f7c-4bbd-9d85-2f31e0e7f5a3",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.Empty(t, resp.Errors)
	require.Empty(t, resp.Config.UUID, "foreign fields are pruned, not validated")
}

func TestValidate_MissingRequired(t *testing.T) {
	rec := postJSON(t, NewMux(), "/api/config/validate", map[string]any{
		"config": map[string]any{
			"type":   "vmess",
			"name":   "n",
			"server": "v.example.com",
			"port":   443,
			"cipher": "auto",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.Len(t, resp.Errors, 1)
	require.Equal(t, model.KindRequired, resp.Errors[model.FieldUUID].Kind)
}

func TestBuild_FormPath(t *testing.T) {
	rec := postJSON(t, NewMux(), "/api/form/build", map[string]any{
		"type": "trojan",
		"fields": map[string]string{
			"name":     "t",
			"server":   "h.example.com",
			"port":     "443",
			"password": "pw",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.Empty(t, resp.Errors)
	require.NotNil(t, resp.Config.TLS)
	require.True(t, *resp.Config.TLS, "trojan seeds tls=true")
}

func TestMetricsEndpoint(t *testing.T) {
	h := NewHandler(Options{})

	// Drive one request through the middleware so counters exist.
	rec := postJSON(t, h, "/api/link/decode", map[string]string{
		"link": "ss://aes-128-gcm:secret@1.2.3.4:443",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mr := httptest.NewRecorder()
	h.ServeHTTP(mr, req)

	require.Equal(t, http.StatusOK, mr.Code)
	require.Contains(t, mr.Body.String(), "linknorm_http_requests_total")
	require.Contains(t, mr.Body.String(), "linknorm_link_decodes_total")
}
