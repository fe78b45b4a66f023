package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/John-Robertt/linknorm-go/internal/form"
	"github.com/John-Robertt/linknorm-go/internal/link"
	"github.com/John-Robertt/linknorm-go/internal/model"
	"github.com/John-Robertt/linknorm-go/internal/render"
	"github.com/John-Robertt/linknorm-go/internal/schema"
	"github.com/John-Robertt/linknorm-go/internal/validate"
)

type apiHandler struct {
	opt Options
}

type decodeRequest struct {
	Link string `json:"link"`
}

type validateRequest struct {
	Config *model.Config `json:"config"`
}

type buildRequest struct {
	Type   model.ProtocolTag `json:"type"`
	Fields map[string]string `json:"fields"`
}

// normalizeResponse is the shared success shape: the (possibly still
// faulty) record plus its field error map. Errors empty means accepted.
type normalizeResponse struct {
	Config model.Config      `json:"config"`
	Errors model.FieldErrors `json:"errors"`
	Clash  string            `json:"clash,omitempty"`
}

func (h apiHandler) readBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, h.opt.MaxBodyBytes))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return requestError("REQUEST_TOO_LARGE", "请求体过大", "")
		}
		return requestError("INVALID_ARGUMENT", "读取请求体失败", err.Error())
	}
	if len(body) == 0 {
		return requestError("INVALID_ARGUMENT", "请求体不能为空", "expected: JSON object")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return requestError("INVALID_ARGUMENT", "请求体不是合法的 JSON", err.Error())
	}
	return nil
}

// handleDecode: POST /api/link/decode {"link": "..."}.
//
// Only the first non-blank line of the pasted text is interpreted; decode
// failures are terminal (422), validation findings are returned alongside
// the record (200).
func (h apiHandler) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req decodeRequest
	if err := h.readBody(r, &req); err != nil {
		writeErrorFromErr(w, err)
		return
	}
	if strings.TrimSpace(req.Link) == "" {
		writeErrorFromErr(w, requestError("INVALID_ARGUMENT", "link 不能为空", ""))
		return
	}

	cfg, err := link.Decode(req.Link)
	if err != nil {
		var pe *link.ParseError
		if errors.As(err, &pe) {
			linkDecodesTotal.WithLabelValues(labelScheme(pe.AppError.Scheme), "error").Inc()
		}
		writeErrorFromErr(w, err)
		return
	}
	linkDecodesTotal.WithLabelValues(string(cfg.Type), "ok").Inc()

	h.respondNormalized(w, cfg)
}

// handleValidate: POST /api/config/validate {"config": {...}}. The record is
// pruned against the schema registry and validated exhaustively; it is
// echoed back even when faulty so the UI can fix fields incrementally.
func (h apiHandler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := h.readBody(r, &req); err != nil {
		writeErrorFromErr(w, err)
		return
	}
	if req.Config == nil {
		writeErrorFromErr(w, requestError("INVALID_ARGUMENT", "config 不能为空", ""))
		return
	}

	cfg := *req.Config
	schema.Prune(&cfg)
	h.respondNormalized(w, cfg)
}

// handleBuild: POST /api/form/build {"type": "...", "fields": {...}}, the
// discrete-field inbound path.
func (h apiHandler) handleBuild(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := h.readBody(r, &req); err != nil {
		writeErrorFromErr(w, err)
		return
	}
	if req.Type == "" {
		writeErrorFromErr(w, requestError("INVALID_ARGUMENT", "type 不能为空", ""))
		return
	}

	cfg, errs := form.Build(req.Type, req.Fields)
	WriteJSON(w, http.StatusOK, withClash(normalizeResponse{Config: cfg, Errors: errs}))
}

func (h apiHandler) respondNormalized(w http.ResponseWriter, cfg model.Config) {
	errs := validate.Config(&cfg)
	WriteJSON(w, http.StatusOK, withClash(normalizeResponse{Config: cfg, Errors: errs}))
}

// withClash attaches the rendered engine YAML only for accepted records.
func withClash(resp normalizeResponse) normalizeResponse {
	if len(resp.Errors) != 0 {
		return resp
	}
	out, err := render.Clash(&resp.Config)
	if err == nil {
		resp.Clash = out
	}
	return resp
}

func labelScheme(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
