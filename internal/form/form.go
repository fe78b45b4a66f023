// Package form is the discrete-field inbound path: it takes the string
// fields a settings form submits, coerces them into a canonical record and
// reports every problem field-by-field. It is the counterpart of the link
// decoders for hand-entered configuration.
package form

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/John-Robertt/linknorm-go/internal/model"
	"github.com/John-Robertt/linknorm-go/internal/schema"
	"github.com/John-Robertt/linknorm-go/internal/validate"
)

const (
	msgInteger = "必须是整数"
	msgBool    = "必须是 true/false"
	msgJSON    = "必须是合法的 JSON 对象"
)

// Build seeds a record with the protocol's defaults, overlays the supplied
// fields and runs the exhaustive validator. Unknown field names are ignored;
// fields the protocol does not list are pruned (cross-contamination guard).
//
// The record is returned even when errs is non-empty so the caller can let
// the user fix fields incrementally. errs empty means accepted.
func Build(tag model.ProtocolTag, fields map[string]string) (model.Config, model.FieldErrors) {
	errs := make(model.FieldErrors)
	cfg := schema.Seed(tag)
	if !model.KnownTag(tag) {
		errs.Put("type", model.KindFormat, "不支持的协议类型")
		return cfg, errs
	}

	for field, raw := range fields {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue // empty input keeps the seeded default
		}
		if !schema.Allowed(tag, field) {
			continue
		}
		if fe := setField(&cfg, field, raw); fe != nil {
			errs.Put(field, fe.Kind, fe.Message)
		}
	}

	schema.Prune(&cfg)
	errs.Merge(validate.Config(&cfg))
	return cfg, errs
}

// setField coerces one raw form value onto the record. A coercion failure is
// a Format error on that field alone; the rest of the record is unaffected.
func setField(cfg *model.Config, field, raw string) *model.FieldError {
	formatErr := func(msg string) *model.FieldError {
		return &model.FieldError{Kind: model.KindFormat, Message: msg}
	}

	switch field {
	case model.FieldName:
		cfg.Name = raw
	case model.FieldServer:
		cfg.Server = raw
	case model.FieldPort:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return formatErr(msgInteger)
		}
		cfg.Port = n
	case model.FieldCipher:
		cfg.Cipher = raw
	case model.FieldPassword:
		cfg.Password = raw
	case model.FieldUUID:
		cfg.UUID = raw
	case model.FieldAlterID:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return formatErr(msgInteger)
		}
		cfg.AlterID = model.IntPtr(n)
	case model.FieldNetwork:
		cfg.Network = strings.ToLower(raw)
	case model.FieldTLS:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return formatErr(msgBool)
		}
		cfg.TLS = model.BoolPtr(b)
	case model.FieldSkipCertVerify:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return formatErr(msgBool)
		}
		cfg.SkipCertVerify = model.BoolPtr(b)
	case model.FieldUDP:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return formatErr(msgBool)
		}
		cfg.UDP = model.BoolPtr(b)
	case model.FieldSNI:
		cfg.SNI = raw
	case model.FieldWSPath:
		ensureWS(cfg).Path = raw
	case model.FieldWSHeaders:
		// Header maps arrive as JSON text; empty means "no value supplied"
		// (handled by the raw=="" skip above), invalid JSON is reported.
		if !validate.IsJSONText(raw) {
			return formatErr(msgJSON)
		}
		var headers map[string]string
		if err := json.Unmarshal([]byte(raw), &headers); err != nil {
			return formatErr(msgJSON)
		}
		ensureWS(cfg).Headers = headers
	case model.FieldGRPCServiceName:
		cfg.GRPCOpts = &model.GRPCOpts{ServiceName: raw}
	case model.FieldH2Host:
		ensureH2(cfg).Host = splitList(raw)
	case model.FieldH2Path:
		ensureH2(cfg).Path = raw
	case model.FieldHTTPHost:
		ensureHTTP(cfg).Host = splitList(raw)
	case model.FieldHTTPPath:
		ensureHTTP(cfg).Path = splitList(raw)
	case model.FieldHTTPHeaders:
		if !validate.IsJSONText(raw) {
			return formatErr(msgJSON)
		}
		var headers map[string][]string
		if err := json.Unmarshal([]byte(raw), &headers); err != nil {
			return formatErr(msgJSON)
		}
		ensureHTTP(cfg).Headers = headers
	case model.FieldUpMbps:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return formatErr(msgInteger)
		}
		cfg.UpMbps = model.IntPtr(n)
	case model.FieldDownMbps:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return formatErr(msgInteger)
		}
		cfg.DownMbps = model.IntPtr(n)
	case model.FieldObfs:
		cfg.Obfs = raw
	case model.FieldObfsPassword:
		cfg.ObfsPassword = raw
	case model.FieldToken:
		cfg.Token = raw
	case model.FieldCongestionController:
		cfg.CongestionController = raw
	case model.FieldUDPRelayMode:
		cfg.UDPRelayMode = raw
	}
	return nil
}

func ensureWS(cfg *model.Config) *model.WSOpts {
	if cfg.WSOpts == nil {
		cfg.WSOpts = &model.WSOpts{}
	}
	return cfg.WSOpts
}

func ensureH2(cfg *model.Config) *model.H2Opts {
	if cfg.H2Opts == nil {
		cfg.H2Opts = &model.H2Opts{}
	}
	return cfg.H2Opts
}

func ensureHTTP(cfg *model.Config) *model.HTTPOpts {
	if cfg.HTTPOpts == nil {
		cfg.HTTPOpts = &model.HTTPOpts{}
	}
	return cfg.HTTPOpts
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
