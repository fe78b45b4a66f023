package validate

import (
	"strings"

	"github.com/John-Robertt/linknorm-go/internal/model"
	"github.com/John-Robertt/linknorm-go/internal/schema"
)

const (
	msgRequired   = "必填字段不能为空"
	msgPort       = "端口必须在 1-65535 之间"
	msgUUID       = "UUID 格式不合法（应为 8-4-4-4-12）"
	msgDomain     = "必须是域名或 IPv4 地址"
	msgPositive   = "必须是大于 0 的数字"
	msgAlterID    = "alterId 不能为负数"
	msgUnknownTag = "不支持的协议类型"
)

// Field runs the checks for a single canonical field against cfg. It returns
// nil when the field is acceptable. This is the "live" per-edit entry point;
// Config is the exhaustive one used on submission.
func Field(cfg *model.Config, field string) *model.FieldError {
	if cfg == nil {
		return nil
	}
	s, ok := schema.Lookup(cfg.Type)
	if !ok {
		return nil
	}

	if contains(s.Required, field) {
		if empty, checkable := fieldEmpty(cfg, field); checkable && empty {
			return &model.FieldError{Kind: model.KindRequired, Message: msgRequired}
		}
	}
	return formatCheck(cfg, field)
}

// Config runs the exhaustive pass over every required and optional field for
// cfg.Type. It never short-circuits: the caller gets every problem at once.
// The record itself is untouched; validation failures are non-terminal.
func Config(cfg *model.Config) model.FieldErrors {
	errs := make(model.FieldErrors)
	if cfg == nil {
		return errs
	}
	s, ok := schema.Lookup(cfg.Type)
	if !ok {
		errs.Put("type", model.KindFormat, msgUnknownTag)
		return errs
	}

	for _, f := range s.Required {
		if empty, checkable := fieldEmpty(cfg, f); checkable && empty {
			errs.Put(f, model.KindRequired, msgRequired)
			continue
		}
		if fe := formatCheck(cfg, f); fe != nil {
			errs.Put(f, fe.Kind, fe.Message)
		}
	}
	for _, f := range s.Optional {
		if fe := formatCheck(cfg, f); fe != nil {
			errs.Put(f, fe.Kind, fe.Message)
		}
	}
	return errs
}

func contains(fields []string, f string) bool {
	for _, x := range fields {
		if x == f {
			return true
		}
	}
	return false
}

// fieldEmpty reports (empty, checkable). Boolean and structured fields are
// not checkable for emptiness: an unset bool is a default, not a failure.
func fieldEmpty(cfg *model.Config, field string) (bool, bool) {
	switch field {
	case model.FieldName:
		return strings.TrimSpace(cfg.Name) == "", true
	case model.FieldServer:
		return strings.TrimSpace(cfg.Server) == "", true
	case model.FieldPort:
		return cfg.Port == 0, true
	case model.FieldCipher:
		return strings.TrimSpace(cfg.Cipher) == "", true
	case model.FieldPassword:
		return strings.TrimSpace(cfg.Password) == "", true
	case model.FieldUUID:
		return strings.TrimSpace(cfg.UUID) == "", true
	case model.FieldToken:
		return strings.TrimSpace(cfg.Token) == "", true
	}
	return false, false
}

// formatCheck maps a field to its primitive validator. Fields with no
// format-sensitive validator always pass.
func formatCheck(cfg *model.Config, field string) *model.FieldError {
	fail := func(msg string) *model.FieldError {
		return &model.FieldError{Kind: model.KindFormat, Message: msg}
	}
	switch field {
	case model.FieldPort:
		if cfg.Port != 0 && !PortInRange(cfg.Port) {
			return fail(msgPort)
		}
	case model.FieldUUID:
		if cfg.UUID != "" && !IsUUID(cfg.UUID) {
			return fail(msgUUID)
		}
	case model.FieldServer:
		if cfg.Server != "" && !IsDomainOrIPv4(cfg.Server) {
			return fail(msgDomain)
		}
	case model.FieldSNI:
		if cfg.SNI != "" && !IsDomainOrIPv4(cfg.SNI) {
			return fail(msgDomain)
		}
	case model.FieldAlterID:
		if cfg.AlterID != nil && *cfg.AlterID < 0 {
			return fail(msgAlterID)
		}
	case model.FieldUpMbps:
		if cfg.UpMbps != nil && *cfg.UpMbps <= 0 {
			return fail(msgPositive)
		}
	case model.FieldDownMbps:
		if cfg.DownMbps != nil && *cfg.DownMbps <= 0 {
			return fail(msgPositive)
		}
	}
	return nil
}
