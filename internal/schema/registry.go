// Package schema holds the protocol schema registry: a compiled-in table,
// one entry per supported protocol, declaring which canonical fields are
// required, which are optional, and which defaults to seed when a protocol
// is first selected. It is the single source of truth for "does this
// protocol use this field"; decoders and the validator both consult it.
package schema

import "github.com/John-Robertt/linknorm-go/internal/model"

// Schema is one registry entry. Required/Optional name canonical fields
// (model.Field* constants). Defaults is applied by Seed only; nothing else
// in the pipeline invents defaults.
type Schema struct {
	Required []string
	Optional []string
	Defaults model.Config
}

// name/server/port are mandatory for every protocol regardless of entry.
var baseRequired = []string{model.FieldName, model.FieldServer, model.FieldPort}

var registry = map[model.ProtocolTag]Schema{
	model.TagSS: {
		Required: []string{model.FieldCipher, model.FieldPassword},
		Optional: []string{model.FieldUDP},
		Defaults: model.Config{Cipher: "aes-256-gcm"},
	},
	model.TagVMess: {
		Required: []string{model.FieldUUID, model.FieldCipher},
		Optional: []string{
			model.FieldAlterID, model.FieldNetwork, model.FieldTLS,
			model.FieldSkipCertVerify, model.FieldSNI, model.FieldUDP,
			model.FieldWSPath, model.FieldWSHeaders,
			model.FieldGRPCServiceName,
			model.FieldH2Host, model.FieldH2Path,
			model.FieldHTTPHost, model.FieldHTTPPath, model.FieldHTTPHeaders,
		},
		Defaults: model.Config{
			Cipher:  "auto",
			Network: "tcp",
			AlterID: model.IntPtr(0),
		},
	},
	model.TagVLESS: {
		Required: []string{model.FieldUUID},
		Optional: []string{
			model.FieldNetwork, model.FieldTLS, model.FieldSkipCertVerify,
			model.FieldSNI, model.FieldUDP,
			model.FieldWSPath, model.FieldWSHeaders,
			model.FieldGRPCServiceName,
			model.FieldH2Host, model.FieldH2Path,
		},
		Defaults: model.Config{Network: "tcp"},
	},
	model.TagTrojan: {
		Required: []string{model.FieldPassword},
		Optional: []string{
			model.FieldNetwork, model.FieldTLS, model.FieldSkipCertVerify,
			model.FieldSNI, model.FieldUDP,
			model.FieldWSPath, model.FieldWSHeaders,
			model.FieldGRPCServiceName,
		},
		// Trojan is TLS-by-convention.
		Defaults: model.Config{TLS: model.BoolPtr(true)},
	},
	model.TagHysteria: {
		// Password (auth) is optional in hysteria v1.
		Optional: []string{
			model.FieldPassword, model.FieldTLS, model.FieldSkipCertVerify,
			model.FieldSNI, model.FieldUDP,
			model.FieldUpMbps, model.FieldDownMbps, model.FieldObfs,
		},
		Defaults: model.Config{TLS: model.BoolPtr(true), UDP: model.BoolPtr(true)},
	},
	model.TagHysteria2: {
		Optional: []string{
			model.FieldPassword, model.FieldTLS, model.FieldSkipCertVerify,
			model.FieldSNI, model.FieldUDP,
			model.FieldUpMbps, model.FieldDownMbps,
			model.FieldObfs, model.FieldObfsPassword,
		},
		Defaults: model.Config{TLS: model.BoolPtr(true), UDP: model.BoolPtr(true)},
	},
	model.TagTUIC: {
		Required: []string{model.FieldUUID, model.FieldPassword},
		Optional: []string{
			model.FieldToken, model.FieldTLS, model.FieldSkipCertVerify,
			model.FieldSNI, model.FieldUDP,
			model.FieldCongestionController, model.FieldUDPRelayMode,
		},
		Defaults: model.Config{TLS: model.BoolPtr(true), UDP: model.BoolPtr(true)},
	},
}

// Lookup returns the registry entry for tag. Required includes the base
// fields (name/server/port) so callers can iterate one list.
func Lookup(tag model.ProtocolTag) (Schema, bool) {
	s, ok := registry[tag]
	if !ok {
		return Schema{}, false
	}
	req := make([]string, 0, len(baseRequired)+len(s.Required))
	req = append(req, baseRequired...)
	req = append(req, s.Required...)
	s.Required = req
	return s, true
}

// Allowed reports whether field may appear on a record of the given type.
func Allowed(tag model.ProtocolTag, field string) bool {
	s, ok := Lookup(tag)
	if !ok {
		return false
	}
	for _, f := range s.Required {
		if f == field {
			return true
		}
	}
	for _, f := range s.Optional {
		if f == field {
			return true
		}
	}
	return false
}

// Seed returns a fresh record for tag with that protocol's defaults applied.
// This is the only place defaults are applied.
func Seed(tag model.ProtocolTag) model.Config {
	cfg := model.Config{Type: tag}
	s, ok := registry[tag]
	if !ok {
		return cfg
	}
	d := s.Defaults
	if d.Cipher != "" {
		cfg.Cipher = d.Cipher
	}
	if d.Network != "" {
		cfg.Network = d.Network
	}
	if d.AlterID != nil {
		cfg.AlterID = model.IntPtr(*d.AlterID)
	}
	if d.TLS != nil {
		cfg.TLS = model.BoolPtr(*d.TLS)
	}
	if d.UDP != nil {
		cfg.UDP = model.BoolPtr(*d.UDP)
	}
	return cfg
}

// Prune clears every field the registry does not list for cfg.Type. This is
// what keeps a uuid from leaking into an ss record when the user flips the
// protocol selector on an existing form.
func Prune(cfg *model.Config) {
	if cfg == nil {
		return
	}
	tag := cfg.Type
	if !Allowed(tag, model.FieldCipher) {
		cfg.Cipher = ""
	}
	if !Allowed(tag, model.FieldPassword) {
		cfg.Password = ""
	}
	if !Allowed(tag, model.FieldUUID) {
		cfg.UUID = ""
	}
	if !Allowed(tag, model.FieldAlterID) {
		cfg.AlterID = nil
	}
	if !Allowed(tag, model.FieldNetwork) {
		cfg.Network = ""
	}
	if !Allowed(tag, model.FieldTLS) {
		cfg.TLS = nil
	}
	if !Allowed(tag, model.FieldSkipCertVerify) {
		cfg.SkipCertVerify = nil
	}
	if !Allowed(tag, model.FieldSNI) {
		cfg.SNI = ""
	}
	if !Allowed(tag, model.FieldUDP) {
		cfg.UDP = nil
	}
	// Transport opts additionally require the matching network selection.
	if !Allowed(tag, model.FieldWSPath) || cfg.Network != "ws" {
		cfg.WSOpts = nil
	}
	if !Allowed(tag, model.FieldGRPCServiceName) || cfg.Network != "grpc" {
		cfg.GRPCOpts = nil
	}
	if !Allowed(tag, model.FieldH2Host) || cfg.Network != "h2" {
		cfg.H2Opts = nil
	}
	if !Allowed(tag, model.FieldHTTPHost) || cfg.Network != "http" {
		cfg.HTTPOpts = nil
	}
	if !Allowed(tag, model.FieldUpMbps) {
		cfg.UpMbps = nil
	}
	if !Allowed(tag, model.FieldDownMbps) {
		cfg.DownMbps = nil
	}
	if !Allowed(tag, model.FieldObfs) {
		cfg.Obfs = ""
	}
	if !Allowed(tag, model.FieldObfsPassword) {
		cfg.ObfsPassword = ""
	}
	if !Allowed(tag, model.FieldToken) {
		cfg.Token = ""
	}
	if !Allowed(tag, model.FieldCongestionController) {
		cfg.CongestionController = ""
	}
	if !Allowed(tag, model.FieldUDPRelayMode) {
		cfg.UDPRelayMode = ""
	}
}
