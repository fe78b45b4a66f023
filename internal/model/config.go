package model

// ProtocolTag identifies one supported proxy protocol. The set is closed;
// the schema registry has exactly one entry per tag.
type ProtocolTag string

const (
	TagSS        ProtocolTag = "ss"
	TagVMess     ProtocolTag = "vmess"
	TagVLESS     ProtocolTag = "vless"
	TagTrojan    ProtocolTag = "trojan"
	TagHysteria  ProtocolTag = "hysteria"
	TagHysteria2 ProtocolTag = "hysteria2"
	TagTUIC      ProtocolTag = "tuic"
)

// Tags lists every supported protocol in a stable order.
func Tags() []ProtocolTag {
	return []ProtocolTag{TagSS, TagVMess, TagVLESS, TagTrojan, TagHysteria, TagHysteria2, TagTUIC}
}

// KnownTag reports whether t is one of the supported protocols.
func KnownTag(t ProtocolTag) bool {
	switch t {
	case TagSS, TagVMess, TagVLESS, TagTrojan, TagHysteria, TagHysteria2, TagTUIC:
		return true
	}
	return false
}

// Canonical field names. Decoders, the schema registry and the validator all
// address fields by these strings so an error map can be keyed consistently.
const (
	FieldName                 = "name"
	FieldServer               = "server"
	FieldPort                 = "port"
	FieldCipher               = "cipher"
	FieldPassword             = "password"
	FieldUUID                 = "uuid"
	FieldAlterID              = "alterId"
	FieldNetwork              = "network"
	FieldTLS                  = "tls"
	FieldSkipCertVerify       = "skipCertVerify"
	FieldSNI                  = "sni"
	FieldUDP                  = "udp"
	FieldWSPath               = "wsPath"
	FieldWSHeaders            = "wsHeaders"
	FieldGRPCServiceName      = "grpcServiceName"
	FieldH2Host               = "h2Host"
	FieldH2Path               = "h2Path"
	FieldHTTPHost             = "httpHost"
	FieldHTTPPath             = "httpPath"
	FieldHTTPHeaders          = "httpHeaders"
	FieldUpMbps               = "upMbps"
	FieldDownMbps             = "downMbps"
	FieldObfs                 = "obfs"
	FieldObfsPassword         = "obfsPassword"
	FieldToken                = "token"
	FieldCongestionController = "congestionController"
	FieldUDPRelayMode         = "udpRelayMode"
)

// WSOpts carries WebSocket transport settings (network == "ws").
type WSOpts struct {
	Path    string            `json:"path,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// GRPCOpts carries gRPC transport settings (network == "grpc").
type GRPCOpts struct {
	ServiceName string `json:"serviceName,omitempty"`
}

// H2Opts carries HTTP/2 transport settings (network == "h2").
type H2Opts struct {
	Host []string `json:"host,omitempty"`
	Path string   `json:"path,omitempty"`
}

// HTTPOpts carries plain-HTTP transport settings (network == "http").
type HTTPOpts struct {
	Host    []string            `json:"host,omitempty"`
	Path    []string            `json:"path,omitempty"`
	Headers map[string][]string `json:"headers,omitempty"`
}

// Config is the canonical proxy configuration record: one struct for all
// protocols, with every protocol-conditional field optional. Whether a field
// may appear on a record of a given Type is schema-registry metadata, not a
// property of the struct itself.
//
// Pointer scalars distinguish "unset" from a legitimate zero so registry
// defaults are applied exactly once and never overwrite a decoded value
// (e.g. a VMess link that really says aid=0).
//
// A Config is built fresh per decode-or-edit operation and treated as
// immutable once accepted; edits go through the pipeline again.
type Config struct {
	Name   string      `json:"name"`
	Type   ProtocolTag `json:"type"`
	Server string      `json:"server"`
	Port   int         `json:"port"`

	Cipher         string `json:"cipher,omitempty"`
	Password       string `json:"password,omitempty"`
	UUID           string `json:"uuid,omitempty"`
	AlterID        *int   `json:"alterId,omitempty"`
	Network        string `json:"network,omitempty"`
	TLS            *bool  `json:"tls,omitempty"`
	SkipCertVerify *bool  `json:"skipCertVerify,omitempty"`
	SNI            string `json:"sni,omitempty"`
	UDP            *bool  `json:"udp,omitempty"`

	WSOpts   *WSOpts   `json:"wsOpts,omitempty"`
	GRPCOpts *GRPCOpts `json:"grpcOpts,omitempty"`
	H2Opts   *H2Opts   `json:"h2Opts,omitempty"`
	HTTPOpts *HTTPOpts `json:"httpOpts,omitempty"`

	// Hysteria / Hysteria2 extras.
	UpMbps       *int   `json:"upMbps,omitempty"`
	DownMbps     *int   `json:"downMbps,omitempty"`
	Obfs         string `json:"obfs,omitempty"`
	ObfsPassword string `json:"obfsPassword,omitempty"`

	// TUIC extras.
	Token                string `json:"token,omitempty"`
	CongestionController string `json:"congestionController,omitempty"`
	UDPRelayMode         string `json:"udpRelayMode,omitempty"`
}

// BoolPtr, IntPtr are tiny helpers for the pointer-scalar fields.
func BoolPtr(b bool) *bool { return &b }
func IntPtr(n int) *int    { return &n }
