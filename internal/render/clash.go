// Package render turns an accepted canonical record into the mihomo
// (Clash Meta) YAML proxy entry the surrounding console pastes into the
// engine's configuration document. Rendering rejects records that have not
// been through the validator's accept path; it never repairs them.
package render

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/John-Robertt/linknorm-go/internal/model"
)

type RenderError struct {
	AppError model.AppError
	Cause    error
}

func (e *RenderError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *RenderError) Unwrap() error { return e.Cause }

// clashProxy mirrors one entry of the engine's `proxies:` list. Field order
// here is the order mihomo documentation uses, which keeps diffs of the
// rendered document stable.
type clashProxy struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Server   string `yaml:"server"`
	Port     int    `yaml:"port"`
	Cipher   string `yaml:"cipher,omitempty"`
	UUID     string `yaml:"uuid,omitempty"`
	AlterID  *int   `yaml:"alterId,omitempty"`
	Password string `yaml:"password,omitempty"`

	TLS            *bool  `yaml:"tls,omitempty"`
	SkipCertVerify *bool  `yaml:"skip-cert-verify,omitempty"`
	Servername     string `yaml:"servername,omitempty"` // vmess/vless spelling
	SNI            string `yaml:"sni,omitempty"`        // trojan/hysteria/tuic spelling
	UDP            *bool  `yaml:"udp,omitempty"`

	Network  string         `yaml:"network,omitempty"`
	WSOpts   *clashWSOpts   `yaml:"ws-opts,omitempty"`
	GRPCOpts *clashGRPCOpts `yaml:"grpc-opts,omitempty"`
	H2Opts   *clashH2Opts   `yaml:"h2-opts,omitempty"`
	HTTPOpts *clashHTTPOpts `yaml:"http-opts,omitempty"`

	Up           *int   `yaml:"up,omitempty"`
	Down         *int   `yaml:"down,omitempty"`
	Obfs         string `yaml:"obfs,omitempty"`
	ObfsPassword string `yaml:"obfs-password,omitempty"`

	Token                string `yaml:"token,omitempty"`
	CongestionController string `yaml:"congestion-controller,omitempty"`
	UDPRelayMode         string `yaml:"udp-relay-mode,omitempty"`
}

type clashWSOpts struct {
	Path    string            `yaml:"path,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
}

type clashGRPCOpts struct {
	ServiceName string `yaml:"grpc-service-name,omitempty"`
}

type clashH2Opts struct {
	Host []string `yaml:"host,omitempty"`
	Path string   `yaml:"path,omitempty"`
}

type clashHTTPOpts struct {
	Path    []string            `yaml:"path,omitempty"`
	Headers map[string][]string `yaml:"headers,omitempty"`
}

// Clash renders cfg as one YAML mapping (no leading "- "; the caller owns
// list placement inside the engine document).
func Clash(cfg *model.Config) (string, error) {
	if cfg == nil || !model.KnownTag(cfg.Type) {
		tag := ""
		if cfg != nil {
			tag = string(cfg.Type)
		}
		return "", &RenderError{AppError: model.AppError{
			Code:    "RENDER_UNSUPPORTED_TYPE",
			Message: "不支持渲染的协议类型",
			Stage:   "render",
			Snippet: tag,
		}}
	}

	p := clashProxy{
		Name:                 cfg.Name,
		Type:                 string(cfg.Type),
		Server:               cfg.Server,
		Port:                 cfg.Port,
		Cipher:               strings.ToLower(cfg.Cipher),
		UUID:                 cfg.UUID,
		AlterID:              cfg.AlterID,
		Password:             cfg.Password,
		TLS:                  cfg.TLS,
		SkipCertVerify:       cfg.SkipCertVerify,
		UDP:                  cfg.UDP,
		Network:              cfg.Network,
		Up:                   cfg.UpMbps,
		Down:                 cfg.DownMbps,
		Obfs:                 cfg.Obfs,
		ObfsPassword:         cfg.ObfsPassword,
		Token:                cfg.Token,
		CongestionController: cfg.CongestionController,
		UDPRelayMode:         cfg.UDPRelayMode,
	}

	// mihomo spells the TLS server name differently per protocol family.
	switch cfg.Type {
	case model.TagVMess, model.TagVLESS:
		p.Servername = cfg.SNI
	default:
		p.SNI = cfg.SNI
	}

	if cfg.WSOpts != nil {
		p.WSOpts = &clashWSOpts{Path: cfg.WSOpts.Path, Headers: cfg.WSOpts.Headers}
	}
	if cfg.GRPCOpts != nil {
		p.GRPCOpts = &clashGRPCOpts{ServiceName: cfg.GRPCOpts.ServiceName}
	}
	if cfg.H2Opts != nil {
		p.H2Opts = &clashH2Opts{Host: cfg.H2Opts.Host, Path: cfg.H2Opts.Path}
	}
	if cfg.HTTPOpts != nil {
		ho := &clashHTTPOpts{Path: cfg.HTTPOpts.Path, Headers: cfg.HTTPOpts.Headers}
		// mihomo carries the host list inside http-opts headers.
		if len(cfg.HTTPOpts.Host) > 0 {
			if ho.Headers == nil {
				ho.Headers = map[string][]string{}
			}
			if _, ok := ho.Headers["Host"]; !ok {
				ho.Headers["Host"] = cfg.HTTPOpts.Host
			}
		}
		p.HTTPOpts = ho
	}

	out, err := yaml.Marshal(&p)
	if err != nil {
		return "", &RenderError{
			AppError: model.AppError{
				Code:    "RENDER_MARSHAL_ERROR",
				Message: "YAML 序列化失败",
				Stage:   "render",
			},
			Cause: err,
		}
	}
	return string(out), nil
}
