package link

import (
	"strings"

	"github.com/John-Robertt/linknorm-go/internal/model"
)

// decodeTUIC handles "tuic://<uuid>:<password>@host:port?params#name"
// (TUIC v5). The v4 token, when present, arrives as a query param.
func decodeTUIC(line string) (model.Config, error) {
	const scheme = "tuic"

	u, host, port, err := parseStandardURL(scheme, line)
	if err != nil {
		return model.Config{}, err
	}
	q := u.Query()

	cfg := model.Config{
		Type:   model.TagTUIC,
		Name:   fragmentName(u.EscapedFragment(), host),
		Server: host,
		Port:   port,
		// QUIC transport, always encrypted.
		TLS: model.BoolPtr(true),
	}
	if u.User != nil {
		cfg.UUID = strings.TrimSpace(u.User.Username())
		if pw, ok := u.User.Password(); ok {
			cfg.Password = strings.TrimSpace(pw)
		}
	}

	cfg.SNI = queryFirst(q, "sni")
	cfg.Token = queryFirst(q, "token")
	cfg.CongestionController = queryFirst(q, "congestion_control", "congestion_controller")
	cfg.UDPRelayMode = queryFirst(q, "udp_relay_mode")
	if queryTruthy(q, "insecure", "allow_insecure", "allowInsecure") {
		cfg.SkipCertVerify = model.BoolPtr(true)
	}

	return cfg, nil
}
