package link

import (
	"net/url"
	"strings"

	"github.com/John-Robertt/linknorm-go/internal/model"
)

// decodeVLESS handles "vless://<uuid>@host:port?params#name".
func decodeVLESS(line string) (model.Config, error) {
	const scheme = "vless"

	u, host, port, err := parseStandardURL(scheme, line)
	if err != nil {
		return model.Config{}, err
	}
	q := u.Query()

	cfg := model.Config{
		Type:   model.TagVLESS,
		Name:   fragmentName(u.EscapedFragment(), host),
		Server: host,
		Port:   port,
	}
	if u.User != nil {
		cfg.UUID = strings.TrimSpace(u.User.Username())
	}

	applySecurityParams(&cfg, q, false)
	applyTransportParams(&cfg, q)
	return cfg, nil
}

// applySecurityParams reads the query params shared by vless and trojan.
// "security" drives tls: anything other than absent/"none" means on.
// trojanDefault keeps trojan's TLS-by-convention when security is absent.
func applySecurityParams(cfg *model.Config, q url.Values, trojanDefault bool) {
	switch security := strings.ToLower(queryFirst(q, "security")); {
	case security == "none":
		cfg.TLS = model.BoolPtr(false)
	case security != "":
		cfg.TLS = model.BoolPtr(true)
	case trojanDefault:
		cfg.TLS = model.BoolPtr(true)
	}

	// Both spellings of the insecure flag are accepted.
	if queryTruthy(q, "insecure", "allowInsecure") {
		cfg.SkipCertVerify = model.BoolPtr(true)
	}

	cfg.SNI = queryFirst(q, "sni", "peer", "servername")
}

// applyTransportParams reads "type" (the transport tag) plus the transport's
// own params.
func applyTransportParams(cfg *model.Config, q url.Values) {
	network := strings.ToLower(queryFirst(q, "type"))
	if network == "" {
		return
	}
	cfg.Network = network

	host := queryFirst(q, "host")
	path := queryFirst(q, "path")

	switch network {
	case "ws":
		ws := &model.WSOpts{Path: path}
		if host != "" {
			ws.Headers = map[string]string{"Host": host}
		}
		cfg.WSOpts = ws
	case "grpc":
		cfg.GRPCOpts = &model.GRPCOpts{ServiceName: queryFirst(q, "serviceName", "path")}
	case "h2":
		h2 := &model.H2Opts{Path: path}
		if host != "" {
			h2.Host = splitCSV(host)
		}
		cfg.H2Opts = h2
	}
}
