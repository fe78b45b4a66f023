package link

import (
	"strings"

	"github.com/John-Robertt/linknorm-go/internal/model"
)

// decodeHysteria handles hysteria://, hysteria2:// and the hy2:// alias
// (normalized to the canonical hysteria2 tag). The protocol always
// encrypts, so tls is unconditionally true.
func decodeHysteria(line string) (model.Config, error) {
	rawScheme, _, _ := strings.Cut(line, "://")
	scheme := strings.ToLower(strings.TrimSpace(rawScheme))

	tag := model.ProtocolTag(scheme)
	if scheme == "hy2" {
		tag = model.TagHysteria2
	}

	u, host, port, err := parseStandardURL(string(tag), line)
	if err != nil {
		return model.Config{}, err
	}
	q := u.Query()

	cfg := model.Config{
		Type:     tag,
		Name:     fragmentName(u.EscapedFragment(), host),
		Server:   host,
		Port:     port,
		Password: strings.TrimSpace(credential(u)),
		TLS:      model.BoolPtr(true),
	}

	if queryTruthy(q, "insecure") {
		cfg.SkipCertVerify = model.BoolPtr(true)
	}
	cfg.SNI = queryFirst(q, "sni", "peer")

	switch tag {
	case model.TagHysteria:
		if up, ok := queryInt(q, "upmbps", "up"); ok {
			cfg.UpMbps = model.IntPtr(up)
		}
		if down, ok := queryInt(q, "downmbps", "down"); ok {
			cfg.DownMbps = model.IntPtr(down)
		}
		cfg.Obfs = queryFirst(q, "obfs")
	case model.TagHysteria2:
		cfg.Obfs = queryFirst(q, "obfs")
		cfg.ObfsPassword = queryFirst(q, "obfs-password")
	}

	return cfg, nil
}
