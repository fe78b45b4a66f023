package link

import (
	"strings"

	"github.com/John-Robertt/linknorm-go/internal/model"
)

// decodeTrojan handles "trojan://<password>@host:port?params#name". The
// credential is read from the URL password slot when present, else the
// username slot; both link shapes circulate in the wild.
// TLS defaults to true even without a security param (trojan is
// TLS-by-convention).
func decodeTrojan(line string) (model.Config, error) {
	const scheme = "trojan"

	u, host, port, err := parseStandardURL(scheme, line)
	if err != nil {
		return model.Config{}, err
	}
	q := u.Query()

	cfg := model.Config{
		Type:     model.TagTrojan,
		Name:     fragmentName(u.EscapedFragment(), host),
		Server:   host,
		Port:     port,
		Password: strings.TrimSpace(credential(u)),
	}

	applySecurityParams(&cfg, q, true)
	applyTransportParams(&cfg, q)
	return cfg, nil
}
