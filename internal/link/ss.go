package link

import (
	"errors"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/John-Robertt/linknorm-go/internal/model"
)

var (
	errEmptyHost = errors.New("empty host")
	errPortRange = errors.New("port out of range")
)

// afterScheme returns everything past "scheme://", case-insensitively.
func afterScheme(s string) string {
	idx := strings.Index(s, "://")
	if idx < 0 {
		return ""
	}
	return s[idx+3:]
}

// decodeSS handles both legacy Shadowsocks encodings:
//
//	Form A: ss://<userinfo>@host:port[#name]   userinfo = "method:password"
//	        in plaintext or base64url; plaintext is tried first (a ':' in
//	        the raw userinfo decides).
//	Form B: ss://<base64url(method:password@host:port)>[#name]
//
// A SIP002 "?plugin=..." query is tolerated and ignored; plugins are not
// part of the canonical record.
func decodeSS(line string) (model.Config, error) {
	const scheme = "ss"

	withoutFrag, frag, _ := strings.Cut(line, "#")
	withoutQuery, _, _ := strings.Cut(withoutFrag, "?")

	rest := afterScheme(withoutQuery)
	if rest == "" {
		return model.Config{}, invalidLink(scheme, "ss:// 后缺少内容", line, nil)
	}

	var method, password, hostPort string

	if userinfo, hostPart, hasAt := strings.Cut(rest, "@"); hasAt {
		// Form A. Plaintext first: a ':' in the raw userinfo means it is
		// already "method:password"; otherwise it must be base64url.
		if strings.Contains(userinfo, ":") {
			method, password, _ = cutNonEmpty(userinfo, ":")
		} else {
			decoded, err := decodeBase64LooseString(userinfo)
			if err != nil {
				return model.Config{}, invalidLink(scheme, "ss userinfo base64 解码失败", line, err)
			}
			method, password, _ = cutNonEmpty(decoded, ":")
		}
		hostPort = strings.TrimSuffix(hostPart, "/")
	} else {
		// Form B: the whole authority is base64url.
		decoded, err := decodeBase64LooseString(rest)
		if err != nil {
			return model.Config{}, invalidLink(scheme, "ss base64 解码失败", line, err)
		}
		at := strings.LastIndex(decoded, "@")
		if at < 0 {
			return model.Config{}, invalidLink(scheme, "ss base64 解码结果缺少 @ 分隔符", line, nil)
		}
		method, password, _ = cutNonEmpty(decoded[:at], ":")
		hostPort = decoded[at+1:]
	}

	if method == "" {
		return model.Config{}, invalidLink(scheme, "ss 链接缺少 cipher:password", line, nil)
	}

	server, port, err := splitHostPort(hostPort)
	if err != nil {
		return model.Config{}, invalidLink(scheme, "服务器地址或端口不合法", line, err)
	}

	return model.Config{
		Type:     model.TagSS,
		Name:     fragmentName(frag, server),
		Server:   server,
		Port:     port,
		Cipher:   method,
		Password: password,
	}, nil
}

// cutNonEmpty cuts s at the first sep and trims both halves.
func cutNonEmpty(s, sep string) (string, string, bool) {
	a, b, ok := strings.Cut(s, sep)
	return strings.TrimSpace(a), strings.TrimSpace(b), ok
}

func splitHostPort(s string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(strings.TrimSpace(s))
	if err != nil {
		return "", 0, err
	}
	host = strings.TrimSpace(host)
	if host == "" {
		return "", 0, errEmptyHost
	}
	port, err := strconv.Atoi(strings.TrimSpace(portStr))
	if err != nil {
		return "", 0, err
	}
	if port < 1 || port > 65535 {
		return "", 0, errPortRange
	}
	return host, port, nil
}

// fragmentName percent-decodes a #fragment display name, falling back to the
// server when the fragment is absent or undecodable.
func fragmentName(frag, server string) string {
	if frag == "" {
		return server
	}
	decoded, err := url.PathUnescape(frag)
	if err != nil {
		return server
	}
	decoded = strings.TrimSpace(decoded)
	if decoded == "" {
		return server
	}
	return decoded
}
