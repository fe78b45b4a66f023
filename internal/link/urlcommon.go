package link

import (
	"net/url"
	"strconv"
	"strings"
)

// parseStandardURL parses the schemes that use ordinary URI syntax
// (vless/trojan/hysteria/tuic) and enforces the shared minimum: a host and
// a numeric in-range port.
func parseStandardURL(scheme, line string) (*url.URL, string, int, error) {
	u, err := url.Parse(line)
	if err != nil {
		return nil, "", 0, invalidLink(scheme, "链接不是合法的 URI", line, err)
	}
	host := strings.TrimSpace(u.Hostname())
	if host == "" {
		return nil, "", 0, invalidLink(scheme, "链接缺少服务器地址", line, nil)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil || port < 1 || port > 65535 {
		return nil, "", 0, invalidLink(scheme, "链接端口缺失或不合法", line, nil)
	}
	return u, host, port, nil
}

// queryFirst returns the first non-empty value among keys, in order. This is
// how priority chains like sni > peer > servername are expressed.
func queryFirst(q url.Values, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			return v
		}
	}
	return ""
}

// credential returns the link's credential, preferring the URL password slot
// and falling back to the username slot. Both placements are seen in the
// wild for trojan and hysteria links.
func credential(u *url.URL) string {
	if u.User == nil {
		return ""
	}
	if pw, ok := u.User.Password(); ok && pw != "" {
		return pw
	}
	return u.User.Username()
}

// queryTruthy follows the query-param convention for boolean flags.
func queryTruthy(q url.Values, keys ...string) bool {
	return truthy(queryFirst(q, keys...))
}

// queryInt parses the first key present as an integer.
func queryInt(q url.Values, keys ...string) (int, bool) {
	s := queryFirst(q, keys...)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
