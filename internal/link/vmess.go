package link

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/John-Robertt/linknorm-go/internal/model"
)

// decodeVMess handles the de-facto "vmess://<base64(JSON)>" encoding. The
// JSON payload is the loosely specified v2rayN shape: string-or-number
// values, optional keys, and its own protocol default of scy="auto".
func decodeVMess(line string) (model.Config, error) {
	const scheme = "vmess"

	payload := strings.TrimSpace(afterScheme(line))
	if payload == "" {
		return model.Config{}, invalidLink(scheme, "vmess:// 后缺少内容", line, nil)
	}

	raw, err := decodeBase64Loose(payload)
	if err != nil {
		return model.Config{}, invalidLink(scheme, "vmess base64 解码失败", line, err)
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return model.Config{}, invalidLink(scheme, "vmess JSON 解析失败", line, err)
	}

	server := strings.TrimSpace(jsonString(fields, "add"))
	if server == "" {
		return model.Config{}, invalidLink(scheme, "vmess 链接缺少服务器地址（add）", line, nil)
	}
	port, ok := jsonPort(fields, "port")
	if !ok {
		return model.Config{}, invalidLink(scheme, "vmess 端口缺失或不合法（port）", line, nil)
	}

	cfg := model.Config{
		Type:   model.TagVMess,
		Server: server,
		Port:   port,
		UUID:   strings.TrimSpace(jsonString(fields, "id")),
	}

	cfg.Name = strings.TrimSpace(jsonString(fields, "ps"))
	if cfg.Name == "" {
		cfg.Name = server
	}

	// "aid" is parsed only when present and numeric; the schema registry
	// owns the default, not this decoder.
	if aid, ok := jsonInt(fields, "aid"); ok {
		cfg.AlterID = model.IntPtr(aid)
	}

	// The wire format's own default: scy (aka cipher) falls back to "auto".
	cipher := strings.TrimSpace(jsonString(fields, "scy"))
	if cipher == "" {
		cipher = strings.TrimSpace(jsonString(fields, "cipher"))
	}
	if cipher == "" {
		cipher = "auto"
	}
	cfg.Cipher = cipher

	if tlsField, present := fields["tls"]; present {
		cfg.TLS = model.BoolPtr(strings.EqualFold(strings.TrimSpace(asString(tlsField)), "tls"))
	}
	if truthy(jsonString(fields, "allowInsecure")) {
		cfg.SkipCertVerify = model.BoolPtr(true)
	}

	host := strings.TrimSpace(jsonString(fields, "host"))
	path := strings.TrimSpace(jsonString(fields, "path"))

	cfg.SNI = strings.TrimSpace(jsonString(fields, "sni"))
	if cfg.SNI == "" {
		cfg.SNI = host
	}

	if network := strings.TrimSpace(jsonString(fields, "net")); network != "" {
		cfg.Network = network
		switch network {
		case "ws":
			ws := &model.WSOpts{Path: path}
			if host != "" {
				ws.Headers = map[string]string{"Host": host}
			}
			cfg.WSOpts = ws
		case "grpc":
			cfg.GRPCOpts = &model.GRPCOpts{ServiceName: path}
		case "h2":
			h2 := &model.H2Opts{Path: path}
			if host != "" {
				h2.Host = splitCSV(host)
			}
			cfg.H2Opts = h2
		}
	}

	return cfg, nil
}

// truthy follows the vmess JSON convention: "1" or "true".
func truthy(s string) bool {
	s = strings.TrimSpace(s)
	return s == "1" || strings.EqualFold(s, "true")
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// jsonString reads key as a string, coercing JSON numbers; missing or
// non-scalar values yield "".
func jsonString(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	return asString(v)
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// jsonInt reads key as an integer if present and numeric.
func jsonInt(m map[string]any, key string) (int, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || math.IsNaN(t) {
			return 0, false
		}
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// jsonPort reads key as a port number, accepting string or number forms.
func jsonPort(m map[string]any, key string) (int, bool) {
	n, ok := jsonInt(m, key)
	if !ok || n < 1 || n > 65535 {
		return 0, false
	}
	return n, true
}
