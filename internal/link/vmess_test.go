package link

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/John-Robertt/linknorm-go/internal/model"
)

func vmessLink(t *testing.T, fields map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(fields)
	require.NoError(t, err)
	return "vmess://" + base64.StdEncoding.EncodeToString(raw)
}

func TestDecodeVMess_WS_TLS(t *testing.T) {
	link := vmessLink(t, map[string]any{
		"ps":   "My VMess",
		"add":  "v.example.com",
		"port": "443",
		"id":   "9d0cb9d1-4f7c-4bbd-9d85-2f31e0e7f5a3",
		"aid":  "0",
		"net":  "ws",
		"path": "/ws",
		"host": "cdn.example.com",
		"tls":  "tls",
	})

	cfg, err := Decode(link)
	require.NoError(t, err)

	require.Equal(t, model.TagVMess, cfg.Type)
	require.Equal(t, "My VMess", cfg.Name)
	require.Equal(t, "v.example.com", cfg.Server)
	require.Equal(t, 443, cfg.Port)
	require.Equal(t, "9d0cb9d1-4f7c-4bbd-9d85-2f31e0e7f5a3", cfg.UUID)
	require.Equal(t, "ws", cfg.Network)
	require.NotNil(t, cfg.TLS)
	require.True(t, *cfg.TLS)
	// JSON omitted scy: the wire format's own default applies.
	require.Equal(t, "auto", cfg.Cipher)
	require.NotNil(t, cfg.AlterID)
	require.Equal(t, 0, *cfg.AlterID)
	require.NotNil(t, cfg.WSOpts)
	require.Equal(t, "/ws", cfg.WSOpts.Path)
	require.Equal(t, "cdn.example.com", cfg.WSOpts.Headers["Host"])
	// sni falls back to host.
	require.Equal(t, "cdn.example.com", cfg.SNI)
}

func TestDecodeVMess_NumericPortAndAid(t *testing.T) {
	link := vmessLink(t, map[string]any{
		"add":  "v.example.com",
		"port": 8443,
		"id":   "9d0cb9d1-4f7c-4bbd-9d85-2f31e0e7f5a3",
		"aid":  4,
	})

	cfg, err := Decode(link)
	require.NoError(t, err)
	require.Equal(t, 8443, cfg.Port)
	require.NotNil(t, cfg.AlterID)
	require.Equal(t, 4, *cfg.AlterID)
	// Name falls back to the server when ps is absent.
	require.Equal(t, "v.example.com", cfg.Name)
}

func TestDecodeVMess_AidAbsentStaysUnset(t *testing.T) {
	link := vmessLink(t, map[string]any{
		"add":  "v.example.com",
		"port": "443",
		"id":   "9d0cb9d1-4f7c-4bbd-9d85-2f31e0e7f5a3",
	})

	cfg, err := Decode(link)
	require.NoError(t, err)
	// The registry owns the alterId default, not the decoder.
	require.Nil(t, cfg.AlterID)
}

func TestDecodeVMess_TLSFieldVariants(t *testing.T) {
	cases := []struct {
		tls  any
		want *bool
	}{
		{"tls", model.BoolPtr(true)},
		{"TLS", model.BoolPtr(true)},
		{"none", model.BoolPtr(false)},
		{"", model.BoolPtr(false)},
		{nil, nil},
	}
	for _, c := range cases {
		fields := map[string]any{
			"add":  "v.example.com",
			"port": "443",
			"id":   "9d0cb9d1-4f7c-4bbd-9d85-2f31e0e7f5a3",
		}
		if c.tls != nil {
			fields["tls"] = c.tls
		}
		cfg, err := Decode(vmessLink(t, fields))
		require.NoError(t, err)
		if c.want == nil {
			require.Nil(t, cfg.TLS, "tls=%v", c.tls)
		} else {
			require.NotNil(t, cfg.TLS, "tls=%v", c.tls)
			require.Equal(t, *c.want, *cfg.TLS, "tls=%v", c.tls)
		}
	}
}

func TestDecodeVMess_ScyWins(t *testing.T) {
	cfg, err := Decode(vmessLink(t, map[string]any{
		"add":  "v.example.com",
		"port": "443",
		"id":   "9d0cb9d1-4f7c-4bbd-9d85-2f31e0e7f5a3",
		"scy":  "chacha20-poly1305",
	}))
	require.NoError(t, err)
	require.Equal(t, "chacha20-poly1305", cfg.Cipher)
}

func TestDecodeVMess_AllowInsecure(t *testing.T) {
	cfg, err := Decode(vmessLink(t, map[string]any{
		"add":           "v.example.com",
		"port":          "443",
		"id":            "9d0cb9d1-4f7c-4bbd-9d85-2f31e0e7f5a3",
		"allowInsecure": "1",
	}))
	require.NoError(t, err)
	require.NotNil(t, cfg.SkipCertVerify)
	require.True(t, *cfg.SkipCertVerify)
}

func TestDecodeVMess_Invalid(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"not base64", "vmess://%%%%"},
		{"not json", "vmess://" + base64.StdEncoding.EncodeToString([]byte("hello"))},
		{"missing add", vmessLink(t, map[string]any{"port": "443"})},
		{"missing port", vmessLink(t, map[string]any{"add": "v.example.com"})},
		{"bad port", vmessLink(t, map[string]any{"add": "v.example.com", "port": "abc"})},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode(c.in)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			require.Equal(t, "VMESS_LINK_INVALID", pe.AppError.Code)
		})
	}
}
