package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/John-Robertt/linknorm-go/internal/model"
)

func TestLookup_EveryTagRegistered(t *testing.T) {
	for _, tag := range model.Tags() {
		s, ok := Lookup(tag)
		require.True(t, ok, "missing registry entry for %s", tag)
		// name/server/port are mandatory everywhere.
		require.Contains(t, s.Required, model.FieldName)
		require.Contains(t, s.Required, model.FieldServer)
		require.Contains(t, s.Required, model.FieldPort)
	}
}

func TestLookup_UnknownTag(t *testing.T) {
	_, ok := Lookup(model.ProtocolTag("socks5"))
	require.False(t, ok)
}

func TestSeed_Defaults(t *testing.T) {
	vmess := Seed(model.TagVMess)
	require.Equal(t, model.TagVMess, vmess.Type)
	require.Equal(t, "auto", vmess.Cipher)
	require.Equal(t, "tcp", vmess.Network)
	require.NotNil(t, vmess.AlterID)
	require.Equal(t, 0, *vmess.AlterID)

	trojan := Seed(model.TagTrojan)
	require.NotNil(t, trojan.TLS)
	require.True(t, *trojan.TLS)

	hy2 := Seed(model.TagHysteria2)
	require.NotNil(t, hy2.TLS)
	require.True(t, *hy2.TLS)
	require.NotNil(t, hy2.UDP)
	require.True(t, *hy2.UDP)

	// ss seeds its cipher but never credentials.
	ss := Seed(model.TagSS)
	require.Equal(t, "aes-256-gcm", ss.Cipher)
	require.Empty(t, ss.Password)
}

func TestSeed_ReturnsFreshPointers(t *testing.T) {
	a := Seed(model.TagVMess)
	b := Seed(model.TagVMess)
	*a.AlterID = 99
	require.Equal(t, 0, *b.AlterID, "seeded records must not share pointers")
}

func TestPrune_CrossContamination(t *testing.T) {
	cfg := model.Config{
		Type:     model.TagSS,
		Name:     "node",
		Server:   "example.com",
		Port:     8388,
		Cipher:   "aes-256-gcm",
		Password: "pw",
		// Leftovers from a previous vmess selection:
		UUID:    "9d0cb9d1-4f7c-4bbd-9d85-2f31e0e7f5a3",
		AlterID: model.IntPtr(4),
		Network: "ws",
		WSOpts:  &model.WSOpts{Path: "/ws"},
		SNI:     "example.com",
	}
	Prune(&cfg)

	require.Empty(t, cfg.UUID)
	require.Nil(t, cfg.AlterID)
	require.Empty(t, cfg.Network)
	require.Nil(t, cfg.WSOpts)
	require.Empty(t, cfg.SNI)
	// The ss fields survive.
	require.Equal(t, "aes-256-gcm", cfg.Cipher)
	require.Equal(t, "pw", cfg.Password)
}

func TestPrune_TransportFollowsNetwork(t *testing.T) {
	cfg := model.Config{
		Type:     model.TagVMess,
		Network:  "grpc",
		WSOpts:   &model.WSOpts{Path: "/ws"},
		GRPCOpts: &model.GRPCOpts{ServiceName: "svc"},
	}
	Prune(&cfg)

	require.Nil(t, cfg.WSOpts, "ws opts must not survive a grpc network")
	require.NotNil(t, cfg.GRPCOpts)
}

func TestAllowed(t *testing.T) {
	require.True(t, Allowed(model.TagVMess, model.FieldUUID))
	require.True(t, Allowed(model.TagTUIC, model.FieldCongestionController))
	require.False(t, Allowed(model.TagSS, model.FieldUUID))
	require.False(t, Allowed(model.TagTrojan, model.FieldCipher))
	require.False(t, Allowed(model.ProtocolTag("nope"), model.FieldName))
}
