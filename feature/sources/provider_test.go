package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func newTestProvider() *Provider {
	p := NewProvider(map[string]Config{
		"Acme": {
			Protocol: "FTP", Host: "ftp.acme.test", User: "sync", Secret: "plain",
			Paths:    map[string]string{"catalog": "/out/catalog.csv", "inventory": "/out/stock.csv"},
			Priority: intPtr(1), Delimiter: "|", Columns: map[string]string{"upc": "EAN"},
		},
		"globex": {
			Protocol: "https", Host: "feeds.globex.test", User: "sync", SecretEnv: "GLOBEX_SECRET",
			Paths:     map[string]string{"inventory": "/stock.tsv"},
			Delimiter: `\t`,
		},
		"initech": {Paths: map[string]string{"catalog": "/c.csv"}},
	})
	p.getenv = func(key string) string {
		if key == "GLOBEX_SECRET" {
			return "from-env"
		}
		return ""
	}
	return p
}

func TestGetRemoteConfig(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	rc, err := p.ForJob("catalog").GetRemoteConfig(ctx, "acme")
	require.NoError(t, err)
	require.NotNil(t, rc)
	assert.Equal(t, "acme", rc.Source)
	assert.Equal(t, "ftp", rc.Protocol)
	assert.Equal(t, "/out/catalog.csv", rc.RemotePath)
	assert.Equal(t, "plain", rc.Secret)

	rc, err = p.ForJob("inventory").GetRemoteConfig(ctx, "globex")
	require.NoError(t, err)
	assert.Equal(t, "from-env", rc.Secret)

	rc, err = p.ForJob("catalog").GetRemoteConfig(ctx, "globex")
	require.NoError(t, err)
	assert.Nil(t, rc, "no catalog path")

	rc, err = p.ForJob("catalog").GetRemoteConfig(ctx, "initech")
	require.NoError(t, err)
	assert.Nil(t, rc, "no protocol")

	rc, err = p.ForJob("catalog").GetRemoteConfig(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, rc)
}

func TestGetRemoteConfig_MissingSecretEnv(t *testing.T) {
	p := newTestProvider()
	p.getenv = func(string) string { return "" }

	_, err := p.ForJob("inventory").GetRemoteConfig(context.Background(), "globex")
	assert.ErrorContains(t, err, "GLOBEX_SECRET")
}

func TestParseOptionsAndColumns(t *testing.T) {
	p := newTestProvider()

	assert.Equal(t, '|', p.ForJob("catalog").ParseOptions("acme").Delimiter)
	assert.Equal(t, '\t', p.ForJob("inventory").ParseOptions("globex").Delimiter)
	assert.Equal(t, rune(0), p.ForJob("catalog").ParseOptions("initech").Delimiter)
	assert.Equal(t, map[string]string{"upc": "EAN"}, p.ForJob("catalog").Columns("ACME"))
}

func TestPriorities(t *testing.T) {
	table := newTestProvider().Priorities()
	assert.Equal(t, 1, table["acme"])
	_, ok := table["globex"]
	assert.False(t, ok)
}
