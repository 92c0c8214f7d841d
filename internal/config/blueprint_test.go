package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/blueprints/blueprint"
	"github.com/erraggy/blueprints/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	cfg := &Config{MaxFileSize: 4}

	plain, ok := cfg.Store(nil).(*store.File)
	require.True(t, ok)
	assert.Equal(t, int64(4), plain.MaxFileSize)

	reg := prometheus.NewRegistry()
	st := cfg.Store(reg)
	_, ok = st.(*store.Instrumented)
	require.True(t, ok)

	path := filepath.Join(t.TempDir(), "big.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: too long\n"), 0o600))
	_, err := st.Parse(path)
	assert.Error(t, err)

	n, err := testutil.GatherAndCount(reg, "blueprints_store_parse_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestOptions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pages"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte("title: Base\nstrict: false\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pages", "default.yaml"), []byte("extends@: base\nform: {}\n"), 0o600))

	cfg := &Config{
		Context:     "blueprints://",
		Roots:       []Root{{Scheme: "blueprints", Dir: dir}},
		MaxDepth:    10,
		MaxFileSize: store.DefaultMaxFileSize,
	}
	opts := append(cfg.Options(cfg.Locator(), cfg.Store(nil), blueprint.NopLogger{}), blueprint.WithName("pages/default"))

	bp, err := blueprint.LoadWithOptions(opts...)
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "strict", "form"}, bp.Items().Keys())
	assert.Equal(t, filepath.Join(dir, "pages", "default.yaml"), bp.Location())
}

func TestOptionsStrict(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.yaml"), []byte("extends@: missing\n"), 0o600))

	cfg := &Config{
		Context: "blueprints://",
		Roots:   []Root{{Scheme: "blueprints", Dir: dir}},
		Strict:  true,
	}
	opts := append(cfg.Options(cfg.Locator(), nil, nil), blueprint.WithName("page"))
	_, err := blueprint.LoadWithOptions(opts...)
	assert.Error(t, err)
}
