package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigconform/sigconform/internal/domain"
	sigerrors "github.com/sigconform/sigconform/internal/errors"
)

func TestNew(t *testing.T) {
	t.Run("builds registry from table", func(t *testing.T) {
		reg, err := New([]domain.AlgorithmScheme{
			{Name: "rsa-sha256"},
			{Name: "rsa-sha1", Deprecated: true},
		})
		require.NoError(t, err)
		assert.Len(t, reg.ListSchemes(), 2)
	})

	t.Run("rejects duplicate scheme names", func(t *testing.T) {
		_, err := New([]domain.AlgorithmScheme{
			{Name: "rsa-sha256"},
			{Name: "rsa-sha256", Deprecated: true},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, sigerrors.ErrDuplicateScheme)
	})

	t.Run("copies the input table", func(t *testing.T) {
		table := []domain.AlgorithmScheme{{Name: "rsa-sha256"}}
		reg, err := New(table)
		require.NoError(t, err)

		table[0].Name = "mutated"
		assert.True(t, reg.IsKnown("rsa-sha256"))
		assert.False(t, reg.IsKnown("mutated"))
	})
}

func TestDefault(t *testing.T) {
	reg := Default()

	t.Run("knows the negotiated identifier", func(t *testing.T) {
		assert.True(t, reg.IsKnown(domain.SchemeHS2019))
		assert.False(t, reg.IsDeprecated(domain.SchemeHS2019))
	})

	t.Run("flags legacy schemes deprecated", func(t *testing.T) {
		assert.True(t, reg.IsDeprecated("rsa-sha1"))
	})

	t.Run("does not know unregistered names", func(t *testing.T) {
		assert.False(t, reg.IsKnown("unknown"))
		assert.False(t, reg.IsDeprecated("unknown"))
	})
}

func TestRegistry_Lookup(t *testing.T) {
	reg := Default()

	t.Run("distinguishes unknown from deprecated", func(t *testing.T) {
		_, known := reg.Lookup("unknown")
		assert.False(t, known)

		s, known := reg.Lookup("rsa-sha1")
		require.True(t, known)
		assert.True(t, s.Deprecated)
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("loads schemes from yaml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "registry.yaml")
		doc := "schemes:\n  - name: rsa-sha256\n  - name: rsa-md5\n    deprecated: true\n"
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		reg, err := LoadFile(path)
		require.NoError(t, err)
		assert.True(t, reg.IsKnown("rsa-sha256"))
		assert.True(t, reg.IsDeprecated("rsa-md5"))
	})

	t.Run("fails on missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("fails on empty scheme table", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "registry.yaml")
		require.NoError(t, os.WriteFile(path, []byte("schemes: []\n"), 0o600))

		_, err := LoadFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, sigerrors.ErrEmptyValue)
	})

	t.Run("fails on malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "registry.yaml")
		require.NoError(t, os.WriteFile(path, []byte("schemes: [unclosed"), 0o600))

		_, err := LoadFile(path)
		require.Error(t, err)
	})
}
