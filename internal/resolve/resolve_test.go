package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/dexpreopt/internal/config"
)

// buildTree lays out a minimal build tree: one product directory, one
// host architecture with a dexopt binary, and the boot directory.
func buildTree(t *testing.T, product, arch string) string {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "target", "product", product, "system", "framework"), 0755))
	binDir := filepath.Join(root, "host", arch, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "dexopt"), []byte("#!/bin/sh\nexit 0\n"), 0755))
	return root
}

// chdirGuard restores the working directory after Resolve moved it.
func chdirGuard(t *testing.T) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestResolve_Discovery(t *testing.T) {
	chdirGuard(t)
	root := buildTree(t, "foo", "linux-x86")

	cfg := config.Default()
	cfg.BuildDir = root

	paths, err := Resolve(cfg, hclog.NewNullLogger())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(paths.BuildDir, "target", "product", "foo"), paths.ProductDir)
	assert.Equal(t, paths.ProductDir, paths.Boot.HostPrefix)
	assert.Equal(t, "system/framework", paths.Boot.DeviceDir)
	assert.Equal(t, paths.ProductDir+"//system/framework", paths.Boot.String())
	assert.Equal(t, filepath.Join(paths.BuildDir, "host", "linux-x86", "bin", "dexopt"), paths.DexoptPath)

	// Resolve leaves the process inside the build directory.
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, paths.BuildDir, wd)
}

func TestResolve_ExplicitPaths(t *testing.T) {
	chdirGuard(t)
	root := buildTree(t, "foo", "linux-x86")

	cfg := config.Default()
	cfg.BuildDir = root
	cfg.ProductDir = "target/product/foo"
	cfg.DexoptPath = "host/linux-x86/bin/dexopt"

	paths, err := Resolve(cfg, hclog.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.BuildDir, "target", "product", "foo"), paths.ProductDir)
	assert.True(t, filepath.IsAbs(paths.DexoptPath))
}

func TestResolve_EmptyBuildDir(t *testing.T) {
	cfg := config.Default()
	cfg.BuildDir = ""

	_, err := Resolve(cfg, hclog.NewNullLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build directory")
}

func TestResolve_MissingBuildDir(t *testing.T) {
	cfg := config.Default()
	cfg.BuildDir = filepath.Join(t.TempDir(), "nope")

	_, err := Resolve(cfg, hclog.NewNullLogger())
	require.Error(t, err)
}

func TestResolve_AmbiguousProduct(t *testing.T) {
	chdirGuard(t)
	root := buildTree(t, "foo", "linux-x86")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "target", "product", "bar"), 0755))

	cfg := config.Default()
	cfg.BuildDir = root

	_, err := Resolve(cfg, hclog.NewNullLogger())
	require.ErrorIs(t, err, ErrAmbiguousCandidate)
}

func TestResolve_MissingProduct(t *testing.T) {
	chdirGuard(t)
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "target", "product"), 0755))

	cfg := config.Default()
	cfg.BuildDir = root

	_, err := Resolve(cfg, hclog.NewNullLogger())
	require.ErrorIs(t, err, ErrMissingCandidate)
}

func TestResolve_MissingBootDir(t *testing.T) {
	chdirGuard(t)
	root := buildTree(t, "foo", "linux-x86")

	cfg := config.Default()
	cfg.BuildDir = root
	cfg.BootDir = "system/other"

	_, err := Resolve(cfg, hclog.NewNullLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestResolve_AmbiguousDexopt(t *testing.T) {
	chdirGuard(t)
	root := buildTree(t, "foo", "linux-x86")
	second := filepath.Join(root, "host", "darwin-x86", "bin")
	require.NoError(t, os.MkdirAll(second, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(second, "dexopt"), []byte("#!/bin/sh\nexit 0\n"), 0755))

	cfg := config.Default()
	cfg.BuildDir = root

	_, err := Resolve(cfg, hclog.NewNullLogger())
	require.ErrorIs(t, err, ErrAmbiguousCandidate)
}

func TestResolve_NonExecutableDexopt(t *testing.T) {
	chdirGuard(t)
	root := buildTree(t, "foo", "linux-x86")
	plain := filepath.Join(root, "notexec")
	require.NoError(t, os.WriteFile(plain, []byte("data"), 0644))

	cfg := config.Default()
	cfg.BuildDir = root
	cfg.DexoptPath = plain

	_, err := Resolve(cfg, hclog.NewNullLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not executable")
}

func TestUniqueChild(t *testing.T) {
	keepDirs := func(entry os.DirEntry) (string, bool) {
		return entry.Name(), entry.IsDir()
	}

	t.Run("one match", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "only"), 0755))

		got, err := UniqueChild(dir, keepDirs)
		require.NoError(t, err)
		assert.Equal(t, "only", got)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := UniqueChild(t.TempDir(), keepDirs)
		require.ErrorIs(t, err, ErrMissingCandidate)
	})

	t.Run("multiple matches", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0755))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "b"), 0755))

		_, err := UniqueChild(dir, keepDirs)
		require.ErrorIs(t, err, ErrAmbiguousCandidate)
	})

	t.Run("filter applies", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "file"), nil, 0644))

		got, err := UniqueChild(dir, keepDirs)
		require.NoError(t, err)
		assert.Equal(t, "a", got)
	})

	t.Run("missing dir", func(t *testing.T) {
		_, err := UniqueChild(filepath.Join(t.TempDir(), "nope"), keepDirs)
		require.Error(t, err)
	})
}

func TestBootPath(t *testing.T) {
	p := BootPath{HostPrefix: "/out/target/product/foo", DeviceDir: "system/framework"}
	assert.Equal(t, "/out/target/product/foo//system/framework", p.String())
	assert.Equal(t, "/out/target/product/foo/system/framework", p.Dir())
}
