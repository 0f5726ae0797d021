package render

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed assets/*
var builtinAssets embed.FS

// WriteBuiltinAssets writes the default stylesheet and support files into the
// root of outDir. Used when the configuration names no assets directory.
func WriteBuiltinAssets(outDir string) error {
	sub, err := fs.Sub(builtinAssets, "assets")
	if err != nil {
		return fmt.Errorf("builtin assets: %w", err)
	}
	return copyFS(sub, outDir)
}

// CopyAssets copies every file under dir into the root of outDir, keeping
// relative paths.
func CopyAssets(dir, outDir string) error {
	return copyFS(os.DirFS(dir), outDir)
}

func copyFS(src fs.FS, outDir string) error {
	return fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk assets: %w", err)
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(src, path)
		if err != nil {
			return fmt.Errorf("read asset %s: %w", path, err)
		}
		dst := filepath.Join(outDir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
			return fmt.Errorf("create asset directory: %w", err)
		}
		if err := os.WriteFile(dst, data, 0o640); err != nil {
			return fmt.Errorf("write asset %s: %w", path, err)
		}
		return nil
	})
}
