package assets

import (
	"fmt"
	"io/fs"

	"github.com/mashenka/mashenka/engine/gfx"
)

// LoadShaderSource reads a combined "#type" shader file.
func LoadShaderSource(fsys fs.FS, path string) (gfx.ShaderSource, error) {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		return gfx.ShaderSource{}, fmt.Errorf("load shader %q: %w", path, err)
	}
	return gfx.ParseShaderSource(path, string(b))
}
