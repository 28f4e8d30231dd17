package assets

import (
	"embed"
	"io/fs"
	"os"

	"github.com/milk9111/isomap/asset"
)

//go:embed *.png tiles/*.png
var FS embed.FS

// NewHost returns an image host that reads from dir on disk first and falls
// back to the embedded assets. An empty dir uses only the embedded copies.
func NewHost(dir string) *asset.FSHost {
	var fsys []fs.FS
	if dir != "" {
		fsys = append(fsys, os.DirFS(dir))
	}
	return asset.NewFSHost(append(fsys, FS)...)
}
