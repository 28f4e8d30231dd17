package scene

import (
	"errors"

	"github.com/milk9111/isomap/asset"
	"github.com/milk9111/isomap/surface"
)

var (
	// ErrConfiguration is fatal and only returned before any frame exists.
	ErrConfiguration = surface.ErrConfiguration
	// ErrAssetLoad marks an image the host failed to load; it surfaces as
	// absence from the image table.
	ErrAssetLoad = asset.ErrLoad

	ErrAssetNotFound = errors.New("scene: asset not found")
	ErrSurfaceDraw   = errors.New("scene: surface draw failed")
	ErrOffMap        = errors.New("scene: position is off the map")
	ErrUnknownLayer  = errors.New("scene: unknown layer")
	ErrImagesLoaded  = errors.New("scene: images already loaded")
	ErrNilEntity     = errors.New("scene: nil entity")
)
