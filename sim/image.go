package sim

import (
	"sync/atomic"

	"github.com/sam20code/SolarSystem-ARBook/xr"
)

// Image is a synthetic YUV camera image. Two-plane layout is NV12
// (full-resolution Y plus interleaved half-resolution UV); three-plane is
// planar YUV 4:2:0 (Y, U, V).
type Image struct {
	width     int
	height    int
	timestamp float64
	planes    [xr.MaxImagePlanes]xr.ImagePlane
	count     int
	released  atomic.Bool
}

func newImage(width, height, planeCount int, timestamp float64) *Image {
	img := &Image{
		width:     width,
		height:    height,
		timestamp: timestamp,
		count:     planeCount,
	}

	img.planes[0] = xr.ImagePlane{
		Data:        make([]byte, width*height),
		RowStride:   width,
		PixelStride: 1,
	}
	switch planeCount {
	case 2:
		img.planes[1] = xr.ImagePlane{
			Data:        make([]byte, width*height/2),
			RowStride:   width,
			PixelStride: 2,
		}
	case 3:
		for i := 1; i < 3; i++ {
			img.planes[i] = xr.ImagePlane{
				Data:        make([]byte, width*height/4),
				RowStride:   width / 2,
				PixelStride: 1,
			}
		}
	}
	return img
}

// Width implements xr.CameraImage.
func (i *Image) Width() int { return i.width }

// Height implements xr.CameraImage.
func (i *Image) Height() int { return i.height }

// Timestamp implements xr.CameraImage: seconds on the simulated clock.
func (i *Image) Timestamp() float64 { return i.timestamp }

// PlaneCount implements xr.CameraImage.
func (i *Image) PlaneCount() int { return i.count }

// Plane implements xr.CameraImage.
func (i *Image) Plane(idx int) xr.ImagePlane {
	if idx < 0 || idx >= i.count {
		return xr.ImagePlane{}
	}
	return i.planes[idx]
}

// Release implements xr.CameraImage. Idempotent.
func (i *Image) Release() {
	i.released.Store(true)
}

// Released reports whether Release has been called, for scoped-resource
// assertions in tests.
func (i *Image) Released() bool {
	return i.released.Load()
}
