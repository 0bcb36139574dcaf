package gstcam

import (
	"sync/atomic"

	"github.com/sam20code/SolarSystem-ARBook/xr"
)

// nv12Image is one captured NV12 frame. The buffer is a copy owned by
// this image, so Release only marks the handle dead.
type nv12Image struct {
	width     int
	height    int
	timestamp float64
	data      []byte

	released atomic.Bool
}

func newNV12Image(width, height int, timestamp float64, data []byte) *nv12Image {
	return &nv12Image{
		width:     width,
		height:    height,
		timestamp: timestamp,
		data:      data,
	}
}

func (i *nv12Image) Width() int         { return i.width }
func (i *nv12Image) Height() int        { return i.height }
func (i *nv12Image) Timestamp() float64 { return i.timestamp }
func (i *nv12Image) PlaneCount() int    { return 2 }

// Plane slices the packed NV12 buffer: a full-resolution luma plane
// followed by one interleaved half-height chroma plane.
func (i *nv12Image) Plane(idx int) xr.ImagePlane {
	lumaSize := i.width * i.height
	switch idx {
	case 0:
		return xr.ImagePlane{
			Data:        i.data[:lumaSize],
			RowStride:   i.width,
			PixelStride: 1,
		}
	case 1:
		return xr.ImagePlane{
			Data:        i.data[lumaSize:],
			RowStride:   i.width,
			PixelStride: 2,
		}
	default:
		return xr.ImagePlane{}
	}
}

func (i *nv12Image) Release() {
	i.released.Store(true)
}
