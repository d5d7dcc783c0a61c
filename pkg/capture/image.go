package capture

import (
	"fmt"
	"os"

	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/frame"
	"gocv.io/x/gocv"
)

// LoadImage reads exactly one frame from path.
// It fails with ErrImageLoad if the path does not resolve to a decodable image.
func LoadImage(path string) (frame.Frame, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrImageLoad, path)
	}

	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		img.Close()
		return nil, fmt.Errorf("%w: %s is not a decodable image", ErrImageLoad, path)
	}

	return frame.FromMat(img), nil
}
