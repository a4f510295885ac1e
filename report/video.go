package report

import (
	"fmt"

	"github.com/icza/mjpeg"
	"gocv.io/x/gocv"
)

// WriteMovie assembles the processed frames into an MJPEG AVI movie at the
// given frame rate.  All frames must share the dimensions of the first
func WriteMovie(file string, paths []string, fps int32) error {

	if len(paths) == 0 {
		return fmt.Errorf("no frames for movie")
	}

	first := gocv.IMRead(paths[0], gocv.IMReadColor)

	if first.Empty() {
		return fmt.Errorf("failed to read frame %s", paths[0])
	}

	width := int32(first.Cols())
	height := int32(first.Rows())
	first.Close()

	aw, err := mjpeg.New(file, width, height, fps)

	if err != nil {
		return fmt.Errorf("failed to create movie %s: %w", file, err)
	}

	for _, p := range paths {
		img := gocv.IMRead(p, gocv.IMReadColor)

		if img.Empty() {
			aw.Close()
			return fmt.Errorf("failed to read frame %s", p)
		}

		buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
		img.Close()

		if err != nil {
			aw.Close()
			return fmt.Errorf("failed to encode frame %s: %w", p, err)
		}

		err = aw.AddFrame(buf.GetBytes())
		buf.Close()

		if err != nil {
			aw.Close()
			return fmt.Errorf("failed to add frame %s: %w", p, err)
		}
	}

	if err := aw.Close(); err != nil {
		return fmt.Errorf("failed to finalise movie: %w", err)
	}

	return nil
}
