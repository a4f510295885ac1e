package balltrack

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"gocv.io/x/gocv"
)

// frameNumber matches the numeric suffix of a frame filename, eg. the
// "0027" in image0027.png
var frameNumber = regexp.MustCompile(`([0-9]+)\.png$`)

// Frame represents a single image in a sequence along with the time
// elapsed since the previous frame
type Frame struct {
	// Path is the location of the image file on disk
	Path string
	// Number is the sequence number parsed from the filename
	Number int
	// DT is the time in seconds since the previous frame.  The first
	// frame of a sequence has DT of 0
	DT float64
}

// FrameSource enumerates the image frames of a recording stored as
// individual PNG files in a folder
type FrameSource struct {
	dir    string
	frames []Frame
}

// timestampsFile is the ffprobe packet timing format written next to the
// extracted frames
type timestampsFile struct {
	Frames []struct {
		PktPtsTime string `json:"pkt_pts_time"`
	} `json:"frames"`
}

// NewFrameSource enumerates the PNG frames in dir sorted by their numeric
// filename suffix.  When framePeriod is greater than zero it is used as a
// fixed inter-frame time for every frame, otherwise timing is read from the
// timestamps.json file in the same folder.  A frame whose filename carries
// no parsable number is an error as the processed output naming scheme
// depends on it.
func NewFrameSource(dir string, framePeriod float64) (*FrameSource, error) {

	paths, err := filepath.Glob(filepath.Join(dir, "*.png"))

	if err != nil {
		return nil, fmt.Errorf("failed to list frames in %s: %w", dir, err)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no PNG frames found in %s", dir)
	}

	frames := make([]Frame, 0, len(paths))

	for _, p := range paths {
		m := frameNumber.FindStringSubmatch(filepath.Base(p))

		if m == nil {
			return nil, fmt.Errorf("frame %s has no numeric suffix", p)
		}

		num, err := strconv.Atoi(m[1])

		if err != nil {
			return nil, fmt.Errorf("frame %s has unparsable number: %w", p, err)
		}

		frames = append(frames, Frame{Path: p, Number: num})
	}

	sort.Slice(frames, func(i, j int) bool {
		return frames[i].Number < frames[j].Number
	})

	src := &FrameSource{dir: dir, frames: frames}

	if framePeriod > 0 {
		for i := range src.frames {
			src.frames[i].DT = framePeriod
		}
		src.frames[0].DT = 0
		return src, nil
	}

	if err := src.readTimestamps(); err != nil {
		return nil, err
	}

	return src, nil
}

// readTimestamps loads per-frame timing from the timestamps.json file and
// converts absolute packet times into successive differences
func (s *FrameSource) readTimestamps() error {

	f, err := os.Open(filepath.Join(s.dir, "timestamps.json"))

	if err != nil {
		return fmt.Errorf("failed to open timestamps: %w", err)
	}

	defer f.Close()

	var ts timestampsFile

	if err := json.NewDecoder(f).Decode(&ts); err != nil {
		return fmt.Errorf("failed to decode timestamps: %w", err)
	}

	if len(ts.Frames) < len(s.frames) {
		return fmt.Errorf("timestamps has %d entries for %d frames",
			len(ts.Frames), len(s.frames))
	}

	prev := 0.0

	for i := range s.frames {
		t, err := strconv.ParseFloat(ts.Frames[i].PktPtsTime, 64)

		if err != nil {
			return fmt.Errorf("bad pkt_pts_time %q: %w",
				ts.Frames[i].PktPtsTime, err)
		}

		if i == 0 {
			s.frames[i].DT = 0
		} else {
			s.frames[i].DT = t - prev
		}

		prev = t
	}

	return nil
}

// Len returns the number of frames in the sequence
func (s *FrameSource) Len() int {
	return len(s.frames)
}

// Frames returns the full ordered frame sequence
func (s *FrameSource) Frames() []Frame {
	return s.frames
}

// Slice returns the frames from start up to and including end, both
// zero-based indexes.  A negative end means to the last frame
func (s *FrameSource) Slice(start, end int) []Frame {

	if start < 0 {
		start = 0
	}

	if end < 0 || end >= len(s.frames) {
		end = len(s.frames) - 1
	}

	if start > end {
		return nil
	}

	return s.frames[start : end+1]
}

// LoadGray reads the image at path and returns it as a single channel
// grayscale Mat
func LoadGray(path string) (gocv.Mat, error) {

	img := gocv.IMRead(path, gocv.IMReadColor)

	if img.Empty() {
		return gocv.Mat{}, fmt.Errorf("failed to read image %s", path)
	}

	defer img.Close()

	gray := gocv.NewMat()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	return gray, nil
}

// ToGray converts a BGR image into a new single channel grayscale Mat.
// The caller owns the returned Mat
func ToGray(img gocv.Mat) gocv.Mat {

	gray := gocv.NewMat()

	if img.Channels() == 1 {
		img.CopyTo(&gray)
		return gray
	}

	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	return gray
}
