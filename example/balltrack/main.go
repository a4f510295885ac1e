package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gocv.io/x/gocv"

	"github.com/swdee/go-balltrack"
	"github.com/swdee/go-balltrack/filter"
	"github.com/swdee/go-balltrack/hough"
	"github.com/swdee/go-balltrack/render"
	"github.com/swdee/go-balltrack/report"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	framesDir := flag.String("d", "", "Folder where the frame images are stored")
	particles := flag.Int("n", 20, "Number of particles")
	show := flag.Bool("show", false, "Show each processed frame, press n to continue")
	save := flag.Bool("save", false, "Save processed frames and run reports")
	start := flag.Int("start", 0, "Index of the first frame to process")
	end := flag.Int("end", -1, "Index of the last frame to process, -1 for all")
	method := flag.String("method", "particle", "Tracking method: particle or hough")
	period := flag.Float64("period", 0, "Fixed inter-frame period in seconds, 0 reads timestamps.json")
	radius := flag.Int("radius", 26, "Target ball radius in pixels (hough method)")
	roiSpec := flag.String("roi", "", "Initial target region as x,y,w,h, interactive selection when empty")
	seed := flag.Int64("seed", 0, "Random seed, 0 for a nondeterministic run")

	flag.Parse()

	if *framesDir == "" && flag.NArg() > 0 {
		*framesDir = flag.Arg(0)
	}

	if *framesDir == "" {
		log.Fatal("Usage: balltrack [flags] <frames folder>")
	}

	src, err := balltrack.NewFrameSource(*framesDir, *period)

	if err != nil {
		log.Fatal("Error enumerating frames: ", err)
	}

	frames := src.Slice(*start, *end)

	if len(frames) < 2 {
		log.Fatal("Need at least two frames to track")
	}

	saveDir := filepath.Join(*framesDir, "processed")

	if *save {
		if err := os.MkdirAll(saveDir, 0755); err != nil {
			log.Fatal("Error creating output folder: ", err)
		}
	}

	var window *gocv.Window

	if *show {
		window = gocv.NewWindow("balltrack")
		defer window.Close()
	}

	r := &run{
		frames:  frames,
		save:    *save,
		saveDir: saveDir,
		window:  window,
	}

	switch *method {
	case "particle":
		cfg := filter.DefaultConfig()
		cfg.ParticleCount = *particles

		err = r.particleFilter(cfg, *roiSpec, *seed)

	case "hough":
		cfg := hough.DefaultConfig()
		cfg.TargetRadius = *radius

		err = r.houghCircles(cfg)

	default:
		log.Fatalf("Unknown tracking method %q, options are: particle, hough", *method)
	}

	if err != nil {
		log.Fatal("Tracking run failed: ", err)
	}

	r.printLatency()

	if *save {
		if err := r.writeReports(); err != nil {
			log.Fatal("Error writing reports: ", err)
		}
	}
}

// run holds the per-run state shared by both tracking methods
type run struct {
	frames  []balltrack.Frame
	save    bool
	saveDir string
	window  *gocv.Window

	// per-frame outputs collected for reporting
	speeds    []float64
	speedUnit string
	latencies []float64
	processed []string
	trail     []image.Point
}

// particleFilter runs the particle filter method over the frame sequence.
// The first frame supplies the target region, the remainder are tracked
func (r *run) particleFilter(cfg filter.Config, roiSpec string, seed int64) error {

	first := gocv.IMRead(r.frames[0].Path, gocv.IMReadColor)

	if first.Empty() {
		return fmt.Errorf("failed to read frame %s", r.frames[0].Path)
	}

	defer first.Close()

	rect, err := selectROI(roiSpec, first, r.window)

	if err != nil {
		return err
	}

	gray := balltrack.ToGray(first)
	defer gray.Close()

	crop := gray.Region(rect)
	tm, err := filter.NewTargetModel(crop, rect, cfg.Bins)
	crop.Close()

	if err != nil {
		return fmt.Errorf("failed to build target model: %w", err)
	}

	rnd := newRand(seed)

	tracker, err := filter.NewTracker(cfg, tm, rnd)

	if err != nil {
		return fmt.Errorf("failed to build tracker: %w", err)
	}

	r.speedUnit = "px/s"
	font := render.DefaultFont()
	trailStyle := render.DefaultTrailStyle()

	for _, frame := range r.frames[1:] {
		log.Printf("Processing image %s", frame.Path)

		img := gocv.IMRead(frame.Path, gocv.IMReadColor)

		if img.Empty() {
			return fmt.Errorf("failed to read frame %s", frame.Path)
		}

		frameGray := balltrack.ToGray(img)

		begin := time.Now()
		est := tracker.Step(frameGray, frame.DT)
		elapsed := time.Since(begin).Seconds()

		frameGray.Close()

		r.speeds = append(r.speeds, est.Speed())
		r.latencies = append(r.latencies, elapsed)
		r.trail = append(r.trail, image.Pt(int(est.X), int(est.Y)))

		render.ParticleCloud(&img, tracker.Particles())
		render.EstimateBox(&img, est)
		render.Trail(&img, r.trail, trailStyle)
		render.SpeedLabel(&img, font, est.Speed(), r.speedUnit, image.Pt(10, 20))

		if err := r.output(&img, frame); err != nil {
			img.Close()
			return err
		}

		img.Close()

		log.Printf("time_dt: %f", elapsed)
	}

	return nil
}

// houghCircles runs the circle transform method over the frame sequence
func (r *run) houghCircles(cfg hough.Config) error {

	tracker := hough.NewTracker(cfg)
	defer tracker.Close()

	r.speedUnit = "cm/s"
	font := render.DefaultFont()

	for _, frame := range r.frames {
		log.Printf("Processing image %s", frame.Path)

		img := gocv.IMRead(frame.Path, gocv.IMReadColor)

		if img.Empty() {
			return fmt.Errorf("failed to read frame %s", frame.Path)
		}

		gray := balltrack.ToGray(img)

		begin := time.Now()
		det := tracker.Step(gray, frame.DT)
		elapsed := time.Since(begin).Seconds()

		gray.Close()

		r.speeds = append(r.speeds, det.Speed())
		r.latencies = append(r.latencies, elapsed)

		render.Circles(&img, det)
		render.SpeedLabel(&img, font, det.Speed(), r.speedUnit, image.Pt(10, 20))

		if err := r.output(&img, frame); err != nil {
			img.Close()
			return err
		}

		img.Close()

		log.Printf("time_dt: %f", elapsed)
	}

	return nil
}

// output shows and/or saves one rendered frame.  Saved frames use a zero
// padded sequential naming scheme in the processed subfolder
func (r *run) output(img *gocv.Mat, frame balltrack.Frame) error {

	if r.window != nil {
		r.window.IMShow(*img)

		// hold the frame until n is pressed, ESC aborts the run
		for {
			key := r.window.WaitKey(0)

			if key == 'n' {
				break
			}

			if key == 27 {
				return fmt.Errorf("run aborted")
			}
		}
	}

	if !r.save {
		return nil
	}

	name := filepath.Join(r.saveDir, fmt.Sprintf("image%04d.png", frame.Number))

	if ok := gocv.IMWrite(name, *img); !ok {
		return fmt.Errorf("failed to write %s", name)
	}

	r.processed = append(r.processed, name)

	return nil
}

// printLatency reports the per-run mean frame processing time
func (r *run) printLatency() {

	if len(r.latencies) == 0 {
		return
	}

	sum := 0.0

	for _, l := range r.latencies {
		sum += l
	}

	log.Printf("Mean computation time per frame: %fs", sum/float64(len(r.latencies)))
}

// writeReports produces the run artifacts next to the processed frames
func (r *run) writeReports() error {

	if err := report.SpeedCurve(r.speeds, r.speedUnit,
		filepath.Join(r.saveDir, "speed.png")); err != nil {
		return err
	}

	if err := report.WriteHTML(filepath.Join(r.saveDir, "report.html"),
		r.speedUnit, r.speeds, r.latencies); err != nil {
		return err
	}

	if len(r.processed) == 0 {
		return nil
	}

	sheet := r.processed

	if len(sheet) > 12 {
		sheet = sheet[:12]
	}

	if err := report.ContactSheet(sheet, 4, 320,
		filepath.Join(r.saveDir, "sheet.png")); err != nil {
		return err
	}

	return report.WriteMovie(filepath.Join(r.saveDir, "processed.avi"),
		r.processed, 25)
}

// newRand returns a seeded randomness source for reproducible runs, or one
// seeded from the clock when seed is 0
func newRand(seed int64) *rand.Rand {

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed))
}

// selectROI resolves the initial target region, either parsed from the
// x,y,w,h flag or selected interactively on the first frame
func selectROI(spec string, img gocv.Mat, window *gocv.Window) (image.Rectangle, error) {

	if spec != "" {
		parts := strings.Split(spec, ",")

		if len(parts) != 4 {
			return image.Rectangle{}, fmt.Errorf("roi %q must be x,y,w,h", spec)
		}

		vals := make([]int, 4)

		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))

			if err != nil {
				return image.Rectangle{}, fmt.Errorf("bad roi value %q: %w", p, err)
			}

			vals[i] = v
		}

		return image.Rect(vals[0], vals[1], vals[0]+vals[2], vals[1]+vals[3]), nil
	}

	if window == nil {
		return image.Rectangle{}, fmt.Errorf("no -roi given and no window to select one, pass -roi or -show")
	}

	rect := gocv.SelectROI("balltrack", img)

	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return image.Rectangle{}, fmt.Errorf("empty region selected")
	}

	return rect, nil
}
