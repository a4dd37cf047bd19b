package vision

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"
)

// Template is a pre-thresholded grayscale reference image for one numeral.
type Template struct {
	Numeral int
	Mat     gocv.Mat
}

// TemplateSet is an ordered, immutable collection of numeral templates.
// It is safe for concurrent matching once loaded.
type TemplateSet struct {
	templates []Template
}

// NewTemplateSet wraps the given templates; the set takes ownership of their Mats.
func NewTemplateSet(ts ...Template) *TemplateSet {
	return &TemplateSet{templates: ts}
}

// LoadTemplates reads one grayscale template per name from dir. The numeral
// of each template is its 1-based position in names. A name resolves to the
// file itself or, failing that, to the same name with a .png extension.
func LoadTemplates(dir string, names ...string) (*TemplateSet, error) {
	set := &TemplateSet{}
	for i, name := range names {
		path, err := resolveAsset(dir, name)
		if err != nil {
			set.Close()
			return nil, err
		}
		m := gocv.IMRead(path, gocv.IMReadGrayScale)
		if m.Empty() {
			m.Close()
			set.Close()
			return nil, fmt.Errorf("template %q could not be loaded", path)
		}
		set.templates = append(set.templates, Template{Numeral: i + 1, Mat: m})
	}
	return set, nil
}

func resolveAsset(dir, name string) (string, error) {
	for _, p := range []string{filepath.Join(dir, name), filepath.Join(dir, name+".png")} {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("template %q not found in %s: %w", name, dir, os.ErrNotExist)
}

// NewTemplate builds a template from a grayscale image.
func NewTemplate(numeral int, img *image.Gray) (Template, error) {
	m, err := GrayImageMat(img)
	if err != nil {
		return Template{}, err
	}
	return Template{Numeral: numeral, Mat: m}, nil
}

// Len returns the number of templates.
func (s *TemplateSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.templates)
}

// Close releases every template Mat.
func (s *TemplateSet) Close() {
	if s == nil {
		return
	}
	for _, t := range s.templates {
		_ = t.Mat.Close()
	}
	s.templates = nil
}

func fits(t Template, bin gocv.Mat) bool {
	return !t.Mat.Empty() && t.Mat.Cols() <= bin.Cols() && t.Mat.Rows() <= bin.Rows()
}

func match(bin gocv.Mat, t Template) gocv.Mat {
	result := gocv.NewMat()
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.MatchTemplate(bin, t.Mat, &result, gocv.TmCcoeffNormed, mask)
	return result
}

// Scores returns, per template and in template order, the best normalized
// cross-correlation score over every alignment in bin. Templates larger than
// bin score -1.
func (s *TemplateSet) Scores(bin gocv.Mat) Scores {
	if s == nil {
		return nil
	}
	out := make(Scores, 0, len(s.templates))
	for _, t := range s.templates {
		if bin.Empty() || !fits(t, bin) {
			out = append(out, Score{Numeral: t.Numeral, Value: -1})
			continue
		}
		result := match(bin, t)
		_, maxVal, _, _ := gocv.MinMaxLoc(result)
		result.Close()
		out = append(out, Score{Numeral: t.Numeral, Value: float64(maxVal)})
	}
	return out
}

// Detection is a numeral template hit at one location.
type Detection struct {
	Digit int
	Box   image.Rectangle
}

// Locate returns every location whose score reaches conf, in template order
// and then row-major order within each template.
func (s *TemplateSet) Locate(bin gocv.Mat, conf float32) []Detection {
	if s == nil || bin.Empty() {
		return nil
	}
	var out []Detection
	for _, t := range s.templates {
		if !fits(t, bin) {
			continue
		}
		result := match(bin, t)
		out = appendHits(out, result, t, conf)
		result.Close()
	}
	return out
}

// appendHits scans a match result in row-major order.
func appendHits(out []Detection, result gocv.Mat, t Template, conf float32) []Detection {
	scores, err := result.DataPtrFloat32()
	if err != nil {
		return out
	}
	w, h, cols := t.Mat.Cols(), t.Mat.Rows(), result.Cols()
	for i, v := range scores {
		if v >= conf {
			x, y := i%cols, i/cols
			out = append(out, Detection{Digit: t.Numeral, Box: image.Rect(x, y, x+w, y+h)})
		}
	}
	return out
}

// Present reports whether any template location in bin reaches conf.
func (s *TemplateSet) Present(bin gocv.Mat, conf float32) bool {
	if s == nil || bin.Empty() {
		return false
	}
	for _, t := range s.templates {
		if !fits(t, bin) {
			continue
		}
		result := match(bin, t)
		_, maxVal, _, _ := gocv.MinMaxLoc(result)
		result.Close()
		if maxVal >= conf {
			return true
		}
	}
	return false
}

// ErrNoTemplates is returned when a recognizer is built without templates.
var ErrNoTemplates = errors.New("vision: no templates")
