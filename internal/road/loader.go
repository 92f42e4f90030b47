package road

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"roadsim/internal/geom"
)

// LineError describes an input line that was skipped while loading.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e LineError) Unwrap() error { return e.Err }

// ReadSegments parses one x1,y1,x2,y2 segment per line. Blank lines and
// lines starting with # are ignored. Malformed lines are skipped and
// reported in the returned LineError slice.
func ReadSegments(r io.Reader) ([]geom.Segment, []LineError, error) {
	var segs []geom.Segment
	skipped, err := scanRecords(r, 4, func(v []float64) error {
		s, err := geom.NewSegment(geom.Pt(v[0], v[1]), geom.Pt(v[2], v[3]))
		if err != nil {
			return err
		}
		segs = append(segs, s)
		return nil
	})
	return segs, skipped, err
}

// ReadPoints parses one x,y point per line with the same rules as
// ReadSegments.
func ReadPoints(r io.Reader) ([]geom.Point, []LineError, error) {
	var pts []geom.Point
	skipped, err := scanRecords(r, 2, func(v []float64) error {
		pts = append(pts, geom.Pt(v[0], v[1]))
		return nil
	})
	return pts, skipped, err
}

// LoadSegmentsFile reads segments from the file at path.
func LoadSegmentsFile(path string) ([]geom.Segment, []LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ReadSegments(f)
}

// LoadPointsFile reads points from the file at path.
func LoadPointsFile(path string) ([]geom.Point, []LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ReadPoints(f)
}

func scanRecords(r io.Reader, fields int, emit func([]float64) error) ([]LineError, error) {
	var skipped []LineError
	sc := bufio.NewScanner(r)
	lineNo := 0
	vals := make([]float64, fields)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != fields {
			skipped = append(skipped, LineError{Line: lineNo, Text: line, Err: fmt.Errorf("expected %d fields, got %d", fields, len(parts))})
			continue
		}
		var err error
		for i, p := range parts {
			if vals[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64); err != nil {
				break
			}
		}
		if err == nil {
			err = emit(vals)
		}
		if err != nil {
			skipped = append(skipped, LineError{Line: lineNo, Text: line, Err: err})
		}
	}
	return skipped, sc.Err()
}
