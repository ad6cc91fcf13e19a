package exiftool

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/stedavkle/fish-renamer/internal/errors"
)

// FileCoordinates pairs a file with the coordinates to embed in it.
type FileCoordinates struct {
	Path      string
	Latitude  float64
	Longitude float64
}

// WriteResult is the per-file outcome of a batch GPS write.
type WriteResult struct {
	Path string
	Err  error
}

// gpsArgs builds the tag arguments for one coordinate write. EXIF
// stores unsigned coordinates plus hemisphere reference tags, so the
// sign moves into GPSLatitudeRef and GPSLongitudeRef.
func gpsArgs(path string, lat, lon float64) []string {
	latRef, lonRef := "N", "E"
	if lat < 0 {
		latRef = "S"
	}
	if lon < 0 {
		lonRef = "W"
	}
	return []string{
		"-overwrite_original",
		fmt.Sprintf("-GPSLatitude=%v", abs(lat)),
		fmt.Sprintf("-GPSLatitudeRef=%s", latRef),
		fmt.Sprintf("-GPSLongitude=%v", abs(lon)),
		fmt.Sprintf("-GPSLongitudeRef=%s", lonRef),
		path,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// writeSucceeded inspects exiftool's human-readable reply for the
// update confirmation. exiftool reports tag write outcomes as prose
// only, so this substring check is the best signal available; an
// unrecognized reply without error markers is assumed successful.
func writeSucceeded(output string) bool {
	if strings.Contains(output, "image files updated") ||
		strings.Contains(output, "image file updated") {
		return true
	}
	lower := strings.ToLower(output)
	return !strings.Contains(lower, "error") && !strings.Contains(lower, "warning")
}

// WriteGPS embeds coordinates into one file's EXIF data in place.
func (s *Session) WriteGPS(path string, lat, lon float64) error {
	if !s.IsAvailable() {
		return errors.New(ErrUnavailable).
			Component("exiftool").
			Category(errors.CategoryExifTool).
			Build()
	}
	if _, err := os.Stat(path); err != nil {
		return errors.Newf("file not found: %s", path).
			Component("exiftool").
			Category(errors.CategoryNotFound).
			FileContext(path).
			Build()
	}

	out, err := s.execute(gpsArgs(path, lat, lon)...)
	if err != nil {
		return err
	}
	if !writeSucceeded(out) {
		return errors.Newf("exiftool rejected GPS write: %s", out).
			Component("exiftool").
			Category(errors.CategoryExifTool).
			FileContext(path).
			Build()
	}
	s.logger.Debug("gps written", "path", path, "lat", lat, "lon", lon)
	return nil
}

// BatchWriteGPS writes coordinates to each file in turn, reporting
// progress per file. Failures do not stop the batch.
func (s *Session) BatchWriteGPS(coords []FileCoordinates, progress func(done, total int, path string)) []WriteResult {
	results := make([]WriteResult, 0, len(coords))
	for i, fc := range coords {
		if progress != nil {
			progress(i+1, len(coords), fc.Path)
		}
		results = append(results, WriteResult{
			Path: fc.Path,
			Err:  s.WriteGPS(fc.Path, fc.Latitude, fc.Longitude),
		})
	}
	return results
}

// ReadGPS reads decimal coordinates back out of a file's EXIF data.
func (s *Session) ReadGPS(path string) (lat, lon float64, err error) {
	if !s.IsAvailable() {
		return 0, 0, errors.New(ErrUnavailable).
			Component("exiftool").
			Category(errors.CategoryExifTool).
			Build()
	}

	out, err := s.execute("-GPSLatitude", "-GPSLongitude", "-n", "-s3", path)
	if err != nil {
		return 0, 0, err
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 {
		return 0, 0, errors.Newf("no GPS data in %s", path).
			Component("exiftool").
			Category(errors.CategoryNotFound).
			FileContext(path).
			Build()
	}
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(lines[0]), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(lines[1]), 64)
	if latErr != nil || lonErr != nil {
		return 0, 0, errors.Newf("unparseable GPS data in %s", path).
			Component("exiftool").
			Category(errors.CategoryExifTool).
			FileContext(path).
			Build()
	}
	return lat, lon, nil
}
