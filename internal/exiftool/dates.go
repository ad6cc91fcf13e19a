package exiftool

import (
	"strings"

	"github.com/antonholmquist/jason"
)

// zeroDate is what some cameras write when the clock was never set.
const zeroDate = "0000:00:00 00:00:00"

// dateTags lists the EXIF date tags in priority order: the moment the
// shutter fired beats the file creation time beats the last edit.
var dateTags = []string{"DateTimeOriginal", "CreateDate", "ModifyDate"}

// ProgressFunc reports batch progress as files are processed.
type ProgressFunc func(done, total int)

// BatchReadDates reads capture timestamps for the given files, chunked
// to the session batch size. The result maps each path to its timestamp
// in YYYY-MM-DD_HH-MM-SS form; files without a usable date are omitted.
// Results are cached for the lifetime of the session, so re-running a
// rename over a folder only queries files not seen before.
func (s *Session) BatchReadDates(paths []string, progress ProgressFunc) (map[string]string, error) {
	results := make(map[string]string, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	var misses []string
	for _, p := range paths {
		if v, ok := s.dateCache.Get(p); ok {
			results[p] = v.(string)
			continue
		}
		misses = append(misses, p)
	}

	total := len(misses)
	for i := 0; i < len(misses); i += s.batchSize {
		end := min(i+s.batchSize, len(misses))
		batch := misses[i:end]

		args := append([]string{"-json"}, tagArgs()...)
		args = append(args, batch...)
		out, err := s.execute(args...)
		if err != nil {
			return results, err
		}

		for path, date := range parseDateReply(out) {
			results[path] = date
			s.dateCache.SetDefault(path, date)
		}
		if progress != nil {
			progress(end, total)
		}
	}
	return results, nil
}

func tagArgs() []string {
	args := make([]string, len(dateTags))
	for i, tag := range dateTags {
		args[i] = "-" + tag
	}
	return args
}

// parseDateReply extracts per-file timestamps from a -json reply.
// exiftool may print summary lines before the JSON array, so parsing
// starts at the first bracket. A reply that contains no parseable JSON
// yields an empty map, matching the per-file omission contract.
func parseDateReply(output string) map[string]string {
	results := map[string]string{}

	if i := strings.Index(output, "["); i >= 0 {
		output = output[i:]
	}
	root, err := jason.NewValueFromBytes([]byte(output))
	if err != nil {
		return results
	}
	entries, err := root.Array()
	if err != nil {
		return results
	}

	for _, entry := range entries {
		obj, err := entry.Object()
		if err != nil {
			continue
		}
		path, err := obj.GetString("SourceFile")
		if err != nil || path == "" {
			continue
		}
		for _, tag := range dateTags {
			raw, err := obj.GetString(tag)
			if err != nil || raw == "" || raw == zeroDate {
				continue
			}
			if formatted := formatExifDateTime(raw); formatted != "" {
				results[path] = formatted
			}
			break
		}
	}
	return results
}

// formatExifDateTime converts an EXIF timestamp, "YYYY:MM:DD HH:MM:SS"
// with an optional timezone suffix, into the filename-safe
// YYYY-MM-DD_HH-MM-SS form.
func formatExifDateTime(raw string) string {
	// Strip a timezone suffix like +08:00 or -08:00.
	if i := strings.Index(raw, "+"); i >= 0 {
		raw = strings.TrimSpace(raw[:i])
	} else if strings.Count(raw, "-") > 2 {
		if i := strings.LastIndex(raw, "-"); strings.Contains(raw[i+1:], ":") {
			raw = strings.TrimSpace(raw[:i])
		}
	}

	raw = strings.Replace(raw, ":", "-", 2)
	raw = strings.ReplaceAll(raw, " ", "_")
	return strings.ReplaceAll(raw, ":", "-")
}
