package extract

import (
	"fmt"
	"os"
	"time"

	"github.com/barasher/go-exiftool"
)

// exifTimeLayout is the timestamp format exiftool reports for
// DateTimeOriginal. No timezone; cameras record local time.
const exifTimeLayout = "2006:01:02 15:04:05"

// TimestampReader reads capture timestamps through a long-lived exiftool
// process. A nil reader is valid and always falls back to file mtime, so
// callers can degrade gracefully when the exiftool binary is missing.
type TimestampReader struct {
	et *exiftool.Exiftool
}

// NewTimestampReader starts the exiftool process.
func NewTimestampReader() (*TimestampReader, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize exiftool: %w", err)
	}
	return &TimestampReader{et: et}, nil
}

// Close stops the exiftool process.
func (r *TimestampReader) Close() error {
	if r == nil || r.et == nil {
		return nil
	}
	return r.et.Close()
}

// Timestamp returns the capture time of the image: EXIF DateTimeOriginal
// when present, file modification time otherwise.
func (r *TimestampReader) Timestamp(path string) time.Time {
	if r == nil || r.et == nil {
		return mtime(path)
	}

	fileInfos := r.et.ExtractMetadata(path)
	if len(fileInfos) == 0 || fileInfos[0].Err != nil {
		return mtime(path)
	}

	raw, err := fileInfos[0].GetString("DateTimeOriginal")
	if err != nil {
		return mtime(path)
	}
	ts, err := time.ParseInLocation(exifTimeLayout, raw, time.Local)
	if err != nil {
		return mtime(path)
	}
	return ts
}

func mtime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
