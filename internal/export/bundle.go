package export

import (
	"archive/zip"
	"bytes"
	"time"

	"github.com/iksnae/dm-insights/internal"
)

// Bundle packages export files for download: nothing for no files, the file
// itself for one, and a zip archive named <partner>_export.zip for several
func Bundle(partner string, files []File) (*File, error) {
	switch len(files) {
	case 0:
		return nil, nil
	case 1:
		f := files[0]
		return &f, nil
	}

	name := SafeFileName(partner) + "_export.zip"
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			return nil, &internal.ExportError{Format: "zip", Path: name, Err: err}
		}
		if _, err := w.Write(f.Content); err != nil {
			return nil, &internal.ExportError{Format: "zip", Path: name, Err: err}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &internal.ExportError{Format: "zip", Path: name, Err: err}
	}
	return &File{Name: name, Content: buf.Bytes()}, nil
}
