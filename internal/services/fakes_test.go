package services_test

import (
	"fmt"
	"mime/multipart"
)

// fakeFiles records intake activity instead of touching the filesystem
type fakeFiles struct {
	saved   []string
	removed []string
	saveErr error
	size    int64
}

func (f *fakeFiles) Save(fh *multipart.FileHeader) (string, int64, error) {
	if f.saveErr != nil {
		return "", 0, f.saveErr
	}
	name := fmt.Sprintf("stored-%d.png", len(f.saved)+1)
	f.saved = append(f.saved, name)
	size := f.size
	if size == 0 {
		size = 1024
	}
	return name, size, nil
}

func (f *fakeFiles) RemoveQuietly(filename string) {
	f.removed = append(f.removed, filename)
}
