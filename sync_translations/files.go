package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	log "github.com/sirupsen/logrus"
)

var languagePlaceholder = regexp.MustCompile(`{{\s*language\s*}}`)

// renderPath substitutes the language into the path pattern and joins it to root.
func renderPath(root, pattern, language string) string {
	return filepath.Join(root, languagePlaceholder.ReplaceAllLiteralString(pattern, language))
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrFileRead, path, err)
	}
	return data, nil
}

// writeFile creates the parent directories of path as needed.
func writeFile(path string, data []byte) error {
	err := os.MkdirAll(filepath.Dir(path), os.ModePerm)
	if err != nil {
		return fmt.Errorf("%w: creating directory for %s: %w", ErrFileWrite, path, err)
	}
	err = os.WriteFile(path, data, 0666)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrFileWrite, path, err)
	}
	return nil
}

// readDocumentIfExists loads the translations already stored at path. A file that is
// missing, unreadable or unparsable yields an empty document.
func readDocumentIfExists(codec Codec, path string) *Document {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.WithField("path", path).Warnf("cannot read previous translations: %v", err)
		}
		return NewDocument()
	}

	doc, err := codec.Unmarshal(data)
	if err != nil {
		log.WithField("path", path).Warnf("ignoring previous translations: %v", err)
		return NewDocument()
	}
	return doc
}
