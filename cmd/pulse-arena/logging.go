package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

const logFlags = log.Ltime | log.Lmicroseconds | log.Lshortfile

// setupLogging routes the standard logger to path; an empty path discards output
// The caller closes the returned file
func setupLogging(path string) (*os.File, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	log.SetFlags(logFlags)
	return f, nil
}
