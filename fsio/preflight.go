package fsio

import (
	"fmt"
	"os"
)

// VerifyReadable checks that every path is a readable file, so an
// operation can fail before any mutation starts.
//
// With missingOK, paths that do not exist pass. With attemptOpen, each
// existing path is additionally opened for reading to catch conditions the
// access bits miss.
func VerifyReadable(paths []string, missingOK, attemptOpen bool) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		exists := err == nil
		if exists && !info.Mode().IsRegular() {
			return fmt.Errorf("%w: %s is not a file", ErrReadPermissions, path)
		}
		if !exists && !missingOK {
			return fmt.Errorf("%w: %s does not exist", ErrReadPermissions, path)
		}
		if exists && !canRead(path) {
			return fmt.Errorf("%w: %s", ErrReadPermissions, path)
		}
		if exists && attemptOpen {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("%w: open %s: %v", ErrReadPermissions, path, err)
			}
			f.Close()
		}
	}
	return nil
}

// VerifyWritableFiles checks that every path is a writable file. Semantics
// of missingOK and attemptOpen match VerifyReadable; attemptOpen opens in
// append mode so existing content is never touched.
func VerifyWritableFiles(paths []string, missingOK, attemptOpen bool) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		exists := err == nil
		if exists && !info.Mode().IsRegular() {
			return fmt.Errorf("%w: %s is not a file", ErrWritePermissions, path)
		}
		if !exists && !missingOK {
			return fmt.Errorf("%w: %s does not exist", ErrWritePermissions, path)
		}
		if exists && !canWrite(path) {
			return fmt.Errorf("%w: %s", ErrWritePermissions, path)
		}
		if exists && attemptOpen {
			f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
			if err != nil {
				return fmt.Errorf("%w: open %s: %v", ErrWritePermissions, path, err)
			}
			f.Close()
		}
	}
	return nil
}

// VerifyWritableDirs checks that every path is a directory that can be
// written to and traversed.
func VerifyWritableDirs(paths []string, missingOK bool) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		exists := err == nil
		if exists && !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", ErrWritePermissions, path)
		}
		if !exists {
			if missingOK {
				continue
			}
			return fmt.Errorf("%w: %s does not exist", ErrWritePermissions, path)
		}
		if !canWrite(path) {
			return fmt.Errorf("%w: %s lacks write permission", ErrWritePermissions, path)
		}
		if !canTraverse(path) {
			return fmt.Errorf("%w: %s lacks access permission", ErrWritePermissions, path)
		}
	}
	return nil
}
