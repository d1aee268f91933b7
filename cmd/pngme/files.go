// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/dtn7/pngme-go/pkg/png"
)

// readPngFile reads and parses a whole PNG file.
func readPngFile(filename string) (*png.Png, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	p, err := png.ParsePng(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	if validErr := p.CheckValid(); validErr != nil {
		log.WithFields(log.Fields{
			"file":  filename,
			"error": validErr,
		}).Warn("PNG file is structurally questionable")
	}

	return p, nil
}

// writePngFile serializes p and replaces filename with it. The data is first
// written into a temporary file next to the target, which is then renamed.
// An existing file's mode is kept, otherwise mode is used.
func writePngFile(filename string, p *png.Png, mode os.FileMode) (err error) {
	if fi, statErr := os.Stat(filename); statErr == nil {
		mode = fi.Mode().Perm()
	}

	f, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if _, err = p.WriteTo(f); err != nil {
		return
	}
	if err = f.Chmod(mode); err != nil {
		return
	}
	if err = f.Sync(); err != nil {
		return
	}
	if err = f.Close(); err != nil {
		return
	}

	return os.Rename(f.Name(), filename)
}
