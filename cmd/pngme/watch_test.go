// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dtn7/pngme-go/pkg/png"
)

func TestWatchInspectFile(t *testing.T) {
	filename := writeTestPng(t, minimalPng)

	var out bytes.Buffer
	w := newWatch(filepath.Dir(filename), 1, &out)

	if err := w.inspectFile(filename); err != nil {
		t.Fatal(err)
	}
	expected := filename + ":\n0\tIHDR\t13 bytes\t\n1\tIEND\t0 bytes\t\n"
	if out.String() != expected {
		t.Fatalf("expected %q, got %q", expected, out.String())
	}

	// An unchanged file is listed only once.
	if err := w.inspectFile(filename); err != nil {
		t.Fatal(err)
	}
	if out.String() != expected {
		t.Fatalf("unchanged file was listed again: %q", out.String())
	}
}

func TestWatchInspectChangedFile(t *testing.T) {
	filename := writeTestPng(t, minimalPng)

	var out bytes.Buffer
	w := newWatch(filepath.Dir(filename), 1, &out)

	if err := w.inspectFile(filename); err != nil {
		t.Fatal(err)
	}
	out.Reset()

	p, err := png.ParsePng(minimalPng)
	if err != nil {
		t.Fatal(err)
	}
	p.InsertBeforeEnd(png.NewChunk(png.MustParseChunkType("RuSt"), []byte("Secret message")))
	if err := os.WriteFile(filename, p.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}

	if err := w.inspectFile(filename); err != nil {
		t.Fatal(err)
	}
	expected := filename + ":\n0\tIHDR\t13 bytes\t\n1\tRuSt\t14 bytes\tPRIVATE,SAFE_TO_COPY\n2\tIEND\t0 bytes\t\n"
	if out.String() != expected {
		t.Fatalf("expected %q, got %q", expected, out.String())
	}
}

func TestWatchInspectInvalidFile(t *testing.T) {
	filename := writeTestPng(t, []byte("not a PNG"))

	var out bytes.Buffer
	w := newWatch(filepath.Dir(filename), 2, &out)
	w.backoff = time.Millisecond

	if err := w.inspectFile(filename); !errors.Is(err, png.ErrInvalidSignature) {
		t.Fatalf("expected InvalidSignature, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("invalid file produced output %q", out.String())
	}
}

func TestNewWatchRetries(t *testing.T) {
	if w := newWatch(t.TempDir(), 0, &bytes.Buffer{}); w.retries != 1 {
		t.Fatalf("expected at least one retry, got %d", w.retries)
	}
}
