// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"github.com/dtn7/pngme-go/pkg/png"
)

// watch lists the chunks of PNG files appearing in a directory.
type watch struct {
	directory string
	retries   int
	backoff   time.Duration
	out       io.Writer

	// knownFiles maps a file name to its last listed state, to skip repeated events.
	knownFiles map[string]string

	watcher   *fsnotify.Watcher
	closeChan chan os.Signal
}

// watchCommand for the "watch" CLI option.
func watchCommand(conf tomlConfig, args []string, out io.Writer) error {
	args, err := parseFlags(newFlagSet("watch"), args, 1)
	if err != nil {
		return err
	}

	w := newWatch(args[0], conf.Watch.Retries, out)

	signal.Notify(w.closeChan, os.Interrupt)
	defer signal.Stop(w.closeChan)

	if w.watcher, err = fsnotify.NewWatcher(); err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	if err = w.watcher.Add(w.directory); err != nil {
		_ = w.watcher.Close()
		return fmt.Errorf("adding %s to file watcher: %w", w.directory, err)
	}

	log.WithField("directory", w.directory).Info("Watching for PNG files")
	return w.handler()
}

func newWatch(directory string, retries int, out io.Writer) *watch {
	if retries < 1 {
		retries = 1
	}

	return &watch{
		directory:  directory,
		retries:    retries,
		backoff:    100 * time.Millisecond,
		out:        out,
		knownFiles: make(map[string]string),
		closeChan:  make(chan os.Signal, 1),
	}
}

func (w *watch) handler() error {
	defer func() {
		_ = w.watcher.Close()
	}()

	for {
		select {
		case <-w.closeChan:
			log.Info("Received interrupt signal")
			return nil

		case e, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("fsnotify's Event channel was closed")
			}

			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 || !strings.EqualFold(filepath.Ext(e.Name), ".png") {
				log.WithFields(log.Fields{
					"file":      e.Name,
					"operation": e.Op.String(),
				}).Debug("Ignoring fsnotify event")
				continue
			}

			_ = w.inspectFile(e.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("fsnotify's Errors channel was closed")
			}

			log.WithError(err).Error("fsnotify errored")
			return err
		}
	}
}

// inspectFile lists a file's chunks. As the file might still be written,
// reading is retried with an exponential backoff.
func (w *watch) inspectFile(filename string) (err error) {
	var p *png.Png

	for i := 0; i < w.retries; i++ {
		var data []byte
		if data, err = os.ReadFile(filename); err != nil {
			log.WithError(err).WithField("file", filename).Warn("Reading file errored, retrying..")
		} else if p, err = png.ParsePng(data); err != nil {
			log.WithError(err).WithField("file", filename).Warn("Parsing PNG errored, retrying..")
		} else {
			break
		}

		time.Sleep(time.Duration(math.Pow(2, float64(i))) * w.backoff)
	}

	if err != nil {
		log.WithError(err).WithField("file", filename).Error("Failed to process file, giving up.")
		return
	}

	state := p.String()
	if known, ok := w.knownFiles[filename]; ok && known == state {
		log.WithField("file", filename).Debug("Skipping file; already listed")
		return nil
	}
	w.knownFiles[filename] = state

	log.WithFields(log.Fields{
		"file":   filename,
		"chunks": len(p.Chunks()),
	}).Info("Listing PNG file")

	if _, err = fmt.Fprintf(w.out, "%s:\n", filename); err != nil {
		return
	}
	return writeChunkList(w.out, p.Chunks())
}
