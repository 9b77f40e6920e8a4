// This file is part of Gophernes.
//
// Gophernes is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophernes is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophernes.  If not, see <https://www.gnu.org/licenses/>.

// Package pngwriter is an implementation of the television.FrameRenderer
// interface that saves frames to disk as PNG files.
//
// Frames are encoded on a separate goroutine. Frames are handed to the
// goroutine through a television.Handoff and so the policy of the handoff
// decides what happens when the encoder can not keep up with the emulation.
package pngwriter

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/television"
	"github.com/jetsetilly/gophernes/logger"
)

// PNGError is the error pattern for all errors returned by the package.
const PNGError = "pngwriter: %v"

// the number of frames that can be waiting to be encoded
const queueLength = 8

// PNGWriter implements the television.FrameRenderer interface.
type PNGWriter struct {
	prefix string

	// save every nth frame. a value of zero means that only the most recent
	// frame is saved when rendering ends
	every int

	// the most recent frame
	last *television.Frame

	queue *television.Handoff[*television.Frame]

	wg  sync.WaitGroup
	err error

	// the names of the files that have been written
	Written []string
}

// NewPNGWriter is the preferred method of initialisation for the PNGWriter
// type. Files are named with the prefix followed by the frame number.
func NewPNGWriter(prefix string, every int, policy television.Policy, timeout time.Duration) *PNGWriter {
	pw := &PNGWriter{
		prefix: prefix,
		every:  every,
		queue:  television.NewHandoff[*television.Frame](queueLength, policy, timeout),
	}

	pw.wg.Add(1)
	go pw.service()

	return pw
}

// the encoding goroutine. the first error stops the encoding of further
// frames
func (pw *PNGWriter) service() {
	defer pw.wg.Done()
	for f := range pw.queue.Receive() {
		if pw.err != nil {
			continue
		}
		fn, err := Save(f, pw.filename(f.Number))
		if err != nil {
			pw.err = err
			continue
		}
		pw.Written = append(pw.Written, fn)
	}
}

func (pw *PNGWriter) filename(frameNum int) string {
	return fmt.Sprintf("%s_%06d.png", pw.prefix, frameNum)
}

// Save a single frame as a PNG file. Returns the filename of the saved file.
func Save(frame *television.Frame, filename string) (string, error) {
	dc := gg.NewContextForRGBA(frame.Image())
	if err := dc.SavePNG(filename); err != nil {
		return "", curated.Errorf(PNGError, err)
	}
	return filepath.Clean(filename), nil
}

// NewFrame implements the television.FrameRenderer interface.
func (pw *PNGWriter) NewFrame(frame *television.Frame) error {
	c := frame.Copy()
	pw.last = c
	if pw.every > 0 && frame.Number%pw.every == 0 {
		return pw.queue.Send(c)
	}
	return nil
}

// EndRendering implements the television.FrameRenderer interface. The
// function waits for every queued frame to be saved.
func (pw *PNGWriter) EndRendering() error {
	if pw.every == 0 && pw.last != nil {
		if err := pw.queue.Send(pw.last); err != nil {
			return err
		}
	}

	pw.queue.Close()
	pw.wg.Wait()

	if d := pw.queue.Dropped(); d > 0 {
		logger.Logf(logger.Allow, "pngwriter", "%d frames dropped", d)
	}

	return pw.err
}
