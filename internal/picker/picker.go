package picker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/term"

	"image-browser/internal/errors"
)

// Picker asks the user for a path. ok is false when the user chose nothing,
// which is not an error.
type Picker interface {
	PickFile(ctx context.Context) (path string, ok bool, err error)
	PickFolder(ctx context.Context) (path string, ok bool, err error)
}

// Static returns fixed answers. An empty field means nothing is chosen.
type Static struct {
	File   string
	Folder string
}

// PickFile returns s.File.
func (s Static) PickFile(ctx context.Context) (string, bool, error) {
	return s.File, s.File != "", nil
}

// PickFolder returns s.Folder.
func (s Static) PickFolder(ctx context.Context) (string, bool, error) {
	return s.Folder, s.Folder != "", nil
}

// Terminal prompts on out and reads one line from in. When in is not a
// terminal nothing is chosen, so a server started without a console never
// blocks waiting for input.
//
// One prompt runs at a time. A single goroutine owns in, so a line typed
// after a prompt was canceled answers the next prompt.
type Terminal struct {
	in  *os.File
	out io.Writer

	// isTerminal is term.IsTerminal; tests replace it.
	isTerminal func(fd int) bool

	slot     chan struct{}
	readOnce sync.Once
	lines    chan line
}

// NewTerminal creates a picker reading from in and prompting on out.
func NewTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{
		in:         in,
		out:        out,
		isTerminal: term.IsTerminal,
		slot:       make(chan struct{}, 1),
		lines:      make(chan line),
	}
}

// PickFile asks for an image file path.
func (t *Terminal) PickFile(ctx context.Context) (string, bool, error) {
	return t.prompt(ctx, "Image file: ")
}

// PickFolder asks for a folder path.
func (t *Terminal) PickFolder(ctx context.Context) (string, bool, error) {
	return t.prompt(ctx, "Image folder: ")
}

type line struct {
	text string
	err  error
}

func (t *Terminal) prompt(ctx context.Context, label string) (string, bool, error) {
	if t.in == nil || !t.isTerminal(int(t.in.Fd())) {
		return "", false, nil
	}

	select {
	case t.slot <- struct{}{}:
	case <-ctx.Done():
		return "", false, errors.Canceled(ctx.Err())
	}
	defer func() { <-t.slot }()

	if _, err := fmt.Fprint(t.out, label); err != nil {
		return "", false, errors.IO(err, "failed to write prompt")
	}

	t.readOnce.Do(func() { go t.readLines() })

	select {
	case <-ctx.Done():
		return "", false, errors.Canceled(ctx.Err())
	case l, ok := <-t.lines:
		if !ok {
			// Input already ended.
			return "", false, nil
		}
		if l.err != nil && l.err != io.EOF {
			return "", false, errors.IO(l.err, "failed to read selection")
		}
		return clean(l.text)
	}
}

// readLines hands each input line to the next prompt. It stops after the
// first read error and closes lines.
func (t *Terminal) readLines() {
	defer close(t.lines)
	reader := bufio.NewReader(t.in)
	for {
		text, err := reader.ReadString('\n')
		t.lines <- line{text: text, err: err}
		if err != nil {
			return
		}
	}
}

// clean trims whitespace and surrounding quotes, as pasted from a file
// manager. An empty answer means nothing was chosen.
func clean(text string) (string, bool, error) {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"'`)
	if text == "" {
		return "", false, nil
	}
	abs, err := filepath.Abs(text)
	if err != nil {
		return "", false, errors.InvalidArgument("invalid path %q: %v", text, err)
	}
	return abs, true, nil
}
