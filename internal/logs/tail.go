package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

const (
	maxLineBytes        = 1024 * 1024
	defaultPollInterval = 250 * time.Millisecond
)

// Result holds lines read from a file and the offset just past them.
type Result struct {
	Lines  []string
	Offset int64
}

// Last returns the final n lines of path. A missing file yields an empty
// result. n <= 0 returns no lines but still reports the end offset.
func Last(path string, n int) (Result, error) {
	file, err := openRegular(path)
	if err != nil || file == nil {
		return Result{}, err
	}
	defer file.Close()

	if n <= 0 {
		end, err := file.Seek(0, io.SeekEnd)
		if err != nil {
			return Result{}, fmt.Errorf("seek %s: %w", path, err)
		}
		return Result{Offset: end}, nil
	}

	ring := make([]string, n)
	count := 0
	next := 0
	offset, err := scanLines(file, func(line string) {
		ring[next] = line
		next = (next + 1) % n
		if count < n {
			count++
		}
	})
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}

	lines := make([]string, count)
	start := 0
	if count == n {
		start = next
	}
	for i := 0; i < count; i++ {
		lines[i] = ring[(start+i)%n]
	}
	return Result{Lines: lines, Offset: offset}, nil
}

// From returns every complete line written at or after offset. An offset
// beyond the end of the file, as after truncation, restarts from zero.
func From(path string, offset int64) (Result, error) {
	file, err := openRegular(path)
	if err != nil || file == nil {
		return Result{Offset: 0}, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if offset < 0 || offset > info.Size() {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return Result{}, fmt.Errorf("seek %s: %w", path, err)
	}

	var lines []string
	read, err := scanLines(file, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Result{Lines: lines, Offset: offset + read}, nil
}

// Follow polls path for lines appended after offset and hands each one to
// emit until ctx is done or emit returns an error. A canceled ctx is not
// reported as an error.
func Follow(ctx context.Context, path string, offset int64, poll time.Duration, emit func(string) error) error {
	if poll <= 0 {
		poll = defaultPollInterval
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		result, err := From(path, offset)
		if err != nil {
			return err
		}
		for _, line := range result.Lines {
			if err := emit(line); err != nil {
				return err
			}
		}
		offset = result.Offset

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func openRegular(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return file, nil
}

// scanLines feeds every complete line of r to fn and returns the number of
// bytes consumed. A trailing fragment without a newline is left unread so a
// follower picks it up once the writer finishes the line.
func scanLines(r io.Reader, fn func(string)) (int64, error) {
	reader := bufio.NewReaderSize(r, 64*1024)
	var consumed int64
	for {
		line, err := reader.ReadSlice('\n')
		if err == nil {
			consumed += int64(len(line))
			text := line[:len(line)-1]
			if n := len(text); n > 0 && text[n-1] == '\r' {
				text = text[:n-1]
			}
			fn(string(text))
			continue
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			full := append([]byte(nil), line...)
			rest, restErr := reader.ReadBytes('\n')
			if restErr != nil && !errors.Is(restErr, io.EOF) {
				return consumed, restErr
			}
			if !errors.Is(restErr, io.EOF) {
				full = append(full, rest...)
				if len(full) > maxLineBytes {
					full = full[:maxLineBytes]
				}
				consumed += int64(len(line) + len(rest))
				fn(string(trimNewline(full)))
				continue
			}
			return consumed, nil
		}
		if errors.Is(err, io.EOF) {
			return consumed, nil
		}
		return consumed, err
	}
}

func trimNewline(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
	}
	if n := len(b); n > 0 && b[n-1] == '\r' {
		b = b[:n-1]
	}
	return b
}
