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
	// maxLineBytes caps a single log line; longer lines fail the read.
	maxLineBytes = 1024 * 1024

	pollInterval = 250 * time.Millisecond
)

// Snapshot reads up to the last limit lines of the log file and reports the
// byte offset where the read ended, which is where a Poll should resume.
// limit <= 0 reads the whole file. A missing file yields no lines at offset
// zero.
func Snapshot(path string, limit int) ([]string, int64, error) {
	if limit <= 0 {
		return readAfter(path, 0)
	}
	return readLast(path, limit)
}

// Poll reads lines appended after offset. When nothing new is available it
// keeps checking until a line arrives, wait elapses, or ctx is done. The
// returned offset is valid even when err is non-nil, so a follow loop can
// resume where it left off.
func Poll(ctx context.Context, path string, offset int64, wait time.Duration) ([]string, int64, error) {
	deadline := time.Now().Add(wait)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		lines, next, err := readAfter(path, offset)
		if err != nil || len(lines) > 0 {
			return lines, next, err
		}
		offset = next

		if wait <= 0 || time.Now().After(deadline) {
			return nil, offset, nil
		}
		select {
		case <-ctx.Done():
			return nil, offset, ctx.Err()
		case <-ticker.C:
		}
	}
}

// readLast scans the whole file through a ring buffer so only the final
// limit lines are kept.
func readLast(path string, limit int) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	ring := make([]string, limit)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read log file: %w", err)
	}

	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, 0, fmt.Errorf("locate log offset: %w", err)
	}

	lines := make([]string, count)
	if count == limit {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, offset, nil
}

// readAfter scans forward from offset. An offset outside the current file
// size, after truncation for instance, resets to the end so the caller never
// rereads rewritten content.
func readAfter(path string, offset int64) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, offset, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, offset, fmt.Errorf("stat log file: %w", err)
	}
	if offset < 0 || offset > info.Size() {
		offset = info.Size()
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, offset, fmt.Errorf("seek log file: %w", err)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, offset, fmt.Errorf("read log file: %w", err)
	}

	next, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, offset, fmt.Errorf("locate log offset: %w", err)
	}
	return lines, next, nil
}
