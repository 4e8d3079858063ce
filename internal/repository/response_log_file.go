package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"creator-quiz/internal/domain"
)

const maxLogLine = 1 << 20

// FileResponseLog es un log append-only de respuestas, una linea JSON por entrega.
type FileResponseLog struct {
	mu   sync.Mutex
	path string
}

func NewFileResponseLog(path string) (*FileResponseLog, error) {
	if path == "" {
		return nil, errors.New("response log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &FileResponseLog{path: path}, nil
}

func (l *FileResponseLog) Save(_ context.Context, resp domain.Response) error {
	line, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (l *FileResponseLog) GetByUserID(ctx context.Context, userID string) (domain.Response, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Response{}, ErrResponseNotFound
	}
	if err != nil {
		return domain.Response{}, err
	}
	defer f.Close()

	var (
		found  domain.Response
		ok     bool
		lineNo int
	)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLogLine)
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return domain.Response{}, err
		}
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var resp domain.Response
		if err := json.Unmarshal(raw, &resp); err != nil {
			return domain.Response{}, fmt.Errorf("response log line %d: %w", lineNo, err)
		}
		if resp.UserID == userID {
			found, ok = resp, true
		}
	}
	if err := scanner.Err(); err != nil {
		return domain.Response{}, err
	}
	if !ok {
		return domain.Response{}, ErrResponseNotFound
	}
	return found, nil
}
