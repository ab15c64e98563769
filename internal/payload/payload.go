package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spigell/jobmatch/internal/jobs"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// ErrEmptyInput is returned when the input holds nothing but whitespace.
var ErrEmptyInput = errors.New("input is empty")

// Source describes where the request document comes from.
type Source struct {
	// Path is a file path, or Stdin.
	Path string
	// Stdin is read when Path is Stdin. Defaults to os.Stdin.
	Stdin io.Reader
}

// Request is the JSON document accepted by every action. Each action reads
// only the members it needs.
type Request struct {
	UserData  *jobs.UserData `json:"user_data"`
	TargetJob *jobs.Job      `json:"target_job"`
	Jobs      []*jobs.Job    `json:"jobs"`
}

// Load returns the raw document from the provided source. The returned data
// is always trimmed.
func Load(src Source) ([]byte, error) {
	path := strings.TrimSpace(src.Path)
	if path == "" {
		return nil, fmt.Errorf("input is not configured")
	}

	var (
		data []byte
		err  error
	)
	if path == Stdin {
		in := src.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err = io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("reading input from stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading input from file %q: %w", path, err)
		}
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyInput)
	}

	return data, nil
}

// Decode parses a request document.
func Decode(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decoding request: %w", err)
	}
	if req.UserData == nil {
		req.UserData = &jobs.UserData{}
	}
	return &req, nil
}

// Read loads and decodes a request.
func Read(src Source) (*Request, error) {
	data, err := Load(src)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
