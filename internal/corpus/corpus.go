// Package corpus provides the built-in sentence and word pools.
//
// Each pool is a plain text file, one entry per line, keyed by
// language and kind. A file with the same name in the user corpus
// directory overrides the embedded default.
package corpus

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/taja/internal/model"
)

//go:embed data/*.txt
var defaults embed.FS

// ErrEmptyCorpus reports a pool with no usable entries.
var ErrEmptyCorpus = errors.New("corpus is empty")

// Sentences returns the sentence pool for a language and practice
// type. userDir may be empty to use only the embedded defaults.
func Sentences(lang model.Language, practice model.PracticeType, userDir string) ([]string, error) {
	return load(lang, string(practice), userDir)
}

// Words returns the word pool for a language.
func Words(lang model.Language, userDir string) ([]string, error) {
	return load(lang, "word", userDir)
}

// FileName returns the pool file name for a language and kind, e.g.
// "korean-short.txt".
func FileName(lang model.Language, kind string) string {
	return fmt.Sprintf("%s-%s.txt", lang, kind)
}

func load(lang model.Language, kind, userDir string) ([]string, error) {
	name := FileName(lang, kind)
	if userDir != "" {
		lines, err := loadFile(filepath.Join(userDir, name))
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		// An empty or missing user file falls back to the defaults.
		if len(lines) > 0 {
			return lines, nil
		}
	}
	raw, err := defaults.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("no built-in corpus for %s %s: %w", lang, kind, ErrEmptyCorpus)
	}
	lines, err := parseLines(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCorpus
	}
	return lines, nil
}

// loadFile reads one entry per line from path, skipping blank lines.
func loadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only corpus file.
			_ = cerr
		}
	}()
	return parseLines(file)
}

func parseLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
