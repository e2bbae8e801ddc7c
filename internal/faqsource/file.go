package faqsource

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agenthands/faqdesk/internal/core/model"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// document is the structured file layout: a top-level "faq" list.
type document struct {
	FAQ []model.FaqEntry `toml:"faq" yaml:"faq" json:"faq"`
}

func ReadFile(path string) ([]model.FaqEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read faq file '%s': %w", path, err)
	}

	entries, err := Parse(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("faq file '%s': %w", path, err)
	}
	return entries, nil
}

// Parse decodes data according to a file extension (".toml", ".yaml",
// ".yml", ".json", ".txt").
func Parse(ext string, data []byte) ([]model.FaqEntry, error) {
	var doc document
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case ".txt", "":
		return ParseText(data)
	default:
		return nil, fmt.Errorf("unsupported faq file type %q", ext)
	}
	return doc.FAQ, nil
}

// ParseText reads the plain Q:/A: format:
//
//	Q: What are the office working hours?
//	A: Office hours are 9:30 AM - 6:30 PM, Monday to Friday.
//
// Lines without a prefix continue the current question or answer. A pair is
// kept only when both halves are present.
func ParseText(data []byte) ([]model.FaqEntry, error) {
	var (
		entries []model.FaqEntry
		q, a    string
		mode    byte
	)
	flush := func() {
		if q != "" && a != "" {
			entries = append(entries, model.FaqEntry{Question: q, Answer: a})
		}
		q, a = "", ""
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "q:"):
			if q != "" && a != "" {
				flush()
			}
			q = strings.TrimSpace(line[2:])
			a = ""
			mode = 'q'
		case strings.HasPrefix(lower, "a:"):
			a = strings.TrimSpace(line[2:])
			mode = 'a'
		case line == "":
			continue
		case mode == 'q':
			q += " " + line
		case mode == 'a':
			a += " " + line
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()

	if len(entries) == 0 {
		return nil, fmt.Errorf("no Q:/A: pairs found")
	}
	return entries, nil
}
