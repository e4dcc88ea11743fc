// Package network supplies rail network definitions: the built-in reference
// network, YAML network files, and a content fingerprint.
package network

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
)

// File is the on-disk representation of a network.
type File struct {
	Routes []domain.Edge `yaml:"routes"`
}

// Reference returns the network of the classic train routing exercise.
func Reference() []domain.Edge {
	return []domain.Edge{
		{From: "A", To: "B", Weight: 5},
		{From: "A", To: "D", Weight: 5},
		{From: "A", To: "E", Weight: 7},
		{From: "B", To: "C", Weight: 4},
		{From: "C", To: "D", Weight: 8},
		{From: "C", To: "E", Weight: 2},
		{From: "D", To: "C", Weight: 8},
		{From: "D", To: "E", Weight: 6},
		{From: "E", To: "B", Weight: 3},
	}
}

// LoadFile reads a YAML network file. Edge validity is checked by routing.New.
func LoadFile(path string) ([]domain.Edge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read network file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML network document.
func Parse(data []byte) ([]domain.Edge, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse network file: %w", err)
	}
	if len(file.Routes) == 0 {
		return nil, fmt.Errorf("parse network file: no routes defined")
	}
	return file.Routes, nil
}

// WriteFile stores edges as a YAML network file.
func WriteFile(path string, edges []domain.Edge) error {
	data, err := yaml.Marshal(File{Routes: edges})
	if err != nil {
		return fmt.Errorf("encode network file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write network file: %w", err)
	}
	return nil
}

// Fingerprint hashes the edge set independent of input order, so two
// definitions of the same network share a fingerprint.
func Fingerprint(edges []domain.Edge) string {
	sorted := slices.Clone(edges)
	slices.SortFunc(sorted, func(a, b domain.Edge) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		if c := cmp.Compare(a.To, b.To); c != 0 {
			return c
		}
		return cmp.Compare(a.Weight, b.Weight)
	})

	h := xxhash.New()
	for _, e := range sorted {
		_, _ = h.WriteString(string(e.From))
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(string(e.To))
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(strconv.Itoa(e.Weight))
		_, _ = h.WriteString("\n")
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
