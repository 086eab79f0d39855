package storage

import (
	"encoding/json"
	"errors"
	"os"
	"time"
)

// ExcludedCandidates is the content of the exclude file.
type ExcludedCandidates struct {
	Items []*ExcludedCandidate
}

// ExcludedCandidate is a candidate that later runs must skip.
type ExcludedCandidate struct {
	Name                string
	File                string
	FinalRecommendation string
	ExcludedAt          time.Time
}

// LoadExcluded reads the exclude file. A missing or empty file yields an empty list.
func LoadExcluded(path string) (*ExcludedCandidates, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return &ExcludedCandidates{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedCandidates{}, nil
	}

	var excluded ExcludedCandidates
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedCandidates) Append(s *ExcludedCandidates) {
	e.Items = append(e.Items, s.Items...)
}

// Names lists the excluded candidate names.
func (e *ExcludedCandidates) Names() []string {
	names := make([]string, 0, len(e.Items))
	for _, candidate := range e.Items {
		names = append(names, candidate.Name)
	}
	return names
}

func (e *ExcludedCandidates) Contains(name string) bool {
	for _, candidate := range e.Items {
		if candidate.Name == name {
			return true
		}
	}
	return false
}

// ToFile overwrites path with the list.
func (e *ExcludedCandidates) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
