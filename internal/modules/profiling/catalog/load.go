package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog, parsed and validated once per process.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Load(defaultCatalogYAML)
	})
	return defaultCat, defaultErr
}

type fileCatalog struct {
	Version      string         `yaml:"version"`
	MinResponses int            `yaml:"min_responses"`
	Modules      []fileModule   `yaml:"modules"`
	Tracks       []fileTrack    `yaml:"tracks"`
	Questions    []fileQuestion `yaml:"questions"`
}

type fileModule struct {
	Key    string  `yaml:"key"`
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
}

type fileTrack struct {
	Key         string   `yaml:"key"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	CareerPaths []string `yaml:"career_paths"`
}

type fileQuestion struct {
	ID      string       `yaml:"id"`
	Module  string       `yaml:"module"`
	Prompt  string       `yaml:"prompt"`
	Options []fileOption `yaml:"options"`
}

type fileOption struct {
	Code   string         `yaml:"code"`
	Text   string         `yaml:"text"`
	Points map[string]int `yaml:"points"`
}

// Load decodes and validates a YAML catalog document.
func Load(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if fc.MinResponses <= 0 {
		return nil, fmt.Errorf("catalog %q: min_responses must be positive", fc.Version)
	}

	c := &Catalog{
		version:      strings.TrimSpace(fc.Version),
		minResponses: fc.MinResponses,
		byID:         map[string]int{},
		byModule:     map[ModuleKey][]int{},
	}

	for _, fm := range fc.Modules {
		key := ModuleKey(strings.TrimSpace(fm.Key))
		if !knownModule(key) {
			return nil, fmt.Errorf("catalog: unknown module %q", fm.Key)
		}
		if c.Weight(key) != 0 {
			return nil, fmt.Errorf("catalog: duplicate module %q", key)
		}
		if fm.Weight <= 0 {
			return nil, fmt.Errorf("catalog: module %q weight must be positive", key)
		}
		c.modules = append(c.modules, Module{Key: key, Name: fm.Name, Weight: fm.Weight})
	}

	if len(fc.Tracks) != len(trackOrder) {
		return nil, fmt.Errorf("catalog: expected %d tracks, got %d", len(trackOrder), len(fc.Tracks))
	}
	for i, ft := range fc.Tracks {
		key := TrackKey(strings.TrimSpace(ft.Key))
		if key != trackOrder[i] {
			return nil, fmt.Errorf("catalog: track %d is %q, want %q", i, ft.Key, trackOrder[i])
		}
		c.tracks = append(c.tracks, Track{
			Key:         key,
			Name:        ft.Name,
			Description: ft.Description,
			CareerPaths: ft.CareerPaths,
		})
	}

	for _, fq := range fc.Questions {
		q, err := buildQuestion(fq)
		if err != nil {
			return nil, err
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate question id %q", q.ID)
		}
		if c.Weight(q.Module) == 0 {
			return nil, fmt.Errorf("catalog: question %q references undeclared module %q", q.ID, q.Module)
		}
		c.byID[q.ID] = len(c.questions)
		c.byModule[q.Module] = append(c.byModule[q.Module], len(c.questions))
		c.questions = append(c.questions, q)
	}
	if len(c.questions) == 0 {
		return nil, fmt.Errorf("catalog %q has no questions", c.version)
	}
	if c.minResponses > len(c.questions) {
		return nil, fmt.Errorf("catalog: min_responses %d exceeds question count %d", c.minResponses, len(c.questions))
	}
	return c, nil
}

func buildQuestion(fq fileQuestion) (Question, error) {
	q := Question{
		ID:     strings.TrimSpace(fq.ID),
		Module: ModuleKey(strings.TrimSpace(fq.Module)),
		Prompt: fq.Prompt,
	}
	if q.ID == "" {
		return q, fmt.Errorf("catalog: question with empty id")
	}
	if len(fq.Options) == 0 {
		return q, fmt.Errorf("catalog: question %q has no options", q.ID)
	}
	seen := map[string]bool{}
	for _, fo := range fq.Options {
		code := NormalizeCode(fo.Code)
		if code == "" || seen[code] {
			return q, fmt.Errorf("catalog: question %q has empty or duplicate option code %q", q.ID, fo.Code)
		}
		seen[code] = true
		opt := Option{Code: code, Text: fo.Text}
		for track, pts := range fo.Points {
			if !opt.Points.Set(TrackKey(track), pts) {
				return q, fmt.Errorf("catalog: question %q option %q: unknown track %q", q.ID, code, track)
			}
		}
		q.Options = append(q.Options, opt)
	}
	return q, nil
}
