package catalog

import (
	"strings"
)

// ModuleKey tags a question with the questionnaire module it belongs to.
type ModuleKey string

const (
	ModuleIdentityValues    ModuleKey = "identity_values"
	ModuleWorkStyle         ModuleKey = "work_style"
	ModuleAptitude          ModuleKey = "aptitude"
	ModuleTechnicalExposure ModuleKey = "technical_exposure"
	ModuleCareerGoals       ModuleKey = "career_goals"
)

func knownModule(m ModuleKey) bool {
	switch m {
	case ModuleIdentityValues, ModuleWorkStyle, ModuleAptitude, ModuleTechnicalExposure, ModuleCareerGoals:
		return true
	}
	return false
}

// Module is a thematic group of questions with its scoring weight.
type Module struct {
	Key    ModuleKey `json:"key"`
	Name   string    `json:"name"`
	Weight float64   `json:"weight"`
}

type Option struct {
	Code   string      `json:"code"`
	Text   string      `json:"text"`
	Points TrackPoints `json:"points"`
}

type Question struct {
	ID      string    `json:"id"`
	Module  ModuleKey `json:"module"`
	Prompt  string    `json:"prompt"`
	Options []Option  `json:"options"`
}

// NormalizeCode canonicalizes a submitted option code.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Option looks up an option by code.
func (q Question) Option(code string) (Option, bool) {
	code = NormalizeCode(code)
	for _, o := range q.Options {
		if o.Code == code {
			return o, true
		}
	}
	return Option{}, false
}

// Catalog is the versioned, immutable question set. All methods are safe for
// concurrent use; returned slices are copies.
type Catalog struct {
	version      string
	minResponses int
	modules      []Module
	tracks       []Track
	questions    []Question
	byID         map[string]int
	byModule     map[ModuleKey][]int
}

func (c *Catalog) Version() string { return c.version }

// MinResponses is the answered-question threshold for completing a session.
func (c *Catalog) MinResponses() int { return c.minResponses }

func (c *Catalog) Len() int { return len(c.questions) }

// Question returns the question with the given id; ok is false when the id is
// not in the catalog.
func (c *Catalog) Question(id string) (Question, bool) {
	i, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Question{}, false
	}
	return cloneQuestion(c.questions[i]), true
}

func (c *Catalog) QuestionsByModule(m ModuleKey) []Question {
	idx := c.byModule[m]
	out := make([]Question, 0, len(idx))
	for _, i := range idx {
		out = append(out, cloneQuestion(c.questions[i]))
	}
	return out
}

func (c *Catalog) AllQuestions() []Question {
	out := make([]Question, 0, len(c.questions))
	for _, q := range c.questions {
		out = append(out, cloneQuestion(q))
	}
	return out
}

// Modules returns the modules in declaration order.
func (c *Catalog) Modules() []Module {
	out := make([]Module, len(c.modules))
	copy(out, c.modules)
	return out
}

// Weight returns the category weight of m, or 0 for an unknown module.
func (c *Catalog) Weight(m ModuleKey) float64 {
	for _, mod := range c.modules {
		if mod.Key == m {
			return mod.Weight
		}
	}
	return 0
}

// ModuleQuestionIDs maps each module to its question ids in declaration order.
func (c *Catalog) ModuleQuestionIDs() map[ModuleKey][]string {
	out := make(map[ModuleKey][]string, len(c.modules))
	for _, m := range c.modules {
		ids := make([]string, 0, len(c.byModule[m.Key]))
		for _, i := range c.byModule[m.Key] {
			ids = append(ids, c.questions[i].ID)
		}
		out[m.Key] = ids
	}
	return out
}

func (c *Catalog) Track(k TrackKey) (Track, bool) {
	for _, t := range c.tracks {
		if t.Key == k {
			return cloneTrack(t), true
		}
	}
	return Track{}, false
}

// Tracks returns the tracks in declaration order.
func (c *Catalog) Tracks() []Track {
	out := make([]Track, 0, len(c.tracks))
	for _, t := range c.tracks {
		out = append(out, cloneTrack(t))
	}
	return out
}

func cloneQuestion(q Question) Question {
	opts := make([]Option, len(q.Options))
	copy(opts, q.Options)
	q.Options = opts
	return q
}

func cloneTrack(t Track) Track {
	paths := make([]string, len(t.CareerPaths))
	copy(paths, t.CareerPaths)
	t.CareerPaths = paths
	return t
}
