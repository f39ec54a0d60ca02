// Package scoring turns questionnaire responses into normalized 0-100 track
// scores.
//
// Each selected option contributes its per-track points multiplied by the
// module weight. A track's total is divided by the best total the catalog
// allows for that track, scaled down to the number of questions actually
// answered, so partial sessions are not deflated against the full catalog.
package scoring

import (
	"fmt"
	"math"

	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/session"
	perrors "github.com/yungbote/neurobridge-profiling/internal/pkg/errors"
)

type Result struct {
	// Raw holds the weighted totals before normalization.
	Raw map[catalog.TrackKey]float64 `json:"raw"`
	// Scores holds the normalized scores, one entry per track, each in [0,100].
	Scores   map[catalog.TrackKey]float64 `json:"scores"`
	Answered int                          `json:"answered"`
}

// Score aggregates responses against c. A response whose question or option
// is missing from the catalog fails the whole computation.
func Score(c *catalog.Catalog, responses []session.Response) (Result, error) {
	raw := zeroed()
	for _, r := range responses {
		q, ok := c.Question(r.QuestionID)
		if !ok {
			return Result{}, fmt.Errorf("score response %q: %w", r.QuestionID, perrors.ErrUnknownQuestion)
		}
		opt, ok := q.Option(r.Value)
		if !ok {
			return Result{}, fmt.Errorf("score response %q value %q: %w", r.QuestionID, r.Value, perrors.ErrInvalidOption)
		}
		w := c.Weight(q.Module)
		opt.Points.Each(func(k catalog.TrackKey, v int) {
			raw[k] += float64(v) * w
		})
	}

	max := MaxPossible(c)
	scale := 0.0
	if c.Len() > 0 {
		scale = float64(len(responses)) / float64(c.Len())
	}
	scores := zeroed()
	for _, k := range catalog.TrackKeys() {
		denom := max[k] * scale
		if denom <= 0 {
			continue
		}
		scores[k] = round2(clamp(raw[k]/denom*100, 0, 100))
	}
	return Result{Raw: raw, Scores: scores, Answered: len(responses)}, nil
}

// MaxPossible returns, per track, the weighted sum of the best option for
// that track across every catalog question.
func MaxPossible(c *catalog.Catalog) map[catalog.TrackKey]float64 {
	out := zeroed()
	for _, q := range c.AllQuestions() {
		w := c.Weight(q.Module)
		for _, k := range catalog.TrackKeys() {
			best := 0
			for _, o := range q.Options {
				if v := o.Points.Get(k); v > best {
					best = v
				}
			}
			out[k] += float64(best) * w
		}
	}
	return out
}

func zeroed() map[catalog.TrackKey]float64 {
	m := make(map[catalog.TrackKey]float64, len(catalog.TrackKeys()))
	for _, k := range catalog.TrackKeys() {
		m[k] = 0
	}
	return m
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
