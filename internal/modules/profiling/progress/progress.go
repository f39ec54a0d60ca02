// Package progress derives per-module completion for a questionnaire session.
// Reports are computed from scratch on every call.
package progress

import "github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"

type ModuleProgress struct {
	Module    catalog.ModuleKey `json:"module"`
	Answered  int               `json:"answered"`
	Total     int               `json:"total"`
	Completed bool              `json:"completed"`
	Percent   float64           `json:"percent"`
}

type Report struct {
	Modules          []ModuleProgress    `json:"modules"`
	CurrentModule    catalog.ModuleKey   `json:"current_module"`
	CompletedModules []catalog.ModuleKey `json:"completed_modules"`
	RemainingModules []catalog.ModuleKey `json:"remaining_modules"`
	Answered         int                 `json:"answered"`
	Total            int                 `json:"total"`
}

// Calculate walks modules in declaration order. answered reports whether a
// question id has a recorded response.
func Calculate(order []catalog.ModuleKey, questionIDs map[catalog.ModuleKey][]string, answered func(id string) bool) Report {
	rep := Report{
		Modules:          make([]ModuleProgress, 0, len(order)),
		CompletedModules: []catalog.ModuleKey{},
		RemainingModules: []catalog.ModuleKey{},
	}
	firstIncomplete := catalog.ModuleKey("")
	lastComplete := catalog.ModuleKey("")

	for _, m := range order {
		ids := questionIDs[m]
		mp := ModuleProgress{Module: m, Total: len(ids)}
		for _, id := range ids {
			if answered(id) {
				mp.Answered++
			}
		}
		mp.Completed = mp.Total > 0 && mp.Answered >= mp.Total
		if mp.Total > 0 {
			mp.Percent = float64(mp.Answered) / float64(mp.Total) * 100
		}

		if mp.Completed {
			rep.CompletedModules = append(rep.CompletedModules, m)
			lastComplete = m
		} else {
			rep.RemainingModules = append(rep.RemainingModules, m)
			if firstIncomplete == "" {
				firstIncomplete = m
			}
		}
		rep.Answered += mp.Answered
		rep.Total += mp.Total
		rep.Modules = append(rep.Modules, mp)
	}

	rep.CurrentModule = firstIncomplete
	if rep.CurrentModule == "" {
		rep.CurrentModule = lastComplete
	}
	return rep
}
