package recommend

import "github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"

var strengthsByTrack = map[catalog.TrackKey][]string{
	catalog.TrackWebDevelopment: {
		"Empathy for the people using what you build",
		"Fast, iterative prototyping",
		"Eye for layout and interaction detail",
	},
	catalog.TrackDataScience: {
		"Comfort with numbers and statistical reasoning",
		"Curiosity about why things happen",
		"Evidence-driven decision making",
	},
	catalog.TrackCybersecurity: {
		"Instinct for spotting what could go wrong",
		"Methodical, detail-oriented investigation",
		"Strong sense of responsibility for protecting others",
	},
	catalog.TrackCloudEngineering: {
		"Systems thinking across many moving parts",
		"Drive to automate repetitive work",
		"Calm, reliability-first operating style",
	},
	catalog.TrackAIEngineering: {
		"Ambition to build systems that learn",
		"Mathematical intuition paired with experimentation",
		"Patience for long, research-style problems",
	},
}

var optimalPathByTrack = map[catalog.TrackKey]string{
	catalog.TrackWebDevelopment:   "Start with HTML, CSS and JavaScript fundamentals, build and deploy small full-stack projects, then specialize in a modern framework and API design.",
	catalog.TrackDataScience:      "Start with Python, SQL and descriptive statistics, practice exploratory analysis on real datasets, then move into modeling and communicating results.",
	catalog.TrackCybersecurity:    "Start with networking and operating system fundamentals, practice in hands-on labs and CTFs, then specialize in defensive operations or offensive testing.",
	catalog.TrackCloudEngineering: "Start with Linux, networking and scripting, deploy workloads on a major cloud provider, then adopt containers, CI/CD and infrastructure as code.",
	catalog.TrackAIEngineering:    "Start with Python, linear algebra and probability, train classic models end to end, then move into deep learning and shipping models to production.",
}
