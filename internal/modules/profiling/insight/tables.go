package insight

import "github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"

var foundationsByTrack = map[catalog.TrackKey][]string{
	catalog.TrackWebDevelopment:   {"HTML and CSS", "JavaScript", "HTTP and REST APIs", "Git and version control"},
	catalog.TrackDataScience:      {"Python", "SQL", "Descriptive statistics", "Data visualization"},
	catalog.TrackCybersecurity:    {"Networking fundamentals", "Linux administration", "Security principles (CIA triad)", "Scripting with Python or Bash"},
	catalog.TrackCloudEngineering: {"Linux administration", "Networking fundamentals", "Scripting with Python or Bash", "Containers"},
	catalog.TrackAIEngineering:    {"Python", "Linear algebra", "Probability and statistics", "Machine learning fundamentals"},
}

var learningPathByTrack = map[catalog.TrackKey][]string{
	catalog.TrackWebDevelopment: {
		"Build static pages with semantic HTML and responsive CSS",
		"Add interactivity with JavaScript and a modern framework",
		"Build and consume APIs with a backend language",
		"Ship a full-stack project with authentication and a database",
	},
	catalog.TrackDataScience: {
		"Learn Python and SQL for data manipulation",
		"Practice exploratory analysis and visualization",
		"Apply statistical inference and classic models",
		"Complete an end-to-end analysis and present the findings",
	},
	catalog.TrackCybersecurity: {
		"Master networking and operating system fundamentals",
		"Learn common attacks and how to defend against them",
		"Practice in labs, CTFs and simulated incidents",
		"Specialize in defensive operations or penetration testing",
	},
	catalog.TrackCloudEngineering: {
		"Get comfortable with Linux, networking and scripting",
		"Deploy applications on a major cloud provider",
		"Automate delivery with containers and CI/CD",
		"Manage infrastructure as code with monitoring and alerting",
	},
	catalog.TrackAIEngineering: {
		"Build a math and Python foundation",
		"Train and evaluate classic machine learning models",
		"Move into deep learning with a modern framework",
		"Deploy and monitor a model in a real application",
	},
}

var crossTrackByTrack = map[catalog.TrackKey][]string{
	catalog.TrackWebDevelopment: {
		"Learn cloud deployment to own your applications end to end",
		"Study web security to build safer products",
	},
	catalog.TrackDataScience: {
		"Pick up machine learning engineering to productionize your models",
		"Learn dashboarding and web basics to share insights",
	},
	catalog.TrackCybersecurity: {
		"Learn cloud security as workloads move to the cloud",
		"Use data analysis to detect threats at scale",
	},
	catalog.TrackCloudEngineering: {
		"Add security engineering to harden the platforms you run",
		"Explore MLOps to run AI workloads reliably",
	},
	catalog.TrackAIEngineering: {
		"Deepen data engineering to feed models with quality data",
		"Learn cloud infrastructure to serve models at scale",
	},
}
