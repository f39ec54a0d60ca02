package catalog

// TrackKey identifies one of the fixed career tracks.
type TrackKey string

const (
	TrackWebDevelopment   TrackKey = "web_development"
	TrackDataScience      TrackKey = "data_science"
	TrackCybersecurity    TrackKey = "cybersecurity"
	TrackCloudEngineering TrackKey = "cloud_engineering"
	TrackAIEngineering    TrackKey = "ai_engineering"
)

// trackOrder is the catalog declaration order. Ranking ties fall back to it.
var trackOrder = [...]TrackKey{
	TrackWebDevelopment,
	TrackDataScience,
	TrackCybersecurity,
	TrackCloudEngineering,
	TrackAIEngineering,
}

// TrackKeys returns every track key in declaration order.
func TrackKeys() []TrackKey {
	out := make([]TrackKey, len(trackOrder))
	copy(out, trackOrder[:])
	return out
}

// Index reports the declaration position of k, or -1 when k is not a track.
func (k TrackKey) Index() int {
	for i, t := range trackOrder {
		if t == k {
			return i
		}
	}
	return -1
}

func (k TrackKey) Valid() bool { return k.Index() >= 0 }

// TrackPoints is the per-option point vector. Tracks an option does not
// mention stay at zero.
type TrackPoints struct {
	WebDevelopment   int `json:"web_development"`
	DataScience      int `json:"data_science"`
	Cybersecurity    int `json:"cybersecurity"`
	CloudEngineering int `json:"cloud_engineering"`
	AIEngineering    int `json:"ai_engineering"`
}

func (p TrackPoints) Get(k TrackKey) int {
	switch k {
	case TrackWebDevelopment:
		return p.WebDevelopment
	case TrackDataScience:
		return p.DataScience
	case TrackCybersecurity:
		return p.Cybersecurity
	case TrackCloudEngineering:
		return p.CloudEngineering
	case TrackAIEngineering:
		return p.AIEngineering
	}
	return 0
}

// Set assigns v to track k and reports whether k is a known track.
func (p *TrackPoints) Set(k TrackKey, v int) bool {
	switch k {
	case TrackWebDevelopment:
		p.WebDevelopment = v
	case TrackDataScience:
		p.DataScience = v
	case TrackCybersecurity:
		p.Cybersecurity = v
	case TrackCloudEngineering:
		p.CloudEngineering = v
	case TrackAIEngineering:
		p.AIEngineering = v
	default:
		return false
	}
	return true
}

// Max returns the largest point value in the vector.
func (p TrackPoints) Max() int {
	best := 0
	for i, k := range trackOrder {
		v := p.Get(k)
		if i == 0 || v > best {
			best = v
		}
	}
	return best
}

// Each calls fn for every track in declaration order.
func (p TrackPoints) Each(fn func(k TrackKey, v int)) {
	for _, k := range trackOrder {
		fn(k, p.Get(k))
	}
}

// Track is a career specialization the engine can recommend.
type Track struct {
	Key         TrackKey `json:"key"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CareerPaths []string `json:"career_paths"`
}
