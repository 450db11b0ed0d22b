package models

import "time"

// Circuit groups tournaments that score towards a season ranking.
type Circuit struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Year        int    `json:"year,omitempty"`
	Description string `json:"description,omitempty"`

	// PointsSystem maps a tournament result to the points it awards.
	PointsSystem map[string]int `json:"pointsSystem,omitempty"`

	Tournaments []string `json:"tournaments,omitempty"`

	// TotalPoints is derived from the tournaments that reference the
	// circuit.
	TotalPoints int `json:"totalPoints,omitempty"`

	// Ranking is the owner's position in the circuit, entered by hand.
	Ranking *int `json:"ranking,omitempty"`
}

// DefaultPointsSystem is installed on circuits created without one.
func DefaultPointsSystem() map[string]int {
	return map[string]int{
		"Campeón":              100,
		"Subcampeón":           75,
		"Semifinales":          50,
		"5º":                   25,
		"9º":                   15,
		"17º":                  10,
		"33º":                  5,
		"Eliminado en Ronda 1": 3,
		"Participación":        1,
	}
}

// NewCircuitDefaults fills the fields a freshly created circuit must carry.
func NewCircuitDefaults(c Circuit, now time.Time) Circuit {
	if c.Year == 0 {
		c.Year = now.Year()
	}
	if len(c.PointsSystem) == 0 {
		c.PointsSystem = DefaultPointsSystem()
	}
	if c.Tournaments == nil {
		c.Tournaments = []string{}
	}
	return c
}

// CircuitPoints sums the points awarded by a circuit's points system to every
// tournament whose circuit field references circuitID.
func CircuitPoints(circuitID string, points map[string]any, tournaments []Record) int {
	total := 0
	for _, t := range tournaments {
		ref, ok := canonicalID(t["circuit"])
		if !ok || ref != circuitID {
			continue
		}
		result, _ := t["result"].(string)
		total += Int(points[result])
	}
	return total
}

// RecomputeCircuitPoints refreshes totalPoints and the tournaments id list of
// every circuit in doc.
func RecomputeCircuitPoints(doc Document) {
	tournaments := doc.Records("tournaments")

	for _, c := range doc.Records("circuits") {
		id, ok := RecordID(c)
		if !ok {
			continue
		}
		points, ok := c["pointsSystem"].(map[string]any)
		if !ok {
			points = make(map[string]any)
			for k, v := range DefaultPointsSystem() {
				points[k] = v
			}
		}

		c["totalPoints"] = CircuitPoints(id, points, tournaments)

		refs := make([]any, 0)
		for _, t := range tournaments {
			ref, ok := canonicalID(t["circuit"])
			if !ok || ref != id {
				continue
			}
			if tid, ok := RecordID(t); ok {
				refs = append(refs, tid)
			}
		}
		c["tournaments"] = refs
	}
}

// UnlinkCircuit clears the circuit reference of every tournament pointing at
// circuitID.
func UnlinkCircuit(doc Document, circuitID string) {
	for _, t := range doc.Records("tournaments") {
		if ref, ok := canonicalID(t["circuit"]); ok && ref == circuitID {
			t["circuit"] = nil
		}
	}
}
