package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ImportanceMap is the externally computed per-skill weight table. The engine
// treats it as opaque: absent or empty means every model bonus is zero.
type ImportanceMap struct {
	Version int                   `json:"version"`
	Skills  []ImportanceMapEntry  `json:"skills"`
}

type ImportanceMapEntry struct {
	Skill      string  `json:"skill"`
	Importance float64 `json:"importance"`
}

// LoadImportanceFile reads a skill-importance map and flattens it into a
// normalized-skill -> importance mapping. A missing file is not an error;
// scoring simply runs without model bonuses.
func LoadImportanceFile(path string) (map[string]float64, error) {
	if path == "" {
		return map[string]float64{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]float64{}, nil
		}
		return nil, fmt.Errorf("read importance map: %w", err)
	}

	return ParseImportance(data)
}

// ParseImportance parses the {version, skills:[{skill, importance}]} payload.
func ParseImportance(data []byte) (map[string]float64, error) {
	var parsed ImportanceMap
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse importance map: %w", err)
	}

	importance := make(map[string]float64, len(parsed.Skills))
	for _, entry := range parsed.Skills {
		key := strings.ToLower(strings.TrimSpace(entry.Skill))
		if key == "" {
			continue
		}
		importance[key] = entry.Importance
	}

	return importance, nil
}
