package export

import (
	"encoding/json"
	"os"

	"github.com/leanviz/layout3d/internal/vec"
)

// Layout is the serialized result of a layout run.
type Layout struct {
	Steps     int                   `json:"steps"`
	Movement  float64               `json:"movement"`
	Converged bool                  `json:"converged"`
	Positions map[string][3]float64 `json:"positions"`
}

// NewLayout flattens engine positions into the wire-friendly
// triple-array form.
func NewLayout(steps int, movement float64, converged bool, positions map[string]vec.Vec3) Layout {
	l := Layout{
		Steps:     steps,
		Movement:  movement,
		Converged: converged,
		Positions: make(map[string][3]float64, len(positions)),
	}
	for id, p := range positions {
		l.Positions[id] = [3]float64{p.X, p.Y, p.Z}
	}
	return l
}

func WriteJSON(path string, l Layout) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(l)
}

func WriteJSONStdout(l Layout) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(l)
}
