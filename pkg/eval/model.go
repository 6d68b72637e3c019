package eval

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/herohde/tak/pkg/ann"
	"github.com/herohde/tak/pkg/tak"
)

// Evaluator is a static position evaluator, in the side-to-move's perspective.
type Evaluator interface {
	Evaluate(ctx context.Context, s *tak.State) Evaluation
}

// Model is the feed-forward evaluator for a single board size: a ShallowNet over the
// gathered feature vector, with resolved positions short-circuited to a terminal score.
type Model struct {
	size int
	net  *ann.ShallowNet
}

// modelData is the on-disk (embedded JSON) representation of a Model's weights.
type modelData struct {
	HiddenWeights []float32 `json:"hidden_weights"`
	HiddenBiases  []float32 `json:"hidden_biases"`
	OutputWeights []float32 `json:"output_weights"`
	OutputBiases  []float32 `json:"output_biases"`
}

func newModel(size int, raw []byte) (*Model, error) {
	var data modelData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("eval: could not parse model data for size %d: %w", size, err)
	}

	net, err := ann.NewShallowNet(FeatureCount(size), 10, 1,
		data.HiddenWeights, data.HiddenBiases, data.OutputWeights, data.OutputBiases)
	if err != nil {
		return nil, fmt.Errorf("eval: invalid model data for size %d: %w", size, err)
	}
	return &Model{size: size, net: net}, nil
}

// Evaluate returns the evaluator's score for s, from the perspective of the side to move.
// Resolved positions are short-circuited to the terminal band without consulting the net.
func (m *Model) Evaluate(ctx context.Context, s *tak.State) Evaluation {
	if r := s.Resolution; r.IsOver() {
		ply := Evaluation(s.Plies)
		switch r.Kind {
		case tak.RoadWin, tak.FlatWin:
			if r.Winner == s.ToMove {
				return Win - ply
			}
			return Lose + ply
		default:
			return Zero - ply
		}
	}

	out, err := m.net.Forward(Gather(s))
	if err != nil {
		// Feature count is fixed by board size at construction time; a mismatch is a bug,
		// not a runtime condition callers can recover from.
		panic(fmt.Sprintf("eval: %v", err))
	}
	return Crop(Evaluation(out[0] * EvalScale))
}

//go:embed models/model_3s.json
var model3s []byte

//go:embed models/model_4s.json
var model4s []byte

//go:embed models/model_5s.json
var model5s []byte

//go:embed models/model_6s.json
var model6s []byte

//go:embed models/model_7s.json
var model7s []byte

//go:embed models/model_8s.json
var model8s []byte

var staticModels = sync.OnceValue(func() map[int]*Model {
	raw := map[int][]byte{3: model3s, 4: model4s, 5: model5s, 6: model6s, 7: model7s, 8: model8s}

	models := make(map[int]*Model, len(raw))
	for size, data := range raw {
		m, err := newModel(size, data)
		if err != nil {
			panic(err)
		}
		models[size] = m
	}
	return models
})

// StaticModel returns the embedded evaluator for the given board size.
func StaticModel(size int) (*Model, error) {
	m, ok := staticModels()[size]
	if !ok {
		return nil, fmt.Errorf("eval: no static model for board size %d", size)
	}
	return m, nil
}

// Evaluate is the package-level convenience entry point: look up the static model for the
// state's board size and evaluate it.
func Evaluate(ctx context.Context, s *tak.State) (Evaluation, error) {
	m, err := StaticModel(s.Size)
	if err != nil {
		return 0, err
	}
	return m.Evaluate(ctx, s), nil
}
