// Package keyword_sentiment scores documents against a small keyword
// lexicon. It is the reference unary implementation of the sentiment
// task.
package keyword_sentiment

import (
	"context"
	"strings"

	"github.com/bindkit/bindkit/internal/handlers"
	"github.com/bindkit/bindkit/internal/registry"
	"github.com/bindkit/bindkit/modules/textmodel"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the parameters of the sentiment run.
type Input struct {
	Document textmodel.RawDocument `bind:"document"`
}

var positive = map[string]struct{}{
	"good": {}, "great": {}, "excellent": {}, "love": {}, "happy": {},
	"wonderful": {}, "best": {}, "fantastic": {},
}

var negative = map[string]struct{}{
	"bad": {}, "terrible": {}, "awful": {}, "hate": {}, "sad": {},
	"horrible": {}, "worst": {}, "poor": {},
}

// Run scores a document by counting lexicon hits. The score is the
// signed fraction of hits among all words, in [-1, 1].
func Run(ctx context.Context, in *Input) (*textmodel.Sentiment, error) {
	words := strings.Fields(strings.ToLower(in.Document.Text))

	var pos, neg int
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?\"'()")
		if _, ok := positive[w]; ok {
			pos++
		}
		if _, ok := negative[w]; ok {
			neg++
		}
	}

	verdict := &textmodel.Sentiment{Label: "neutral"}
	if len(words) > 0 {
		verdict.Score = float64(pos-neg) / float64(len(words))
	}
	switch {
	case pos > neg:
		verdict.Label = "positive"
	case neg > pos:
		verdict.Label = "negative"
	}
	return verdict, nil
}

// Register wires the handler and binds the module to the sentiment task.
func (m *Module) Register(ctx context.Context, reg *registry.Registry, h *handlers.Handlers) error {
	h.Register("keyword_sentiment.Run", Run)

	_, err := reg.Register(ctx, registry.Declaration{
		ID:          "keyword-sentiment-v1",
		Name:        "keyword-sentiment",
		Version:     "1.0.0",
		Task:        textmodel.SentimentTask,
		Run:         &registry.Run{Fn: Run},
		Description: "Scores documents with a keyword lexicon.",
	})
	return err
}
