// Package textmodel carries the builtin text data model: the structured
// types that task contracts exchange, and the task descriptors compiled
// into the binary.
package textmodel

import (
	"reflect"

	"github.com/bindkit/bindkit/internal/datamodel"
	"github.com/bindkit/bindkit/internal/task"
	"github.com/bindkit/bindkit/internal/typexpr"
)

// RawDocument is an unprocessed input text.
type RawDocument struct {
	datamodel.Base
	Text string
}

// Sentence is a single sentence extracted from a document.
type Sentence struct {
	datamodel.Base
	Text string
}

// Token is one span of a tokenized document. Begin and End are byte
// offsets into the source text.
type Token struct {
	datamodel.Base
	Text  string
	Begin int
	End   int
}

// TokenCollection is the unary result of tokenization.
type TokenCollection struct {
	datamodel.Base
	Tokens []Token
}

// Chunk is one window of a chunked document. Offset is the chunk's rune
// offset in the document.
type Chunk struct {
	datamodel.Base
	Text   string
	Offset int
}

// Sentiment is a polarity verdict over a document.
type Sentiment struct {
	datamodel.Base
	Label string
	Score float64
}

var (
	// SentimentTask scores the polarity of one document.
	SentimentTask = task.MustNew(task.Definition{
		Name:        "sentiment",
		Description: "Scores the polarity of a document.",
		UnaryParameters: map[string]typexpr.Expr{
			"document": typexpr.Of[RawDocument](),
		},
		UnaryOutput: exprPtr(typexpr.Of[Sentiment]()),
	})

	// TokenizeTask splits documents into tokens, either one document at
	// a time or over a stream of documents.
	TokenizeTask = task.MustNew(task.Definition{
		Name:        "tokenize",
		Description: "Splits documents into tokens.",
		UnaryParameters: map[string]typexpr.Expr{
			"document": typexpr.Of[RawDocument](),
		},
		StreamingParameters: map[string]typexpr.Expr{
			"documents": typexpr.Stream(typexpr.Of[RawDocument]()),
		},
		UnaryOutput:     exprPtr(typexpr.Of[TokenCollection]()),
		StreamingOutput: exprPtr(typexpr.Stream(typexpr.Of[Token]())),
	})

	// ChunkTask windows a document into a stream of chunks.
	ChunkTask = task.MustNew(task.Definition{
		Name:        "chunk",
		Description: "Windows a document into a stream of chunks.",
		UnaryParameters: map[string]typexpr.Expr{
			"document": typexpr.Of[RawDocument](),
			"window":   typexpr.Optional(typexpr.Of[int]()),
		},
		StreamingOutput: exprPtr(typexpr.Stream(typexpr.Of[Chunk]())),
	})
)

func exprPtr(e typexpr.Expr) *typexpr.Expr { return &e }

// Register adds the text types and the builtin task descriptors to the
// given index and catalog.
func Register(idx *datamodel.Index, cat *task.Catalog) error {
	types := []struct {
		name string
		t    reflect.Type
	}{
		{"raw_document", datamodel.For[RawDocument]()},
		{"sentence", datamodel.For[Sentence]()},
		{"token", datamodel.For[Token]()},
		{"token_collection", datamodel.For[TokenCollection]()},
		{"chunk", datamodel.For[Chunk]()},
		{"sentiment", datamodel.For[Sentiment]()},
	}
	for _, entry := range types {
		if err := idx.Register(entry.name, entry.t); err != nil {
			return err
		}
	}

	for _, tk := range []*task.Task{SentimentTask, TokenizeTask, ChunkTask} {
		if err := cat.Register(tk); err != nil {
			return err
		}
	}
	return nil
}
