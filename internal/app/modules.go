package app

import (
	"github.com/bindkit/bindkit/internal/registry"
	"github.com/bindkit/bindkit/modules/chunker"
	"github.com/bindkit/bindkit/modules/echo"
	"github.com/bindkit/bindkit/modules/keyword_sentiment"
	"github.com/bindkit/bindkit/modules/stream_tokenize"
	"github.com/bindkit/bindkit/modules/whitespace_tokenize"
)

// coreModules is the definitive list of all modules that are compiled
// into the bindkit binary. Order matters: extending modules expect
// their parents to be admitted first.
var coreModules = []registry.Module{
	&keyword_sentiment.Module{},
	&whitespace_tokenize.Module{},
	&stream_tokenize.Module{},
	&chunker.Module{},
	&echo.Module{},
}
