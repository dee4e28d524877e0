package engine

import (
	"fmt"

	"github.com/stevehiehn/plix/internal/config"
	"github.com/stevehiehn/plix/internal/matrix"
	"github.com/stevehiehn/plix/internal/template"
)

// RenderedVariant holds the commands of every phase for one variant.
type RenderedVariant struct {
	Variant  matrix.Variant
	Context  template.Context
	Commands map[string][]string
}

// RenderVariant builds the variant's context (its pairs, then the globals
// rendered against those pairs) and renders every phase. Either all
// commands render or none are returned.
func RenderVariant(cfg *config.Configuration, v matrix.Variant) (*RenderedVariant, error) {
	ctx := template.Context(v.Context())

	global, err := template.RenderObject(template.FromValue(cfg.Global), ctx)
	if err != nil {
		return nil, fmt.Errorf("rendering global for variant %s: %w", v, err)
	}
	if g, ok := template.ToValue(global).(map[string]any); ok {
		ctx = ctx.Merge(g)
	}

	commands := make(map[string][]string, len(config.Phases))
	for _, phase := range config.Phases {
		rendered, err := template.RenderStrings(cfg.Commands(phase), ctx)
		if err != nil {
			return nil, fmt.Errorf("rendering %s for variant %s: %w", phase, v, err)
		}
		if len(rendered) > 0 {
			commands[phase] = rendered
		}
	}
	return &RenderedVariant{Variant: v, Context: ctx, Commands: commands}, nil
}
