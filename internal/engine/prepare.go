package engine

import (
	"fmt"

	"github.com/stevehiehn/plix/internal/config"
	plixerrors "github.com/stevehiehn/plix/internal/errors"
	"github.com/stevehiehn/plix/internal/keyset"
	"github.com/stevehiehn/plix/internal/matrix"
	"github.com/stevehiehn/plix/internal/template"
)

// Plan is a build after key analysis and variant expansion.
type Plan struct {
	Declared     keyset.Set    // every matrix dimension
	Required     keyset.Set    // names the templates read
	Matrix       matrix.Matrix // dimensions actually referenced
	Unreferenced keyset.Set    // declared but never read; advisory only
	Variants     []matrix.Variant
	Selected     []matrix.Variant
}

// Prepare checks the names the templates use against the matrix and the
// globals, then expands and filters the variants.
//
// A name in both global and matrix is DUPLICATE_KEYS. A name read by a
// template but defined by neither is UNKNOWN_KEYS. Both are reported before
// anything runs.
func Prepare(cfg *config.Configuration, pairs matrix.Constraint) (*Plan, error) {
	objs := []template.Object{template.FromValue(cfg.Global)}
	for _, phase := range config.Phases {
		objs = append(objs, template.FromValue(cfg.Commands(phase)))
	}
	required, err := template.FindRequiredKeys(objs...)
	if err != nil {
		return nil, fmt.Errorf("finding template variables: %w", err)
	}

	declared := cfg.Matrix.Keys()
	globals := keyset.New()
	for k := range cfg.Global {
		globals.Add(k)
	}

	reduced, unknown := matrix.ValidateKeys(cfg.Matrix, required)
	unreferenced := declared.Difference(reduced.Keys()).Union(globals.Difference(unknown))
	unknown = unknown.Difference(globals)

	if dup := globals.Intersect(declared); len(dup) > 0 {
		return nil, plixerrors.NewDuplicateKeys(dup.Sorted())
	}
	if len(unknown) > 0 {
		return nil, plixerrors.NewUnknownKeys(unknown.Sorted())
	}

	variants := matrix.ExcludeVariants(matrix.GenerateVariants(reduced), cfg.Exclusions())
	return &Plan{
		Declared:     declared,
		Required:     required,
		Matrix:       reduced,
		Unreferenced: unreferenced,
		Variants:     variants,
		Selected:     matrix.FilterVariants(variants, pairs),
	}, nil
}
