package config

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	plixerrors "github.com/stevehiehn/plix/internal/errors"
)

//go:embed schema.cue
var schema string

// validateSchema checks a decoded build file against #Configuration.
func validateSchema(raw map[string]any, filename string) error {
	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: compiling build file schema: %w", schemaValue.Err())
	}
	def := schemaValue.LookupPath(cue.ParsePath("#Configuration"))
	if def.Err() != nil {
		return fmt.Errorf("internal error: schema definition #Configuration not found: %w", def.Err())
	}

	userValue := ctx.Encode(raw)
	if userValue.Err() != nil {
		return plixerrors.NewValidationError(formatCUEError(userValue.Err(), filename), "")
	}

	unified := def.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return plixerrors.NewValidationError(
			formatCUEError(err, filename),
			"Known fields: executor, global, matrix, exclude, "+strings.Join(Phases, ", "),
		)
	}
	return nil
}

// formatCUEError flattens CUE errors into "file: path: message" lines.
func formatCUEError(err error, filename string) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return fmt.Sprintf("%s: %v", filename, err)
	}
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		path := strings.Join(cueerrors.Path(e), ".")
		msg := e.Error()
		if path != "" {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
			lines = append(lines, fmt.Sprintf("%s: %s: %s", filename, path, msg))
		} else {
			lines = append(lines, fmt.Sprintf("%s: %s", filename, msg))
		}
	}
	return strings.Join(lines, "\n")
}
