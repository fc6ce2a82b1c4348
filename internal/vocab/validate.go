package vocab

import (
	_ "embed"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaSource string

// Validate checks a vocabulary document against the schema and compiles its
// patterns. It returns every problem found rather than stopping at the first.
func Validate(filename string, data []byte) []*SchemaError {
	_, errs := validate(filename, data)
	return errs
}

func validate(filename string, data []byte) (*Vocabulary, []*SchemaError) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fromCUE(filename, "", err)
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return nil, fromCUE(filename, "", err)
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return nil, fromCUE(filename, "", err)
	}

	language, _ := doc.LookupPath(cue.ParsePath("language")).String()

	unified := schema.LookupPath(cue.ParsePath("#Vocabulary")).Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fromCUE(filename, language, err)
	}

	// Structure is sound; the patterns themselves must compile too.
	v, err := decode(data)
	if err != nil {
		return nil, []*SchemaError{{File: filename, Language: language, Message: err.Error()}}
	}
	if errs := v.compile(filename); len(errs) > 0 {
		return nil, errs
	}
	return v, nil
}

func fromCUE(filename, language string, err error) []*SchemaError {
	var out []*SchemaError
	for _, e := range cueerrors.Errors(err) {
		se := &SchemaError{
			File:     filename,
			Language: language,
			Path:     strings.Join(e.Path(), "."),
			Message:  e.Error(),
		}
		if positions := cueerrors.Positions(e); len(positions) > 0 {
			se.Pos = positions[0]
		}
		out = append(out, se)
	}
	if len(out) == 0 {
		out = append(out, &SchemaError{File: filename, Language: language, Message: err.Error()})
	}
	return out
}
