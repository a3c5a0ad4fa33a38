package command

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// Definition is one dynamically loaded command: a name, its aliases, and a response
// template. Definitions are immutable after load.
type Definition struct {
	Name    string
	Aliases []string
	Text    string
}

// definitionBody matches the on-disk JSON value shape:
//
//	{"pat": {"alias": ["pet"], "text": "..."}}
type definitionBody struct {
	Alias []string `json:"alias"`
	Text  string   `json:"text"`
}

var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

// substitutable lists the placeholders a template may reference. Anything else is a
// load-time validation error for that definition.
var substitutable = map[string]bool{
	"commands": true,
	"author":   true,
	"channel":  true,
	"message":  true,
	"token":    true,
}

// LoadDefinitionsFile parses the commands file preserving file order, so that
// later definitions overwrite earlier tokens deterministically. A missing file
// returns os.ErrNotExist wrapped; a malformed file returns the definitions parsed
// before the failure together with the error.
func LoadDefinitionsFile(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open commands file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close commands file", slog.Any("err", err))
		}
	}()

	dec := json.NewDecoder(f)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse commands file: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("parse commands file: top level must be an object")
	}

	var defs []Definition
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return defs, fmt.Errorf("parse commands file: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return defs, fmt.Errorf("parse commands file: non-string key %v", keyTok)
		}
		var body definitionBody
		if err := dec.Decode(&body); err != nil {
			return defs, fmt.Errorf("parse command %q: %w", name, err)
		}
		defs = append(defs, Definition{Name: name, Aliases: body.Alias, Text: body.Text})
	}
	return defs, nil
}

// ValidateTemplate checks that every placeholder in text is substitutable.
func ValidateTemplate(text string) error {
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		if !substitutable[m[1]] {
			return fmt.Errorf("unknown template placeholder {%s}", m[1])
		}
	}
	return nil
}

// LoadDynamic registers a handler for each definition, in order. A definition whose
// template references an unknown placeholder is skipped with a logged validation
// error; the rest still load. Token collisions follow Register semantics.
func (r *Registry) LoadDynamic(defs []Definition) {
	for _, def := range defs {
		if err := ValidateTemplate(def.Text); err != nil {
			slog.Error("skipping command definition",
				slog.String("command", def.Name), slog.Any("err", err))
			continue
		}
		def := def
		r.Register(def.Name, def.Aliases, func(ctx context.Context, rc *RequestContext) error {
			return rc.Send(r.render(def.Text, rc))
		})
		slog.Info("loaded command definition",
			slog.String("command", def.Name), slog.Any("aliases", def.Aliases))
	}
}

// render substitutes the whitelisted placeholders. The command list is resolved at
// call time, so a template sees every name known to the registry by then.
func (r *Registry) render(text string, rc *RequestContext) string {
	repl := strings.NewReplacer(
		"{commands}", r.NamesJoined(),
		"{author}", rc.Author,
		"{channel}", rc.Channel,
		"{message}", rc.Message,
		"{token}", rc.Token,
	)
	return repl.Replace(text)
}
