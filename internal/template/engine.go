package template

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	texttemplate "text/template"
	"time"

	"repoprompt/internal/config"
	"repoprompt/internal/preset"
	"repoprompt/pkg/types"
)

// Engine renders chunks into the configured output format.
type Engine struct {
	format config.Format
	tmpl   *texttemplate.Template
	preset *preset.Preset
	now    func() time.Time
}

// New builds an Engine for the given format. templatePath is required
// for the custom format and ignored otherwise. p may be nil.
func New(format config.Format, templatePath string, p *preset.Preset) (*Engine, error) {
	e := &Engine{format: format, preset: p, now: time.Now}

	switch format {
	case config.FormatMarkdown:
		t, err := parse("markdown", markdownTemplate)
		if err != nil {
			return nil, err
		}
		e.tmpl = t
	case config.FormatXML:
		t, err := parse("xml", xmlTemplate)
		if err != nil {
			return nil, err
		}
		e.tmpl = t
	case config.FormatJSON:
		// Rendered by marshaling the context.
	case config.FormatCustom:
		if templatePath == "" {
			return nil, fmt.Errorf("custom format requires a template path")
		}
		if err := ValidateFile(templatePath); err != nil {
			return nil, err
		}
		content, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, &types.PathError{Path: templatePath, Err: err}
		}
		t, err := parse("custom", string(content))
		if err != nil {
			return nil, err
		}
		e.tmpl = t
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}

	return e, nil
}

// Render produces the output document for one chunk.
func (e *Engine) Render(chunk types.Chunk, totalChunks int) (string, error) {
	ctx := buildContext(chunk, totalChunks, string(e.format), e.preset, e.now())

	if e.format == config.FormatJSON {
		data, err := json.MarshalIndent(ctx, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode chunk %d: %w", chunk.Index, err)
		}
		return string(data) + "\n", nil
	}

	var sb strings.Builder
	if err := e.tmpl.Execute(&sb, ctx); err != nil {
		return "", fmt.Errorf("render chunk %d: %w", chunk.Index, err)
	}
	return sb.String(), nil
}

func parse(name, text string) (*texttemplate.Template, error) {
	t, err := texttemplate.New(name).Funcs(funcMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	return t, nil
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func funcMap() texttemplate.FuncMap {
	return texttemplate.FuncMap{
		"xmlEscape": xmlEscaper.Replace,
		"jsonEncode": func(v any) (string, error) {
			data, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return string(data), nil
		},
		"truncateLines":  truncateLines,
		"detectLanguage": detectLanguage,
	}
}

// truncateLines caps a string at max lines, noting how many were dropped.
func truncateLines(max int, s string) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= max {
		return s
	}
	return fmt.Sprintf("%s\n... (%d more lines omitted)",
		strings.Join(lines[:max], "\n"), len(lines)-max)
}
