package template

import (
	"fmt"
	"os"
	"strings"
	texttemplate "text/template"
	"time"

	"repoprompt/pkg/types"
)

// Custom templates larger than this are rejected.
const maxTemplateSize = 1 << 20

// ValidateFile checks a custom template file before it is used: it must
// exist, be non-empty, stay under the size cap, parse cleanly, and
// execute against a sample context so broken field references surface
// at startup instead of mid-run.
func ValidateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &types.PathError{Path: path, Err: err}
	}
	if info.IsDir() {
		return fmt.Errorf("template %s: path is not a file", path)
	}
	if info.Size() > maxTemplateSize {
		return fmt.Errorf("template %s: file too large: %d bytes (max %d)", path, info.Size(), maxTemplateSize)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return &types.PathError{Path: path, Err: err}
	}
	if strings.TrimSpace(string(content)) == "" {
		return fmt.Errorf("template %s: file is empty", path)
	}

	t, err := texttemplate.New("validation").Funcs(funcMap()).Parse(string(content))
	if err != nil {
		return fmt.Errorf("template %s: syntax error: %w", path, err)
	}

	sample := buildContext(sampleChunk(), 1, "custom", nil, time.Unix(0, 0))
	var sb strings.Builder
	if err := t.Execute(&sb, sample); err != nil {
		return fmt.Errorf("template %s: %w", path, err)
	}
	return nil
}

func sampleChunk() types.Chunk {
	return types.NewChunk(0, []types.FileData{
		types.NewTextFile("/sample/main.go", "main.go", "package main\n", 3),
	}, 3)
}
