package template

import (
	"path"
	"strings"
	"time"

	"repoprompt/internal/preset"
	"repoprompt/pkg/types"
)

// Context is the data every template renders against. JSON output
// marshals it directly.
type Context struct {
	ChunkIndex  int        `json:"chunk_index"` // 1-based
	TotalChunks int        `json:"total_chunks"`
	ChunkFiles  int        `json:"chunk_files"`
	TotalTokens int        `json:"total_tokens"`
	Files       []FileView `json:"files"`
	GeneratedAt string     `json:"generated_at"`
	Format      string     `json:"format"`

	Preset *PresetView `json:"preset,omitempty"`
}

// FileView is the per-file slice of the context.
type FileView struct {
	Path         string `json:"path"`
	RelativePath string `json:"relative_path"`
	Content      string `json:"content,omitempty"`
	IsBinary     bool   `json:"is_binary"`
	TokenCount   int    `json:"token_count"`
	Lines        int    `json:"lines"`
	SizeBytes    int64  `json:"size_bytes"`
	Language     string `json:"language"`
}

// PresetView exposes the configured preset to templates.
type PresetView struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	SystemPrompt       string  `json:"system_prompt"`
	UserPromptTemplate string  `json:"user_prompt_template"`
	SuggestedModel     string  `json:"suggested_model"`
	MaxTokensHint      int     `json:"max_tokens_hint"`
	TemperatureHint    float32 `json:"temperature_hint"`
}

func buildContext(chunk types.Chunk, totalChunks int, format string, p *preset.Preset, now time.Time) Context {
	files := make([]FileView, len(chunk.Files))
	for i := range chunk.Files {
		f := &chunk.Files[i]
		fv := FileView{
			Path:         f.AbsolutePath,
			RelativePath: f.RelativePath,
			IsBinary:     f.IsBinary(),
			TokenCount:   f.TokenCount,
			SizeBytes:    f.SizeBytes(),
			Language:     detectLanguage(f.RelativePath),
		}
		if content, ok := f.ContentString(); ok {
			fv.Content = content
			lines, _ := f.LineCount()
			fv.Lines = lines
		}
		files[i] = fv
	}

	ctx := Context{
		ChunkIndex:  chunk.Index + 1,
		TotalChunks: totalChunks,
		ChunkFiles:  len(chunk.Files),
		TotalTokens: chunk.TotalTokens,
		Files:       files,
		GeneratedAt: now.Format("2006-01-02 15:04:05"),
		Format:      format,
	}
	if p != nil {
		ctx.Preset = &PresetView{
			ID:                 p.ID,
			Name:               p.Name,
			Description:        p.Description,
			SystemPrompt:       p.SystemPrompt,
			UserPromptTemplate: p.UserPromptTemplate,
			SuggestedModel:     p.SuggestedModel,
			MaxTokensHint:      p.MaxTokensHint,
			TemperatureHint:    p.TemperatureHint,
		}
	}
	return ctx
}

var languageByExt = map[string]string{
	"rs": "rust", "py": "python", "js": "javascript", "ts": "typescript",
	"jsx": "jsx", "tsx": "tsx", "go": "go", "java": "java",
	"c": "c", "h": "c", "cpp": "cpp", "cc": "cpp", "cxx": "cpp",
	"hpp": "cpp", "hh": "cpp", "hxx": "cpp",
	"cs": "csharp", "rb": "ruby", "php": "php", "swift": "swift",
	"kt": "kotlin", "scala": "scala",
	"sh": "bash", "bash": "bash", "zsh": "zsh", "fish": "fish", "ps1": "powershell",
	"html": "html", "htm": "html", "css": "css", "scss": "scss", "sass": "sass",
	"xml": "xml", "json": "json", "yaml": "yaml", "yml": "yaml",
	"toml": "toml", "ini": "ini", "md": "markdown", "markdown": "markdown",
	"sql": "sql", "graphql": "graphql", "gql": "graphql", "proto": "protobuf",
}

// detectLanguage maps a file extension to a fenced-code-block language
// tag, or "" when unknown. Split-part labels ("name.go [Part 1/3]") are
// stripped before the extension is read.
func detectLanguage(p string) string {
	if i := strings.Index(p, " [Part "); i >= 0 {
		p = p[:i]
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	return languageByExt[ext]
}
