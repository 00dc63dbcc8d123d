package template

// Built-in templates for the standard output formats. JSON does not go
// through text/template; the context is marshaled directly.

const markdownTemplate = `# Repository Context [Chunk {{.ChunkIndex}}/{{.TotalChunks}}]

> Generated: {{.GeneratedAt}} | Files: {{.ChunkFiles}} | Estimated tokens: {{.TotalTokens}}
{{- if .Preset}}

## Task: {{.Preset.Name}}

{{.Preset.Description}}

### System Prompt

{{.Preset.SystemPrompt}}

### Instructions

{{.Preset.UserPromptTemplate}}

---
{{- end}}
{{range .Files}}
## {{.RelativePath}}
{{if .IsBinary}}
Binary file ({{.SizeBytes}} bytes), content omitted.
{{- else}}
` + "```{{.Language}}\n{{.Content}}\n```" + `
{{- end}}
{{end -}}
`

const xmlTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<repository_context chunk="{{.ChunkIndex}}" total_chunks="{{.TotalChunks}}" generated_at="{{.GeneratedAt}}" total_tokens="{{.TotalTokens}}">
{{- if .Preset}}
  <preset id="{{.Preset.ID}}" name="{{xmlEscape .Preset.Name}}" model="{{.Preset.SuggestedModel}}">
    <system_prompt>{{xmlEscape .Preset.SystemPrompt}}</system_prompt>
    <instructions>{{xmlEscape .Preset.UserPromptTemplate}}</instructions>
  </preset>
{{- end}}
  <files count="{{.ChunkFiles}}">
{{- range .Files}}
{{- if .IsBinary}}
    <file path="{{xmlEscape .RelativePath}}" binary="true" size_bytes="{{.SizeBytes}}"/>
{{- else}}
    <file path="{{xmlEscape .RelativePath}}" language="{{.Language}}" tokens="{{.TokenCount}}" lines="{{.Lines}}">{{xmlEscape .Content}}</file>
{{- end}}
{{- end}}
  </files>
</repository_context>
`
