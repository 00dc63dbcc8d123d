// Package template renders chunks into output documents.
//
// Markdown and XML go through built-in text/template definitions; JSON
// marshals the render context directly. A custom format loads an
// external template file, which is validated (size, syntax, execution
// against a sample context) before the first chunk is rendered.
//
// Templates see a Context value: chunk position, file views with
// detected languages, a generation timestamp, and the configured preset
// when one is active. Helper functions xmlEscape, jsonEncode,
// truncateLines, and detectLanguage are available in custom templates.
package template
