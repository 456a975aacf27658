package ai

import (
	"bytes"
	"fmt"
	"text/template"
)

// PromptData holds the parameters for template rendering
type PromptData struct {
	CurrentTitle      string
	Description       string
	Commits           []string
	OmittedCommits    int
	Files             []string
	OmittedFiles      int
	Diff              string
	DiffTruncated     bool
	StyleInstructions string
	MaxLength         int
}

// RenderPrompt renders a prompt template with the provided data
func RenderPrompt(name, tmplStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("error parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error executing template %s: %w", name, err)
	}

	return buf.String(), nil
}

const (
	titlePromptTemplateEN = `# Task
Act as a Senior Tech Lead and write the title of a Pull Request.

# Current title
{{if .CurrentTitle}}{{.CurrentTitle}}{{else}}(empty){{end}}
{{if .Description}}
# Description
{{.Description}}
{{end}}
# Commits
{{range .Commits}}- {{.}}
{{else}}(no commits)
{{end}}{{if .OmittedCommits}}- ... and {{.OmittedCommits}} more commits
{{end}}{{if .Files}}
# Files changed
{{range .Files}}- {{.}}
{{end}}{{if .OmittedFiles}}- ... and {{.OmittedFiles}} more files
{{end}}{{end}}{{if .Diff}}
# Diff{{if .DiffTruncated}} (truncated){{end}}
{{.Diff}}
{{end}}
# Rules
1. Describe the main change of the Pull Request, not each commit.
2. Use the imperative mood ("Add", "Fix", "Remove").
3. {{.StyleInstructions}}
{{if .MaxLength}}4. At most {{.MaxLength}} characters.
{{end}}
# Output
Reply with the title only: one line, no quotes, no markdown, no explanation.
If the current title already describes the change well, reply with it unchanged.`

	titlePromptTemplateES = `# Tarea
Actuá como un Tech Lead Senior y escribí el título de un Pull Request.

# Título actual
{{if .CurrentTitle}}{{.CurrentTitle}}{{else}}(vacío){{end}}
{{if .Description}}
# Descripción
{{.Description}}
{{end}}
# Commits
{{range .Commits}}- {{.}}
{{else}}(sin commits)
{{end}}{{if .OmittedCommits}}- ... y {{.OmittedCommits}} commits más
{{end}}{{if .Files}}
# Archivos modificados
{{range .Files}}- {{.}}
{{end}}{{if .OmittedFiles}}- ... y {{.OmittedFiles}} archivos más
{{end}}{{end}}{{if .Diff}}
# Diff{{if .DiffTruncated}} (recortado){{end}}
{{.Diff}}
{{end}}
# Reglas
1. Describí el cambio principal del Pull Request, no cada commit.
2. Usá el modo imperativo ("Agregar", "Corregir", "Eliminar").
3. {{.StyleInstructions}}
{{if .MaxLength}}4. Como máximo {{.MaxLength}} caracteres.
{{end}}
# Salida
Respondé solo con el título: una línea, sin comillas, sin markdown, sin explicación.
Si el título actual ya describe bien el cambio, respondé con ese mismo título.`
)

const (
	conventionalStyleEN = "Follow Conventional Commits: type(scope): subject, with type one of feat, fix, docs, style, refactor, perf, test, build, ci, chore, revert. The scope is optional. Keep the type in English."
	freeStyleEN         = "Write a plain sentence-case title without a type prefix."

	conventionalStyleES = "Seguí Conventional Commits: tipo(alcance): asunto, con tipo entre feat, fix, docs, style, refactor, perf, test, build, ci, chore, revert. El alcance es opcional. El tipo va en inglés."
	freeStyleES         = "Escribí un título simple, con mayúscula inicial y sin prefijo de tipo."
)

// GetTitlePromptTemplate returns the appropriate template based on the language
func GetTitlePromptTemplate(lang string) string {
	switch lang {
	case "es":
		return titlePromptTemplateES
	default:
		return titlePromptTemplateEN
	}
}

// GetStyleInstructions returns the title format rule for a style and language.
func GetStyleInstructions(lang string, conventional bool) string {
	switch {
	case lang == "es" && conventional:
		return conventionalStyleES
	case lang == "es":
		return freeStyleES
	case conventional:
		return conventionalStyleEN
	default:
		return freeStyleEN
	}
}
