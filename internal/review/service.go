// Package review drafts monthly narrative reviews from a work line's
// aggregated project/task/risk data, delegating the wording to the Gemini
// API and degrading to a fixed Spanish payload when the call fails.
package review

import (
	"context"
	"fmt"
	"strings"

	"worklines-api/internal/gemini"
	"worklines-api/internal/logger"
	"worklines-api/internal/models"
)

const systemPrompt = "Actúa como un Director de Proyectos (PMO) senior con experiencia en gestión estratégica. " +
	"Tu objetivo es redactar informes ejecutivos claros, profesionales y orientados a la acción. " +
	"Devuelve siempre un JSON válido con las claves: summary, achievements, issues, nextSteps."

// Content is the four-field review body the model is asked to produce.
type Content struct {
	Summary      string `json:"summary"`
	Achievements string `json:"achievements"`
	Issues       string `json:"issues"`
	NextSteps    string `json:"nextSteps"`
}

// Fallback is the fixed payload substituted when generation fails for any
// reason. Callers never see the underlying error.
func Fallback() Content {
	return Content{
		Summary:      "Error al generar el resumen automático. Por favor intente más tarde.",
		Achievements: "No se pudieron cargar los datos de la IA.",
		Issues:       "Verifique su conexión o clave API.",
		NextSteps:    "Proceda con la revisión manual.",
	}
}

// Service turns line statistics into review text.
type Service struct {
	llm gemini.Client
}

// NewService creates a review Service backed by the given client.
func NewService(llm gemini.Client) *Service {
	return &Service{llm: llm}
}

// Generate drafts the review for month (YYYY-MM). The bool result reports
// whether the content was actually model-generated; false means the fixed
// fallback was substituted.
func (s *Service) Generate(ctx context.Context, month string, projects []models.Project, tasks []models.Task, risks []models.Risk) (Content, bool) {
	prompt := BuildPrompt(month, projects, tasks, risks)

	raw, err := s.llm.GenerateJSON(ctx, systemPrompt, prompt)
	if err != nil {
		logger.L().Warnw("review generation failed, using fallback", "month", month, "error", err)
		return Fallback(), false
	}

	content, err := extractContent(raw)
	if err != nil {
		logger.L().Warnw("review response unparseable, using fallback", "month", month, "error", err)
		return Fallback(), false
	}
	return content, true
}

// BuildPrompt serializes the line's activity into the Spanish PMO prompt.
func BuildPrompt(month string, projects []models.Project, tasks []models.Task, risks []models.Risk) string {
	var completed, delayed, activeRisks []string
	for _, t := range tasks {
		switch t.Status {
		case models.StatusCompleted:
			completed = append(completed, t.Title)
		case models.StatusDelayed:
			delayed = append(delayed, t.Title)
		}
	}
	for _, r := range risks {
		if r.Status == models.RiskOpen || r.Status == models.RiskInProgress {
			activeRisks = append(activeRisks, r.Description)
		}
	}

	var summaries []string
	for _, p := range projects {
		summaries = append(summaries, fmt.Sprintf("- Proyecto: %s (Estado: %s, Progreso: %d%%)", p.Name, p.Status, p.Progress))
	}

	return fmt.Sprintf(`Genera el contenido para el Informe de Revisión Mensual correspondiente a: %s.

Usa estrictamente los siguientes datos reales del sistema:

DATOS DE PROYECTOS:
%s

ACTIVIDAD DEL MES:
- Tareas Completadas: %s
- Tareas Retrasadas/Bloqueadas: %s
- Riesgos Activos Detectados: %s

Genera una respuesta en formato JSON.`,
		month,
		strings.Join(summaries, "\n"),
		orNone(completed, "Ninguna"),
		orNone(delayed, "Ninguna"),
		orNone(activeRisks, "Ninguno"),
	)
}

func orNone(items []string, none string) string {
	if len(items) == 0 {
		return none
	}
	return strings.Join(items, ", ")
}
