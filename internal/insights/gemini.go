package insights

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ======================================================
// INSIGHTS (resumo executivo via Gemini)
// ======================================================

const insightsModel = "gemini-3-flash-preview"

const systemInstruction = "Você é um consultor de negócios sênior especializado em SaaS. Responda em Português do Brasil."

const (
	msgNotConfigured = "Insights indisponíveis - configure a chave de API do Gemini."
	msgUnavailable   = "Não foi possível gerar insights no momento. Verifique sua conexão ou chave de API."
)

// Metrics é o retrato da plataforma enviado ao modelo.
type Metrics struct {
	Companies     int64   `json:"companies"`
	Professionals int64   `json:"professionals"`
	Bookings      int64   `json:"bookings"`
	Revenue       float64 `json:"revenue"`
}

// Service gera resumos executivos das métricas da plataforma.
// Sem chave configurada o serviço degrada para uma mensagem fixa;
// nunca bloqueia o console master.
type Service struct {
	apiKey string
	log    *zap.Logger
}

func New(apiKey string, log *zap.Logger) *Service {
	return &Service{apiKey: apiKey, log: log}
}

func (s *Service) Enabled() bool {
	return s.apiKey != ""
}

// SystemSummary pede ao Gemini um resumo executivo de 3 frases com
// recomendações. Qualquer falha vira mensagem de indisponibilidade.
func (s *Service) SystemSummary(ctx context.Context, metrics Metrics) string {
	if !s.Enabled() {
		return msgNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		s.warn(err)
		return msgUnavailable
	}

	resp, err := client.Models.GenerateContent(ctx, insightsModel,
		genai.Text(buildPrompt(metrics)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		})
	if err != nil {
		s.warn(err)
		return msgUnavailable
	}

	text := resp.Text()
	if text == "" {
		return msgUnavailable
	}
	return text
}

func buildPrompt(metrics Metrics) string {
	payload, _ := json.Marshal(metrics)
	return fmt.Sprintf("Analise as seguintes métricas do SaaS BOOKI e forneça um resumo executivo de 3 frases com recomendações: %s", payload)
}

func (s *Service) warn(err error) {
	if s.log != nil {
		s.log.Warn("falha ao gerar insights", zap.Error(err))
	}
}
