// Package narrator turns a closed year into a short story line for the
// history log.
package narrator

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/log"
	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/lifesim/internal/engine"
	"github.com/tatianab/lifesim/internal/models"
	"google.golang.org/api/option"
)

//go:embed prompts/year_recap.txt
var yearRecapPrompt string

var recapTemplate = template.Must(template.New("year_recap").Parse(yearRecapPrompt))

type Narrator interface {
	Recap(ctx context.Context, p *models.PlayerState, rep engine.YearReport) (string, error)
}

// Plain recaps a year from its event lines only.
type Plain struct{}

func (Plain) Recap(_ context.Context, p *models.PlayerState, rep engine.YearReport) (string, error) {
	events := rep.Events()
	if len(events) == 0 {
		return fmt.Sprintf("%s turned %d. A quiet year.", p.Name, rep.Age), nil
	}
	return fmt.Sprintf("%s turned %d. %s.", p.Name, rep.Age, strings.Join(events, ". ")), nil
}

// Gemini asks a Gemini model for the recap and falls back to Plain on any
// error, so a flaky network never stalls the game.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *log.Logger
}

func NewGemini(ctx context.Context, apiKey, model string, logger *log.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	m := client.GenerativeModel(model)
	m.SetTemperature(0.7)
	m.SetMaxOutputTokens(200)
	return &Gemini{client: client, model: m, logger: logger}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

func (g *Gemini) Recap(ctx context.Context, p *models.PlayerState, rep engine.YearReport) (string, error) {
	prompt, err := renderPrompt(p, rep)
	if err != nil {
		return "", err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err == nil {
		var text string
		if text, err = firstText(resp); err == nil {
			return text, nil
		}
	}
	if g.logger != nil {
		g.logger.Warn("recap fell back to plain text", "err", err)
	}
	return Plain{}.Recap(ctx, p, rep)
}

type promptData struct {
	*models.PlayerState
	Events []string
}

func renderPrompt(p *models.PlayerState, rep engine.YearReport) (string, error) {
	var buf bytes.Buffer
	if err := recapTemplate.Execute(&buf, promptData{PlayerState: p, Events: rep.Events()}); err != nil {
		return "", fmt.Errorf("render recap prompt: %w", err)
	}
	return buf.String(), nil
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return strings.TrimSpace(string(text)), nil
}
