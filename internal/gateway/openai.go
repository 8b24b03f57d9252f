package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"pillpal/internal/models"
)

const parseInstruction = `You read prescription photos. Reply with ONLY a JSON object of the form
{"medications":[{"medication":"","dosage":"","frequency_per_day":0,"times":["08:00"],"duration":"","form":"Pill","condition":"","total_pills":0}]}
Valid forms: Pill, Injection, Liquid, Drops, Inhaler, Powder, Other.
Omit total_pills when the quantity is not printed. Reply {"medications":[]} if no medication is legible.`

const interactionInstruction = `You are a pharmacist. Given a list of medication names, reply with a single short warning sentence if any clinically relevant interaction exists between them, otherwise reply with the word NONE.`

// OpenAIParser calls the OpenAI API for prescription extraction and
// interaction checks.
type OpenAIParser struct {
	client *openai.Client
	model  string
}

// NewOpenAIParser constructs an OpenAI-backed Parser using the given API key
// and model name.
func NewOpenAIParser(apiKey, model string) *OpenAIParser {
	return &OpenAIParser{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// ParsePrescription sends the image to the vision chat completion API and
// decodes the JSON candidate list from the reply.
func (p *OpenAIParser) ParsePrescription(ctx context.Context, imageBase64 string) ([]models.Candidate, error) {
	if p.client == nil {
		return nil, errors.New("openai client not initialized")
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: parseInstruction},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: "data:image/jpeg;base64," + imageBase64,
						},
					},
				},
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return []models.Candidate{}, nil
	}

	return decodeCandidates(resp.Choices[0].Message.Content)
}

// CheckInteractions asks the model whether the given medications interact.
func (p *OpenAIParser) CheckInteractions(ctx context.Context, names []string) (string, error) {
	if len(names) < 2 {
		return "", nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: interactionInstruction},
			{Role: openai.ChatMessageRoleUser, Content: strings.Join(names, ", ")},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" || strings.EqualFold(answer, "NONE") {
		return "", nil
	}
	return answer, nil
}

// decodeCandidates parses the model reply into candidates. Models sometimes
// wrap JSON in a markdown fence; strip it before decoding.
func decodeCandidates(reply string) ([]models.Candidate, error) {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	reply = strings.TrimSpace(reply)

	var out struct {
		Medications []models.Candidate `json:"medications"`
	}
	if err := json.Unmarshal([]byte(reply), &out); err != nil {
		return nil, errors.New("malformed extraction response")
	}
	if out.Medications == nil {
		return []models.Candidate{}, nil
	}
	return out.Medications, nil
}
