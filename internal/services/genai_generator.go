package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"securitybot_go_backend/internal/models"

	"github.com/google/generative-ai-go/genai"
)

const securityBotInstruction = "### Persona\n" +
	"You are SecurityBot, a cybersecurity expert.\n" +
	"- Your tone is friendly and direct.\n" +
	"- Use bold text and lists to explain.\n" +
	"\n" +
	"### Gamification Rule (Quiz)\n" +
	"Whenever you explain an educational concept (e.g. phishing, passwords, firewalls), finish your answer with a KNOWLEDGE CHALLENGE.\n" +
	"The challenge must be JSON inside a code block, exactly like this:\n" +
	"\n" +
	"```json\n" +
	"{\n" +
	"  \"quiz\": {\n" +
	"    \"question\": \"Short question about the concept just explained?\",\n" +
	"    \"options\": [\"Option A (wrong)\", \"Option B (right)\", \"Option C (wrong)\"],\n" +
	"    \"correctIndex\": 1,\n" +
	"    \"explanation\": \"Brief explanation of why B is right.\"\n" +
	"  }\n" +
	"}\n" +
	"```\n" +
	"\n" +
	"NEVER reveal the answer in the normal text. The user must click to answer.\n"

// GenAITextGenerator implements TextGenerator on top of the Gemini API.
// GenerateReply carries the SecurityBot persona; GenerateText uses the bare
// model, which is what title synthesis wants.
type GenAITextGenerator struct {
	client    *genai.Client
	modelName string
}

func NewGenAITextGenerator(client *genai.Client, modelName string) *GenAITextGenerator {
	return &GenAITextGenerator{
		client:    client,
		modelName: modelName,
	}
}

func (g *GenAITextGenerator) GenerateReply(ctx context.Context, history []ChatTurn, message string) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(securityBotInstruction)},
	}

	chat := model.StartChat()
	chat.History = make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		role := "user"
		if turn.Role == models.RoleAssistant {
			role = "model"
		}
		chat.History = append(chat.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}

	resp, err := chat.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}
	return responseText(resp)
}

func (g *GenAITextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from model")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("model response contained no text parts")
	}
	return sb.String(), nil
}
