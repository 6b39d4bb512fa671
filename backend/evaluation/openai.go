package evaluation

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"ieltscheck/backend/models"
)

const (
	defaultModel     = openai.GPT4oMini
	completionTokens = 1000
	samplingTemp     = 0.3
)

// OpenAIEvaluator scores submissions with a single chat completion per call.
// No retries: an unreachable or misbehaving service surfaces as an
// evaluation failure and nothing is persisted by the caller.
type OpenAIEvaluator struct {
	client *openai.Client
	model  string
	log    *logrus.Logger
}

func NewOpenAIEvaluator(apiKey, model string, log *logrus.Logger) *OpenAIEvaluator {
	if model == "" {
		model = defaultModel
	}
	return &OpenAIEvaluator{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    log,
	}
}

func (e *OpenAIEvaluator) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: samplingTemp,
		MaxTokens:   completionTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEvaluationFailed, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrEvaluationFailed)
	}
	return resp.Choices[0].Message.Content, nil
}

func (e *OpenAIEvaluator) EvaluateWriting(ctx context.Context, taskType models.TaskType, prompt, text string, wordLimit int) (*WritingEvaluation, error) {
	content, err := e.complete(ctx, writingSystemPrompt(taskType), writingUserPrompt(prompt, text, wordLimit))
	if err != nil {
		e.log.WithError(err).Error("writing evaluation request failed")
		return nil, err
	}

	eval, err := parseWritingEvaluation(content)
	if err != nil {
		e.log.WithError(err).Error("writing evaluation response unparseable")
		return nil, fmt.Errorf("%w: %v", ErrEvaluationFailed, err)
	}
	return eval, nil
}

func (e *OpenAIEvaluator) EvaluateSpeaking(ctx context.Context, transcript, topic string, part models.SpeakingPart) (*SpeakingEvaluation, error) {
	content, err := e.complete(ctx, speakingSystemPrompt(part), speakingUserPrompt(topic, transcript))
	if err != nil {
		e.log.WithError(err).Error("speaking evaluation request failed")
		return nil, err
	}

	eval, err := parseSpeakingEvaluation(content)
	if err != nil {
		e.log.WithError(err).Error("speaking evaluation response unparseable")
		return nil, fmt.Errorf("%w: %v", ErrEvaluationFailed, err)
	}
	return eval, nil
}
