package llmprovider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"vision-assist/pkg/gemini"
	"vision-assist/pkg/openai"
)

// GeminiAdapter adapts pkg/gemini to the Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	geminiReq := &gemini.Request{
		SystemInstruction: convertToGeminiContent(req.SystemInstruction),
		Messages:          convertToGeminiContents(req.Messages),
		Tools:             convertToGeminiTools(req.Tools),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return nil, &ProviderError{Provider: "gemini", Err: err}
	}

	return &Response{
		Content:      convertFromGeminiContent(resp.Content),
		ProviderName: "gemini",
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

// Conversion helpers for Gemini
func convertToGeminiContent(msg *Message) *gemini.Content {
	if msg == nil {
		return nil
	}
	parts := make([]gemini.Part, len(msg.Parts))
	for i, p := range msg.Parts {
		parts[i] = gemini.Part{Text: p.Text}
		if p.InlineData != nil {
			parts[i].InlineData = &gemini.Blob{
				MIMEType: p.InlineData.MIMEType,
				Data:     p.InlineData.Data,
			}
		}
		if p.FunctionCall != nil {
			parts[i].FunctionCall = &gemini.FunctionCall{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
		if p.FunctionResponse != nil {
			parts[i].FunctionResponse = &gemini.FunctionResponse{
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			}
		}
	}
	return &gemini.Content{Role: msg.Role, Parts: parts}
}

func convertToGeminiContents(msgs []Message) []gemini.Content {
	contents := make([]gemini.Content, len(msgs))
	for i, msg := range msgs {
		contents[i] = *convertToGeminiContent(&msg)
	}
	return contents
}

func convertToGeminiTools(tools []Tool) []gemini.Tool {
	geminiTools := make([]gemini.Tool, len(tools))
	for i, t := range tools {
		geminiTools[i] = gemini.Tool{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		}
	}
	return geminiTools
}

func convertFromGeminiContent(content gemini.Content) Message {
	parts := make([]Part, len(content.Parts))
	for i, p := range content.Parts {
		parts[i] = Part{Text: p.Text}
		if p.FunctionCall != nil {
			parts[i].FunctionCall = &FunctionCall{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
		if p.FunctionResponse != nil {
			parts[i].FunctionResponse = &FunctionResponse{
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			}
		}
	}
	return Message{Role: content.Role, Parts: parts}
}

// OpenAIAdapter adapts pkg/openai to the Provider interface
type OpenAIAdapter struct {
	client openai.IOpenAI
	name   string
}

// NewOpenAIAdapter creates a new OpenAI adapter. The name distinguishes
// OpenAI-compatible endpoints that reuse the same wire format.
func NewOpenAIAdapter(client openai.IOpenAI, name string) *OpenAIAdapter {
	if name == "" {
		name = "openai"
	}
	return &OpenAIAdapter{client: client, name: name}
}

// GenerateContent implements Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	openaiReq := &openai.ChatRequest{
		Messages:    convertToOpenAIMessages(req.Messages),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	if req.SystemInstruction != nil && len(req.SystemInstruction.Parts) > 0 {
		systemMsg := openai.ChatMessage{
			Role:    "system",
			Content: req.SystemInstruction.Parts[0].Text,
		}
		openaiReq.Messages = append([]openai.ChatMessage{systemMsg}, openaiReq.Messages...)
	}

	if len(req.Tools) > 0 {
		openaiReq.Tools = convertToOpenAITools(req.Tools)
	}

	resp, err := a.client.ChatCompletion(ctx, openaiReq)
	if err != nil {
		return nil, &ProviderError{Provider: a.name, Err: err}
	}

	return a.convertFromOpenAIResponse(resp), nil
}

// Name returns the provider name
func (a *OpenAIAdapter) Name() string {
	return a.name
}

// Model returns the model name
func (a *OpenAIAdapter) Model() string {
	return a.client.Model()
}

// Conversion helpers for OpenAI
func convertToOpenAIMessages(msgs []Message) []openai.ChatMessage {
	messages := make([]openai.ChatMessage, 0, len(msgs))
	for _, msg := range msgs {
		oaMsg := openai.ChatMessage{
			Role: msg.Role,
		}

		// Inline media forces the content-parts form; plain text stays a string
		if hasInlineData(msg.Parts) {
			oaMsg.Content = convertToOpenAIParts(msg.Parts)
		} else if len(msg.Parts) > 0 && msg.Parts[0].Text != "" {
			oaMsg.Content = msg.Parts[0].Text
		}

		if len(msg.Parts) > 0 && msg.Parts[0].FunctionCall != nil {
			fc := msg.Parts[0].FunctionCall
			argsJSON, _ := json.Marshal(fc.Args)
			oaMsg.ToolCalls = []openai.ToolCall{
				{
					ID:   "call_" + fc.Name,
					Type: "function",
					Function: openai.FunctionCall{
						Name:      fc.Name,
						Arguments: string(argsJSON),
					},
				},
			}
		}

		if len(msg.Parts) > 0 && msg.Parts[0].FunctionResponse != nil {
			fr := msg.Parts[0].FunctionResponse
			oaMsg.Role = "tool"
			oaMsg.ToolCallID = "call_" + fr.Name
			oaMsg.Name = fr.Name
			responseJSON, _ := json.Marshal(fr.Response)
			oaMsg.Content = string(responseJSON)
		}

		messages = append(messages, oaMsg)
	}
	return messages
}

func hasInlineData(parts []Part) bool {
	for _, p := range parts {
		if p.InlineData != nil {
			return true
		}
	}
	return false
}

func convertToOpenAIParts(parts []Part) []openai.ContentPart {
	out := make([]openai.ContentPart, 0, len(parts))
	for _, p := range parts {
		if p.Text != "" {
			out = append(out, openai.ContentPart{Type: "text", Text: p.Text})
		}
		if p.InlineData != nil {
			dataURL := fmt.Sprintf("data:%s;base64,%s",
				p.InlineData.MIMEType,
				base64.StdEncoding.EncodeToString(p.InlineData.Data))
			out = append(out, openai.ContentPart{
				Type:     "image_url",
				ImageURL: &openai.ImageURL{URL: dataURL},
			})
		}
	}
	return out
}

func convertToOpenAITools(tools []Tool) []openai.Tool {
	oaTools := make([]openai.Tool, len(tools))
	for i, t := range tools {
		oaTools[i] = openai.Tool{
			Type: "function",
			Function: openai.FunctionDef{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		}
	}
	return oaTools
}

func (a *OpenAIAdapter) convertFromOpenAIResponse(resp *openai.ChatResponse) *Response {
	out := &Response{
		Content: Message{
			Role:  "assistant",
			Parts: []Part{},
		},
		ProviderName: a.name,
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}

	if len(resp.Choices) == 0 {
		return out
	}

	choice := resp.Choices[0]
	if choice.Message.Content != "" {
		out.Content.Parts = append(out.Content.Parts, Part{Text: choice.Message.Content})
	}

	for _, tc := range choice.Message.ToolCalls {
		var args map[string]interface{}
		json.Unmarshal([]byte(tc.Function.Arguments), &args)
		out.Content.Parts = append(out.Content.Parts, Part{
			FunctionCall: &FunctionCall{
				Name: tc.Function.Name,
				Args: args,
			},
		})
	}

	return out
}
