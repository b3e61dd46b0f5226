package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"vision-assist/internal/model"
	"vision-assist/pkg/llmprovider"
)

// ProcessQuery runs a ReAct loop: Reason → Act → Observe. Both the user
// query and the final answer are recorded in the conversation memory.
func (o *Orchestrator) ProcessQuery(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("empty query")
	}

	req := &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: SystemPromptAgent}},
		},
		Messages:    o.historyMessages(),
		Tools:       o.registry.ToFunctionDefinitions(),
		Temperature: o.temperature,
	}
	req.Messages = append(req.Messages, llmprovider.Message{
		Role:  "user",
		Parts: []llmprovider.Part{{Text: query}},
	})

	o.mem.RecordMessage(model.RoleUser, query)

	for step := 0; step < MaxAgentSteps; step++ {
		resp, err := o.llm.GenerateContent(ctx, req)
		if err != nil {
			return "", fmt.Errorf("agent LLM error at step %d: %w", step, err)
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			answer := strings.TrimSpace(resp.Text())
			if answer == "" {
				return "", fmt.Errorf("empty LLM response")
			}
			o.l.Debugf(ctx, "agent finished at step %d", step+1)
			o.mem.RecordMessage(model.RoleAssistant, answer)
			return answer, nil
		}

		call := calls[0]
		o.l.Infof(ctx, "agent calling tool %s with args %+v", call.Name, call.Args)

		var toolResult interface{}
		if tool, ok := o.registry.Get(call.Name); !ok {
			o.l.Errorf(ctx, "tool %s not found", call.Name)
			toolResult = map[string]string{"error": "tool not found"}
		} else {
			res, err := tool.Execute(ctx, call.Args)
			if err != nil {
				o.l.Errorf(ctx, "tool %s failed: %v", call.Name, err)
				toolResult = map[string]string{"error": err.Error()}
			} else {
				toolResult = res
			}
		}

		req.Messages = append(req.Messages,
			llmprovider.Message{
				Role:  "assistant",
				Parts: []llmprovider.Part{{FunctionCall: call}},
			},
			llmprovider.Message{
				Role: "function",
				Parts: []llmprovider.Part{{
					FunctionResponse: &llmprovider.FunctionResponse{
						Name:     call.Name,
						Response: toolResult,
					},
				}},
			},
		)
	}

	o.l.Warnf(ctx, "agent exceeded max steps (%d)", MaxAgentSteps)
	o.mem.RecordMessage(model.RoleAssistant, MsgMaxStepsExceeded)
	return MsgMaxStepsExceeded, nil
}

// historyMessages converts the recent transcript into provider messages.
func (o *Orchestrator) historyMessages() []llmprovider.Message {
	transcript := o.mem.Snapshot().Messages
	if len(transcript) > MaxHistoryMessages {
		transcript = transcript[len(transcript)-MaxHistoryMessages:]
	}

	messages := make([]llmprovider.Message, 0, len(transcript))
	for _, msg := range transcript {
		messages = append(messages, llmprovider.Message{
			Role:  string(msg.Role),
			Parts: []llmprovider.Part{{Text: msg.Content}},
		})
	}
	return messages
}
