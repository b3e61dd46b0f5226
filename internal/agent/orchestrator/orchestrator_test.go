package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"vision-assist/internal/agent"
	"vision-assist/internal/memory"
	"vision-assist/internal/model"
	"vision-assist/pkg/llmprovider"
)

// mockLogger
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

// scriptedProvider returns canned responses in order.
type scriptedProvider struct {
	responses []*llmprovider.Response
	err       error
	calls     int
}

func (p *scriptedProvider) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.calls >= len(p.responses) {
		return nil, errors.New("no more scripted responses")
	}
	resp := p.responses[p.calls]
	p.calls++
	return resp, nil
}

func (p *scriptedProvider) Name() string  { return "scripted" }
func (p *scriptedProvider) Model() string { return "scripted-model" }

// echoTool records its invocation and returns a fixed result.
type echoTool struct {
	name   string
	result interface{}
	calls  int
}

func (t *echoTool) Name() string        { return t.name }
func (t *echoTool) Description() string { return "test tool" }
func (t *echoTool) Parameters() map[string]interface{} {
	return map[string]interface{}{"type": "object"}
}
func (t *echoTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	t.calls++
	return t.result, nil
}

func textReply(text string) *llmprovider.Response {
	return &llmprovider.Response{
		Content: llmprovider.Message{
			Role:  "assistant",
			Parts: []llmprovider.Part{{Text: text}},
		},
		Usage: &llmprovider.Usage{},
	}
}

func toolCallReply(name string) *llmprovider.Response {
	return &llmprovider.Response{
		Content: llmprovider.Message{
			Role: "assistant",
			Parts: []llmprovider.Part{{
				FunctionCall: &llmprovider.FunctionCall{Name: name, Args: map[string]interface{}{}},
			}},
		},
		Usage: &llmprovider.Usage{},
	}
}

func newTestOrchestrator(provider llmprovider.Provider, registry *agent.ToolRegistry, mem *memory.Store) *Orchestrator {
	manager := llmprovider.NewManager(
		[]llmprovider.Provider{provider},
		&llmprovider.Config{RetryAttempts: 1, RetryDelay: time.Millisecond},
		&mockLogger{},
	)
	return New(manager, registry, mem, &mockLogger{})
}

func TestProcessQuery_DirectAnswer(t *testing.T) {
	mem := memory.New(memory.Config{})
	provider := &scriptedProvider{responses: []*llmprovider.Response{
		textReply("You are in a kitchen."),
	}}

	o := newTestOrchestrator(provider, agent.NewToolRegistry(), mem)

	answer, err := o.ProcessQuery(context.Background(), "where am I?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "You are in a kitchen." {
		t.Errorf("unexpected answer: %q", answer)
	}

	// Both turns recorded.
	messages := mem.Snapshot().Messages
	if len(messages) != 2 {
		t.Fatalf("expected 2 recorded messages, got %d", len(messages))
	}
	if messages[0].Role != model.RoleUser || messages[0].Content != "where am I?" {
		t.Errorf("unexpected user turn: %+v", messages[0])
	}
	if messages[1].Role != model.RoleAssistant {
		t.Errorf("unexpected assistant turn: %+v", messages[1])
	}
}

func TestProcessQuery_ToolCall(t *testing.T) {
	mem := memory.New(memory.Config{})
	tool := &echoTool{name: "check_hazards", result: "no hazards"}
	registry := agent.NewToolRegistry()
	registry.Register(tool)

	provider := &scriptedProvider{responses: []*llmprovider.Response{
		toolCallReply("check_hazards"),
		textReply("The path ahead is clear."),
	}}

	o := newTestOrchestrator(provider, registry, mem)

	answer, err := o.ProcessQuery(context.Background(), "is it safe to walk forward?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "The path ahead is clear." {
		t.Errorf("unexpected answer: %q", answer)
	}
	if tool.calls != 1 {
		t.Errorf("expected tool to run once, got %d", tool.calls)
	}
	if provider.calls != 2 {
		t.Errorf("expected 2 LLM rounds, got %d", provider.calls)
	}
}

func TestProcessQuery_UnknownToolContinues(t *testing.T) {
	mem := memory.New(memory.Config{})
	provider := &scriptedProvider{responses: []*llmprovider.Response{
		toolCallReply("read_minds"),
		textReply("Sorry, I cannot do that."),
	}}

	o := newTestOrchestrator(provider, agent.NewToolRegistry(), mem)

	answer, err := o.ProcessQuery(context.Background(), "what am I thinking?")
	if err != nil {
		t.Fatalf("unknown tool must not abort the loop, got %v", err)
	}
	if answer != "Sorry, I cannot do that." {
		t.Errorf("unexpected answer: %q", answer)
	}
}

func TestProcessQuery_MaxSteps(t *testing.T) {
	mem := memory.New(memory.Config{})
	tool := &echoTool{name: "describe_scene", result: "a room"}
	registry := agent.NewToolRegistry()
	registry.Register(tool)

	// The model keeps calling tools and never answers.
	var responses []*llmprovider.Response
	for i := 0; i < MaxAgentSteps+1; i++ {
		responses = append(responses, toolCallReply("describe_scene"))
	}
	provider := &scriptedProvider{responses: responses}

	o := newTestOrchestrator(provider, registry, mem)

	answer, err := o.ProcessQuery(context.Background(), "describe everything forever")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != MsgMaxStepsExceeded {
		t.Errorf("expected max-steps fallback, got %q", answer)
	}
	if provider.calls != MaxAgentSteps {
		t.Errorf("expected %d LLM rounds, got %d", MaxAgentSteps, provider.calls)
	}
}

func TestProcessQuery_LLMFailure(t *testing.T) {
	mem := memory.New(memory.Config{})
	provider := &scriptedProvider{err: errors.New("provider down")}

	o := newTestOrchestrator(provider, agent.NewToolRegistry(), mem)

	_, err := o.ProcessQuery(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "agent LLM error") {
		t.Errorf("expected LLM error, got %v", err)
	}
}

func TestProcessQuery_EmptyQuery(t *testing.T) {
	o := newTestOrchestrator(&scriptedProvider{}, agent.NewToolRegistry(), memory.New(memory.Config{}))
	if _, err := o.ProcessQuery(context.Background(), "   "); err == nil {
		t.Error("expected error for empty query")
	}
}
