package agent

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"copydesk/conversation"
	"copydesk/logger"
)

const (
	toolWebSearch      = "web_search"
	toolGeneratePoster = "generate_image_poster"

	// maxToolRounds bounds the dispatch loop so a misbehaving model cannot
	// keep requesting tool calls forever.
	maxToolRounds = 4

	imageDataPrefix = "data:image/png;base64,"
)

// SearchTool runs a web search and always returns text, even on failure.
type SearchTool interface {
	Search(ctx context.Context, query string) string
}

// PosterTool generates a poster image and returns either an inline PNG data
// URI or an error string.
type PosterTool interface {
	Generate(ctx context.Context, inputText string) string
}

// Kind classifies what the policy produced.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Reply is the routed answer. For KindImage, Text holds the PNG data URI.
type Reply struct {
	Kind Kind
	Text string
}

// Agent relays the policy, bounded history and current message to the
// completion model and dispatches whatever tool calls it chooses.
type Agent struct {
	client *genai.Client
	model  string
	search SearchTool
	poster PosterTool
}

func New(ctx context.Context, apiKey, model string, search SearchTool, poster PosterTool) (*Agent, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &Agent{client: client, model: model, search: search, poster: poster}, nil
}

func toolDeclarations() []*genai.Tool {
	return []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        toolWebSearch,
				Description: "Search the web for recent, real-time, or factual information. Use only if necessary.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"query": {Type: genai.TypeString, Description: "The search query"},
					},
					Required: []string{"query"},
				},
			},
			{
				Name:        toolGeneratePoster,
				Description: "Generate a banner or poster image with text.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"input_text": {Type: genai.TypeString, Description: "The user's visual request"},
					},
					Required: []string{"input_text"},
				},
			},
		},
	}}
}

// historyContents converts past exchanges into alternating user/model turns.
func historyContents(history []conversation.Exchange) []*genai.Content {
	out := make([]*genai.Content, 0, len(history)*2)
	for _, ex := range history {
		out = append(out,
			&genai.Content{Role: "user", Parts: []*genai.Part{{Text: ex.User}}},
			&genai.Content{Role: "model", Parts: []*genai.Part{{Text: ex.AI}}},
		)
	}
	return out
}

// IsImageData reports whether a tool output is an inline PNG payload.
func IsImageData(s string) bool {
	return strings.HasPrefix(s, imageDataPrefix)
}

// Ask sends the policy, history and input to the model and relays its
// chosen action. The poster tool is return-direct: its output becomes the
// final answer without another model round.
func (a *Agent) Ask(ctx context.Context, history []conversation.Exchange, input string) (Reply, error) {
	contents := historyContents(history)
	contents = append(contents, &genai.Content{Role: "user", Parts: []*genai.Part{{Text: input}}})

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SYSTEM_INSTRUCTION}}},
		Tools:             toolDeclarations(),
		Temperature:       genai.Ptr[float32](0.7),
	}

	for round := 0; round < maxToolRounds; round++ {
		result, err := a.client.Models.GenerateContent(ctx, a.model, contents, cfg)
		if err != nil {
			return Reply{}, err
		}

		calls := result.FunctionCalls()
		if len(calls) == 0 {
			text := strings.TrimSpace(result.Text())
			if text == "" {
				text = FallbackReply
			}
			return Reply{Kind: KindText, Text: text}, nil
		}

		if len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			contents = append(contents, result.Candidates[0].Content)
		}

		var responses []*genai.Part
		for _, call := range calls {
			switch call.Name {
			case toolGeneratePoster:
				inputText, _ := call.Args["input_text"].(string)
				if inputText == "" {
					inputText = input
				}
				out := a.poster.Generate(ctx, inputText)
				if IsImageData(out) {
					return Reply{Kind: KindImage, Text: out}, nil
				}
				// inline failure string from the adapter
				return Reply{Kind: KindText, Text: out}, nil
			case toolWebSearch:
				query, _ := call.Args["query"].(string)
				out := a.search.Search(ctx, query)
				responses = append(responses, &genai.Part{FunctionResponse: &genai.FunctionResponse{
					Name:     call.Name,
					Response: map[string]any{"output": out},
				}})
			default:
				logger.Log.Warnf("model requested unknown tool %q", call.Name)
				responses = append(responses, &genai.Part{FunctionResponse: &genai.FunctionResponse{
					Name:     call.Name,
					Response: map[string]any{"output": fmt.Sprintf("unknown tool: %s", call.Name)},
				}})
			}
		}
		contents = append(contents, &genai.Content{Role: "user", Parts: responses})
	}

	return Reply{Kind: KindText, Text: FallbackReply}, nil
}
