package ollama

import "context"

// Provider binds a Client to a fixed model so callers that only need plain
// text generation do not carry model names around.
type Provider struct {
	client  *Client
	model   string
	options map[string]interface{}
}

func NewProvider(client *Client, model string) *Provider {
	return &Provider{
		client: client,
		model:  model,
		options: map[string]interface{}{
			"temperature": 0.0,
		},
	}
}

func (p *Provider) Generate(ctx context.Context, system, prompt string) (string, error) {
	return p.client.Generate(ctx, p.model, system, prompt, p.options)
}
