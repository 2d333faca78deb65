package cmd

import (
	"net/http"
	"time"

	"github.com/spf13/viper"
	weaviateClient "github.com/weaviate/weaviate-go-client/v4/weaviate"

	"hydrorag/src/core/documents"
	"hydrorag/src/core/evaluation"
	"hydrorag/src/core/judge"
	"hydrorag/src/core/qa"
	"hydrorag/src/core/session"
	"hydrorag/src/infrastructure/integrations/ollama"
	"hydrorag/src/infrastructure/integrations/unstructured"
	"hydrorag/src/storage/weaviate"
)

// stack bundles the wired services every command works with.
type stack struct {
	ollamaClient *ollama.Client
	weaviateSDK  *weaviate.SDK
	qaService    *qa.Service
	coordinator  *evaluation.Coordinator
}

func buildStack(opts ...evaluation.CoordinatorOption) (*stack, error) {
	oc := ollama.NewClient(viper.GetString("ollama.url"), &http.Client{
		Timeout: 300 * time.Second,
	})

	wc := weaviateClient.New(weaviateClient.Config{
		Host:   viper.GetString("weaviate.host"),
		Scheme: viper.GetString("weaviate.scheme"),
	})
	wsdk := weaviate.NewSDK(wc)

	uc := unstructured.NewClient(viper.GetString("unstructured.url"))

	processor, err := documents.NewProcessor(wsdk, uc, oc, viper.GetString("models.embedding"))
	if err != nil {
		return nil, err
	}

	ttl, err := time.ParseDuration(viper.GetString("session.ttl"))
	if err != nil {
		ttl = session.DefaultTTL
	}
	sessions := session.NewStore(ttl)

	judgeClient := judge.NewClient(oc, viper.GetString("models.judge"))
	generator := ollama.NewProvider(oc, viper.GetString("models.generation"))

	qaService := qa.NewService(processor, sessions, judgeClient, generator)

	quality := evaluation.NewQualityEvaluator(judgeClient, oc, viper.GetString("models.embedding"))
	risk := evaluation.NewRiskEvaluator(judgeClient)

	opts = append([]evaluation.CoordinatorOption{
		evaluation.WithSubsetSize(viper.GetInt("evaluation.subset_size")),
	}, opts...)
	coordinator := evaluation.NewCoordinator(quality, risk, qaService.AnswerFunc(), opts...)

	return &stack{
		ollamaClient: oc,
		weaviateSDK:  wsdk,
		qaService:    qaService,
		coordinator:  coordinator,
	}, nil
}
