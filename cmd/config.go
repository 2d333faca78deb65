package cmd

import "github.com/spf13/viper"

func settingDefaultConfig() {
	// Enable automatic environment variable binding
	viper.AutomaticEnv()

	// Map environment variables to Viper keys for the server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.shutdown_timeout", "SERVER_SHUTDOWN_TIMEOUT")

	// Map environment variables to Viper keys for external services
	viper.BindEnv("ollama.url", "OLLAMA_URL")
	viper.BindEnv("weaviate.host", "WEAVIATE_HOST")
	viper.BindEnv("weaviate.scheme", "WEAVIATE_SCHEME")
	viper.BindEnv("unstructured.url", "UNSTRUCTURED_API_URL")

	// Map environment variables to Viper keys for model selection
	viper.BindEnv("models.generation", "GENERATION_MODEL")
	viper.BindEnv("models.judge", "JUDGE_MODEL")
	viper.BindEnv("models.embedding", "EMBEDDING_MODEL")

	viper.BindEnv("session.ttl", "SESSION_TTL")
	viper.BindEnv("evaluation.subset_size", "EVALUATION_SUBSET_SIZE")

	// Set default values for the server
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.shutdown_timeout", "5s")

	// Set default values for external services
	viper.SetDefault("ollama.url", "http://localhost:11434/api")
	viper.SetDefault("weaviate.host", "localhost:8080")
	viper.SetDefault("weaviate.scheme", "http")
	viper.SetDefault("unstructured.url", "http://localhost:8000")

	// Set default values for model selection
	viper.SetDefault("models.generation", "llama3.2")
	viper.SetDefault("models.judge", "llama3.2")
	viper.SetDefault("models.embedding", "nomic-embed-text")

	viper.SetDefault("session.ttl", "2h")
	viper.SetDefault("evaluation.subset_size", 5)
}
