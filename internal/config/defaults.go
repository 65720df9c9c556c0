package config

import "time"

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"

	AttachmentsLocal = "local"
	AttachmentsMinIO = "minio"

	AgentTransportHTTP = "http"
	AgentTransportExec = "exec"

	VisionProviderOpenAI = "openai"
	VisionProviderGemini = "gemini"

	FeedbackSinkHTTP = "http"
	FeedbackSinkAMQP = "amqp"
	FeedbackSinkNone = "none"
)

// defaultConfig returns the base layer every other source is merged onto.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SessionIssuer: "lumina",
			BcryptCost:    10,
		},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 28,
		},
		Storage: Storage{
			DB: DB{
				Driver:       DriverPostgres,
				MaxOpenConns: 10,
			},
			Attachments: Attachments{
				Backend:  AttachmentsLocal,
				MaxBytes: 5 << 20,
			},
		},
		Server: Server{
			HTTPAddress:     "localhost:5001",
			RequestTimeout:  2 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Adapter: Adapter{
			Agent: Agent{
				Transport: AgentTransportHTTP,
				Address:   "http://127.0.0.1:8000",
				Timeout:   30 * time.Second,
			},
			Vision: Vision{
				Provider:      VisionProviderOpenAI,
				BaseURL:       "https://api.openai.com/v1",
				Model:         "gpt-4o",
				SystemPrompt:  "You are a helpful assistant that can see and analyze images. Provide detailed, accurate descriptions and insights about any images shared.",
				DefaultPrompt: "What do you see in this image?",
				MaxTokens:     4000,
				Temperature:   0.7,
				Timeout:       30 * time.Second,
			},
			Feedback: Feedback{
				Sink:    FeedbackSinkNone,
				Queue:   "lumina.feedback",
				Timeout: 10 * time.Second,
			},
		},
		Workers: Workers{
			FeedbackQueueSize:   256,
			FeedbackConcurrency: 2,
		},
		RateLimit: RateLimit{
			Capacity:       20,
			RefillInterval: 3 * time.Second,
			Prefix:         "rl",
		},
	}
}
