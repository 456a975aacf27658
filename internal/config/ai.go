package config

type AI string

const (
	AIGemini    AI = "gemini"
	AIAnthropic AI = "anthropic"
	AIOpenAI    AI = "openai"
)

type Model string

const (
	ModelGeminiV25Flash     Model = "gemini-2.5-flash"
	ModelGeminiV25FlashLite Model = "gemini-2.5-flash-lite"
	ModelGeminiV25Pro       Model = "gemini-2.5-pro"

	ModelClaudeSonnet45 Model = "claude-sonnet-4-5"
	ModelClaudeHaiku45  Model = "claude-haiku-4-5"

	ModelGPT4oMini Model = "gpt-4o-mini"
	ModelGPT4o     Model = "gpt-4o"
)

func SupportedAIs() []AI {
	return []AI{
		AIGemini,
		AIAnthropic,
		AIOpenAI,
	}
}

// IsSupportedAI reports whether name is a provider prtitle can talk to.
func IsSupportedAI(name AI) bool {
	for _, ai := range SupportedAIs() {
		if ai == name {
			return true
		}
	}
	return false
}

func ModelsForAI(ai AI) []Model {
	switch ai {
	case AIGemini:
		return []Model{
			ModelGeminiV25Flash,
			ModelGeminiV25FlashLite,
			ModelGeminiV25Pro,
		}
	case AIAnthropic:
		return []Model{
			ModelClaudeHaiku45,
			ModelClaudeSonnet45,
		}
	case AIOpenAI:
		return []Model{
			ModelGPT4oMini,
			ModelGPT4o,
		}
	default:
		return []Model{}
	}
}

func DefaultModelForAI(ai AI) Model {
	models := ModelsForAI(ai)
	if len(models) == 0 {
		return ""
	}
	return models[0]
}

// APIKeyEnvForAI returns the conventional environment variable for a provider key.
func APIKeyEnvForAI(ai AI) string {
	switch ai {
	case AIGemini:
		return "GEMINI_API_KEY"
	case AIAnthropic:
		return "ANTHROPIC_API_KEY"
	case AIOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}
