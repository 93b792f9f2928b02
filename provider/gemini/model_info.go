package gemini

import "github.com/mhpenta/assist"

// FlashInfo is the model info for Gemini 2.5 Flash, the default text and
// vision model.
var FlashInfo = assist.ModelInfo{
	Name:         "gemini-2.5-flash",
	Provider:     assist.ProviderGeminiAPI,
	APIModelName: APIModelText,

	Capabilities: assist.ModelCapabilities{
		SupportsChat:         true,
		SupportsVision:       true,
		SupportsImageOutput:  false,
		SupportsConversation: true,
	},

	ContextLength: 1048576, // 1M tokens
}

// FlashImageInfo is the model info for Gemini 2.5 Flash Image, the default
// image generation model.
var FlashImageInfo = assist.ModelInfo{
	Name:         "gemini-2.5-flash-image",
	Provider:     assist.ProviderGeminiAPI,
	APIModelName: APIModelImage,

	Capabilities: assist.ModelCapabilities{
		SupportsChat:         false,
		SupportsVision:       true,
		SupportsImageOutput:  true,
		SupportsConversation: true,
	},

	ContextLength: 32768,
}

// ProImageInfo is the model info for Gemini 3 Pro Image.
//
// Built on Gemini 3 Pro; higher-quality image generation and editing at a
// higher price point.
var ProImageInfo = assist.ModelInfo{
	Name:         "gemini-3-pro-image",
	Provider:     assist.ProviderGeminiAPI,
	APIModelName: APIModelImagePro,

	Capabilities: assist.ModelCapabilities{
		SupportsChat:         false,
		SupportsVision:       true,
		SupportsImageOutput:  true,
		SupportsConversation: true,
	},

	ContextLength: 1048576, // 1M tokens
}
