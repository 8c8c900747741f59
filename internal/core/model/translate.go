package model

// TranslationResult is the structured payload expected back from the LLM.
type TranslationResult struct {
	TargetA string `json:"target_a"`
	TargetB string `json:"target_b"`
}
