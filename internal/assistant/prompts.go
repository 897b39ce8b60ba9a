package assistant

import (
	"fmt"

	"movi/internal/domain/entities"
)

// SupportPersona is the system instruction of the support chat.
const SupportPersona = "You are Movi Support, a friendly and helpful AI assistant for a taxi booking app. " +
	"Your goal is to assist users with their questions and problems. " +
	"Keep your answers concise, empathetic, and helpful. Do not mention that you are an AI model."

// FarePrompt builds the one-shot fare question.
func FarePrompt(pickup, destination string, vt entities.VehicleType) string {
	return fmt.Sprintf(`You are a taxi fare calculator for an app called "Movi".
A user wants to go from %q to %q.
The chosen vehicle type is %q.
Assuming a distance of ~8 miles and moderate traffic in a major US city, estimate a fare in USD.
Provide ONLY a single number representing the total fare. Do not include currency symbols, explanations, or ranges.
For example: 24.50`, pickup, destination, string(vt))
}
