package ai

import "context"

// Transcriber describes an AI model capable of reading handwritten student
// responses from an uploaded image and returning the plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, imageURL string) (string, error)
}
