package domain

import "errors"

var (
	// ErrInsufficientData is returned when a training batch is empty or degenerate.
	ErrInsufficientData = errors.New("insufficient training data")

	// ErrUntrainedModel is returned when predicting with a model that was never trained.
	ErrUntrainedModel = errors.New("model has not been trained")

	// ErrInvalidImage is returned for empty or undecodable image input.
	ErrInvalidImage = errors.New("invalid image")
)
