// Package models lists the models an OpenAI-compatible endpoint offers,
// to help users fill in the model name in the settings.
package models
