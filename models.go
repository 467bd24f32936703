package main

type Card struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// cardInput is the request body of create and update calls.
type cardInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// catalogue is the seed document, read from YAML files or S3 objects.
type catalogue struct {
	Cards []Card `json:"cards" yaml:"cards"`
}
