// Package domain holds prompt types, DTOs and slug generation
package domain

import "time"

// Prompt is a stored prompt document
type Prompt struct {
	ID        int64
	Name      string
	Slug      string
	Content   string
	Folder    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Version is one immutable revision of a prompt's content
type Version struct {
	ID        int64
	PromptID  int64
	Version   int
	Content   string
	CreatedAt time.Time
}
