package domain

// CreateInput creates a prompt; the slug derives from the name
type CreateInput struct {
	Name    string `json:"name" validate:"required,min=1,max=200" example:"Weekly report"`
	Content string `json:"content" validate:"required" example:"Summarize the week in five bullets"`
	Folder  string `json:"folder,omitempty" validate:"omitempty,max=100" example:"reports"`
}

// UpdateInput patches a prompt; empty fields are left untouched
type UpdateInput struct {
	Name    string `json:"name,omitempty" validate:"omitempty,min=1,max=200" example:"Weekly report v2"`
	Content string `json:"content,omitempty" example:"Summarize the week in three bullets"`
	Folder  string `json:"folder,omitempty" validate:"omitempty,max=100" example:"reports"`
}

// ListQuery filters the prompt listing
type ListQuery struct {
	Folder string
	Search string
}

// PromptOut is the wire shape of a prompt
type PromptOut struct {
	ID        int64  `json:"id" example:"7"`
	Name      string `json:"name" example:"Weekly report"`
	Slug      string `json:"slug" example:"weekly-report"`
	Content   string `json:"content" example:"Summarize the week in five bullets"`
	Folder    string `json:"folder,omitempty" example:"reports"`
	CreatedAt string `json:"created_at" example:"2026-08-01T12:00:00Z"`
	UpdatedAt string `json:"updated_at" example:"2026-08-15T12:00:00Z"`
}

// VersionOut is the wire shape of a prompt version
type VersionOut struct {
	ID        int64  `json:"id" example:"31"`
	PromptID  int64  `json:"prompt_id" example:"7"`
	Version   int    `json:"version" example:"3"`
	Content   string `json:"content" example:"Summarize the week in three bullets"`
	CreatedAt string `json:"created_at" example:"2026-08-15T12:00:00Z"`
}

const timeWire = "2006-01-02T15:04:05Z07:00"

// Out projects a prompt onto its wire shape
func Out(p Prompt) PromptOut {
	return PromptOut{
		ID:        p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		Content:   p.Content,
		Folder:    p.Folder,
		CreatedAt: p.CreatedAt.UTC().Format(timeWire),
		UpdatedAt: p.UpdatedAt.UTC().Format(timeWire),
	}
}

// VersionView projects a version onto its wire shape
func VersionView(v Version) VersionOut {
	return VersionOut{
		ID:        v.ID,
		PromptID:  v.PromptID,
		Version:   v.Version,
		Content:   v.Content,
		CreatedAt: v.CreatedAt.UTC().Format(timeWire),
	}
}
