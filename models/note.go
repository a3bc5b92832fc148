package models

// Note is a record of the "notes" collection. ID is zero until persisted.
type Note struct {
	ID      int64  `json:"id,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Color   string `json:"color"`
}

// NotePatch holds the fields of a partial update. Nil fields are left untouched.
type NotePatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Color   *string `json:"color,omitempty"`
}

func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Color == nil
}

func (p NotePatch) Apply(n Note) Note {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	return n
}

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"max=20000"`
	Color   string `json:"color" validate:"max=50"`
}

func (r CreateNoteRequest) Note() Note {
	return Note{
		Title:   r.Title,
		Content: r.Content,
		Color:   r.Color,
	}
}

type UpdateNoteRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content,omitempty" validate:"omitempty,max=20000"`
	Color   *string `json:"color,omitempty" validate:"omitempty,max=50"`
}

func (r UpdateNoteRequest) Patch() NotePatch {
	return NotePatch{
		Title:   r.Title,
		Content: r.Content,
		Color:   r.Color,
	}
}
