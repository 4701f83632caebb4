package forms

import "blog/app/models"

// Comment is submitted to add a comment to a post.
type Comment struct {
	Name  string `form:"name" json:"name" validate:"required,max=80"`
	Email string `form:"email" json:"email" validate:"required,email"`
	Body  string `form:"body" json:"body" validate:"required"`
}

// Clean strips markup from the name and body and trims the email.
func (f *Comment) Clean() {
	f.Name = cleanText(f.Name)
	f.Email = cleanLine(f.Email)
	f.Body = cleanText(f.Body)
}

// Model builds an unsaved, active comment from the cleaned values.
func (f Comment) Model() *models.Comment {
	return models.NewComment(f.Name, f.Email, f.Body)
}
