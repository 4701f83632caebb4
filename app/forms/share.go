package forms

// EmailPost is submitted to recommend a post to someone by email.
type EmailPost struct {
	Name    string `form:"name" json:"name" validate:"required,max=25"`
	Email   string `form:"email" json:"email" validate:"required,email"`
	To      string `form:"to" json:"to" validate:"required,email"`
	Comment string `form:"comment" json:"comment"`
}

// Clean strips markup from the name and comment and trims both addresses.
func (f *EmailPost) Clean() {
	f.Name = cleanText(f.Name)
	f.Email = cleanLine(f.Email)
	f.To = cleanLine(f.To)
	f.Comment = cleanText(f.Comment)
}
