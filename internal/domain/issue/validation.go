package issue

// ValidateCreateInput checks the fields every new issue must carry.
func ValidateCreateInput(req CreateRequest) error {
	if req.Title == "" || req.Text == "" || req.CreatedBy == "" {
		return ErrMissingRequired
	}
	return nil
}
