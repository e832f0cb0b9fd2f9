package forms

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

func CleanLogin(in LoginInput) (FieldErrors, error) {
	return fromValidation(Validator().Struct(in), nil)
}
