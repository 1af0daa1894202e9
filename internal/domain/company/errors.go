package company

import "errors"

var (
	ErrCompanyNotFound   = errors.New("company not found")
	ErrCompanyNameExists = errors.New("company name already exists")
	ErrNoPrimaryCompany  = errors.New("no company record has been created yet")
)
