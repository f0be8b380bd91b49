package validator

import "pizzeria/internal/usecase"

type profileValidator struct{}

func NewProfileValidator() usecase.ProfileValidator {
	return &profileValidator{}
}

// Same name, phone and address rules as checkout; both names are required.
func (v *profileValidator) ValidateProfile(in usecase.ProfileInput) (usecase.ProfileFields, error) {
	var errs ValidationErrors
	var out usecase.ProfileFields
	var err error

	out.FirstName, err = CleanName(in.FirstName)
	errs.add("first_name", err)

	out.LastName, err = CleanName(in.LastName)
	errs.add("last_name", err)

	out.PhoneNumber, err = CleanPhone(in.PhoneNumber)
	errs.add("phone_number", err)

	out.Email, err = CleanEmail(in.Email)
	errs.add("email", err)

	out.Address, err = CleanAddress(in.Address)
	errs.add("address", err)

	if err := errs.orNil(); err != nil {
		return usecase.ProfileFields{}, err
	}
	return out, nil
}
