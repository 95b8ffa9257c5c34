package models

// FieldLevel is the per-job requirement policy of one applicant field.
type FieldLevel string

const (
	LevelMandatory FieldLevel = "mandatory"
	LevelOptional  FieldLevel = "optional"
	LevelOff       FieldLevel = "off"
)

// FormField is the key vocabulary used by the job form.
type FormField string

const (
	FormFullName FormField = "fullName"
	FormPhoto    FormField = "photo"
	FormGender   FormField = "gender"
	FormDomicile FormField = "domicile"
	FormEmail    FormField = "email"
	FormPhone    FormField = "phone"
	FormLinkedIn FormField = "linkedin"
	FormDOB      FormField = "dob"
)

// FieldKey is the key vocabulary used in storage and in applicant answers.
type FieldKey string

const (
	FieldPhotoProfile FieldKey = "photo_profile"
	FieldFullName     FieldKey = "full_name"
	FieldEmail        FieldKey = "email"
	FieldPhoneNumber  FieldKey = "phone_number"
	FieldDomicile     FieldKey = "domicile"
	FieldGender       FieldKey = "gender"
	FieldLinkedIn     FieldKey = "linkedin_link"
	FieldDateOfBirth  FieldKey = "date_of_birth"
)

// FormFields lists the form keys in the order the job form renders them.
var FormFields = []FormField{
	FormFullName,
	FormPhoto,
	FormGender,
	FormDomicile,
	FormEmail,
	FormPhone,
	FormLinkedIn,
	FormDOB,
}

// LockedMandatory form fields can never be optional or off.
var LockedMandatory = []FormField{FormFullName, FormPhoto, FormEmail}

// FieldOrder is the canonical display order of answer keys.
var FieldOrder = []FieldKey{
	FieldPhotoProfile,
	FieldFullName,
	FieldEmail,
	FieldPhoneNumber,
	FieldDomicile,
	FieldGender,
	FieldLinkedIn,
	FieldDateOfBirth,
}

// UnorderedField is the order assigned to keys outside FieldOrder.
const UnorderedField = 999

var formToField = map[FormField]FieldKey{
	FormFullName: FieldFullName,
	FormPhoto:    FieldPhotoProfile,
	FormGender:   FieldGender,
	FormDomicile: FieldDomicile,
	FormEmail:    FieldEmail,
	FormPhone:    FieldPhoneNumber,
	FormLinkedIn: FieldLinkedIn,
	FormDOB:      FieldDateOfBirth,
}

var fieldLabels = map[FieldKey]string{
	FieldFullName:     "Full Name",
	FieldEmail:        "Email",
	FieldPhoneNumber:  "Phone",
	FieldDomicile:     "Domicile",
	FieldGender:       "Gender",
	FieldLinkedIn:     "LinkedIn",
	FieldDateOfBirth:  "Date of Birth",
	FieldPhotoProfile: "Photo Profile",
}

// FieldKey translates a form key into its storage key.
func (f FormField) FieldKey() (FieldKey, bool) {
	k, ok := formToField[f]
	return k, ok
}

// IsLocked reports whether the form field is always mandatory.
func (f FormField) IsLocked() bool {
	for _, l := range LockedMandatory {
		if l == f {
			return true
		}
	}
	return false
}

// Known reports whether k is one of the recognised answer keys.
func (k FieldKey) Known() bool {
	_, ok := fieldLabels[k]
	return ok
}

func (k FieldKey) Label() string {
	if l, ok := fieldLabels[k]; ok {
		return l
	}
	return string(k)
}

// Order is the 1-based position in FieldOrder, or UnorderedField.
func (k FieldKey) Order() int {
	for i, o := range FieldOrder {
		if o == k {
			return i + 1
		}
	}
	return UnorderedField
}
