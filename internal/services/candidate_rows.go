package services

import (
	"github.com/yoockh/hirea/internal/models"
	"github.com/yoockh/hirea/internal/utils"
)

// ToCandidateRows flattens candidate attributes into table rows.
func ToCandidateRows(list *models.CandidateList) []models.CandidateRow {
	if list == nil {
		return []models.CandidateRow{}
	}
	rows := make([]models.CandidateRow, 0, len(list.Data))
	for _, c := range list.Data {
		attrs := c.Attributes
		rows = append(rows, models.CandidateRow{
			ID:           c.ID,
			Name:         attrValue(attrs, models.FieldFullName),
			Email:        attrValue(attrs, models.FieldEmail),
			Phone:        rowPhone(attrValue(attrs, models.FieldPhoneNumber)),
			Domicile:     attrValue(attrs, models.FieldDomicile),
			Gender:       rowGender(attrValue(attrs, models.FieldGender)),
			LinkedIn:     attrValue(attrs, models.FieldLinkedIn),
			AppliedAt:    c.AppliedAt,
			PhotoProfile: attrValue(attrs, models.FieldPhotoProfile),
		})
	}
	return rows
}

func attrValue(attrs []models.CandidateAttribute, key models.FieldKey) string {
	for _, a := range attrs {
		if a.Key == key {
			if a.Value == nil {
				return ""
			}
			return *a.Value
		}
	}
	return ""
}

// rowPhone renders phones still held as {"country","local"} JSON.
func rowPhone(raw string) string {
	if raw == "" {
		return ""
	}
	if p, ok := utils.PhoneDisplay(raw); ok {
		return p
	}
	return raw
}

func rowGender(raw string) string {
	switch raw {
	case "female":
		return "Female"
	case "male":
		return "Male"
	default:
		return ""
	}
}
