package model

type Mentor struct {
	ID         string   `json:"id" bson:"_id" validate:"required,uuid4"`
	Name       string   `json:"name" bson:"name" validate:"required,min=1,max=200"`
	Email      string   `json:"email" bson:"email" validate:"required,email"`
	Skills     []string `json:"skills" bson:"skills" validate:"max=50,dive,required,max=50,skill"`
	Experience int      `json:"experience" bson:"experience" validate:"min=0,max=80"`
}

// MentorFilter holds the optional list filters; nil/empty fields do not constrain.
type MentorFilter struct {
	Experience *int     `json:"experience" validate:"omitempty,min=0,max=80"`
	Skills     []string `json:"skills" validate:"max=20,dive,required,max=50,skill"`
}

func (f MentorFilter) IsEmpty() bool {
	return f.Experience == nil && len(f.Skills) == 0
}

// HasSkills reports whether m carries every skill in skills.
func (m *Mentor) HasSkills(skills []string) bool {
	owned := make(map[string]struct{}, len(m.Skills))
	for _, s := range m.Skills {
		owned[s] = struct{}{}
	}
	for _, s := range skills {
		if _, ok := owned[s]; !ok {
			return false
		}
	}
	return true
}
