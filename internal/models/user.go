package models

// Goals are the four daily nutrition targets.
type Goals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type Profile struct {
	Name  string         `json:"name,omitempty"`
	Age   int            `json:"age,omitempty"`
	Goals Goals          `json:"macros"`
	Extra map[string]any `json:"extra,omitempty"` // open extension fields
}

type User struct {
	ID      string  `json:"id"`
	Email   string  `json:"email"`
	Plan    string  `json:"subscription_plan,omitempty"`
	Profile Profile `json:"profile"`
}

// IsZero reports whether no user is set.
func (u User) IsZero() bool {
	return u.ID == "" && u.Email == ""
}
