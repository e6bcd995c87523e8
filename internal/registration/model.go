package registration

import "time"

// Record is one stored registration with its server-assigned metadata.
type Record struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	MobileNumber string    `json:"mobile_number"`
	Email        string    `json:"email"`
	Gender       string    `json:"gender"`
	Department   string    `json:"department"`
	Address      string    `json:"address"`
	PhotoURL     string    `json:"photo_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Submission carries the six user-supplied fields of a registration.
type Submission struct {
	FullName     string `form:"full_name" json:"full_name"`
	MobileNumber string `form:"mobile_number" json:"mobile_number"`
	Email        string `form:"email" json:"email"`
	Gender       string `form:"gender" json:"gender"`
	Department   string `form:"department" json:"department"`
	Address      string `form:"address" json:"address"`
}

// Genders is the fixed gender enumeration.
var Genders = []string{"male", "female", "other"}

// Departments is the fixed department list. "Other" is the catch-all
// and stays last.
var Departments = []string{
	"Computer Science",
	"Information Technology",
	"Electronics",
	"Mechanical",
	"Civil",
	"Electrical",
	"Chemical",
	"Biotechnology",
	"Business Administration",
	"Other",
}
