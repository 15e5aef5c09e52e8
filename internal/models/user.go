package models

// User is a back-office account authenticated over JWT.
type User struct {
	BaseModel
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `gorm:"uniqueIndex" json:"phone"`
	DisplayName  string `json:"display_name"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}
