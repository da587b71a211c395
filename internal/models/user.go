package models

import "time"

// User is a registered identity with its credential and profile.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // don’t expose hash
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Company      string    `json:"company"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile holds the mutable attributes of a user.
type Profile struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Company string `json:"company"`
}

// Profile returns the mutable part of u.
func (u User) Profile() Profile {
	return Profile{Name: u.Name, Age: u.Age, Company: u.Company}
}
