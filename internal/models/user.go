package models

import "time"

// User is a FocusNow account row (table usuarios).
type User struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	SenhaHash string    `json:"-"`
	Objetivo  string    `json:"objetivo,omitempty"`
	Nivel     int       `json:"nivel"`
	XP        int       `json:"xp"`
	CriadoEm  time.Time `json:"criado_em"`
}

// PublicUser is the shape returned by auth and profile endpoints.
type PublicUser struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Objetivo string `json:"objetivo,omitempty"`
	Nivel    int    `json:"nivel"`
	XP       int    `json:"xp"`
}

// Public strips the credential fields.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Nome:     u.Nome,
		Email:    u.Email,
		Objetivo: u.Objetivo,
		Nivel:    u.Nivel,
		XP:       u.XP,
	}
}
