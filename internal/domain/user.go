package domain

import "time"

type UserRole string

const (
	RoleRenter UserRole = "renter"
	RoleOwner  UserRole = "owner"
	RoleAdmin  UserRole = "admin"
)

type VerificationStatus string

const (
	VerificationNone     VerificationStatus = "none"
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

type User struct {
	ID                 int64              `json:"id"`
	Email              string             `json:"email" validate:"required,email"`
	PasswordHash       string             `json:"-"`
	Role               UserRole           `json:"role"`
	Name               string             `json:"name"`
	Phone              string             `json:"phone,omitempty"`
	VerificationStatus VerificationStatus `json:"verification_status,omitempty"`
	IDDocumentType     string             `json:"-"`
	IDDocumentNumber   string             `json:"-"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}
