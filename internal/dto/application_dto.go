package dto

import "github.com/careerboard/careerboard-backend/internal/models"

// RoundInput is a caller-supplied round on application creation. Names and
// statuses are taken verbatim when a non-empty list is provided.
type RoundInput struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type CreateApplicationRequest struct {
	CompanyName string       `json:"company_name"`
	Role        string       `json:"role"`
	Status      string       `json:"status"`
	Notes       string       `json:"notes"`
	Rounds      []RoundInput `json:"rounds"`
}

// UpdateApplicationRequest carries the allow-list of mutable fields. Owner and
// id are deliberately absent; rounds, attachments and documents replace
// wholesale when present.
type UpdateApplicationRequest struct {
	CompanyName *string              `json:"company_name"`
	Role        *string              `json:"role"`
	Status      *string              `json:"status"`
	Notes       *string              `json:"notes"`
	Rounds      *[]models.Round      `json:"rounds"`
	Attachments *[]models.Attachment `json:"attachments"`
	Documents   *[]models.Document   `json:"documents"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type AddRoundRequest struct {
	Name string `json:"name"`
}

type RoundStatusRequest struct {
	Status string `json:"status"`
}

type DeleteApplicationResponse struct {
	Message string `json:"message"`
}
