package config

// ServiceAccount holds essential fields from a Firebase service account JSON key.
type ServiceAccount struct {
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
}
