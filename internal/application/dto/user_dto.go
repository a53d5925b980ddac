package dto

// SecurityAnswerDTO pregunta de seguridad y su respuesta.
type SecurityAnswerDTO struct {
	QuestionCode int    `json:"question_code"`
	Question     string `json:"question"`
	Answer       string `json:"answer,omitempty"`
}

// CreateUserRequest entrada para registrar un usuario. ID es la cédula (login).
type CreateUserRequest struct {
	ID         string              `json:"id"`
	Password   string              `json:"password"`
	Role       string              `json:"role"`
	FullName   string              `json:"full_name"`
	BirthDate  string              `json:"birth_date"`
	Phone      string              `json:"phone"`
	Email      string              `json:"email"`
	SecurityQA []SecurityAnswerDTO `json:"security_qa"`
}

// UpdateUserRequest campos modificables; nil = sin cambio.
type UpdateUserRequest struct {
	Password   *string             `json:"password"`
	Role       *string             `json:"role"`
	FullName   *string             `json:"full_name"`
	BirthDate  *string             `json:"birth_date"`
	Phone      *string             `json:"phone"`
	Email      *string             `json:"email"`
	SecurityQA []SecurityAnswerDTO `json:"security_qa"`
}

// UserResponse salida de un usuario (sin password ni respuestas).
type UserResponse struct {
	ID         string              `json:"id"`
	Role       string              `json:"role"`
	FullName   string              `json:"full_name"`
	BirthDate  string              `json:"birth_date"`
	Phone      string              `json:"phone"`
	Email      string              `json:"email"`
	SecurityQA []SecurityAnswerDTO `json:"security_qa"`
}

// UserListResponse listado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
