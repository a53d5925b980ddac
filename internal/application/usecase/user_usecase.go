package usecase

import (
	"strings"

	"github.com/jhoicas/tienda-archivo/internal/application/dto"
	"github.com/jhoicas/tienda-archivo/internal/domain"
	"github.com/jhoicas/tienda-archivo/internal/domain/entity"
	"github.com/jhoicas/tienda-archivo/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Register crea un usuario. La cédula no puede repetirse.
func (uc *UserUseCase) Register(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" || in.Password == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	user := &entity.User{
		ID:         id,
		Password:   in.Password,
		Role:       entity.ParseRole(in.Role),
		FullName:   strings.TrimSpace(in.FullName),
		BirthDate:  in.BirthDate,
		Phone:      in.Phone,
		Email:      in.Email,
		SecurityQA: toSecurityAnswers(in.SecurityQA),
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario por cédula; (nil, nil) si no existe.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}
	page := paginate(list, limit, offset)
	items := make([]dto.UserResponse, 0, len(page))
	for _, u := range page {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(list)},
	}, nil
}

// Update reemplaza el registro del usuario con los campos indicados. (nil, nil) si no existe.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Password = *in.Password
	}
	if in.Role != nil {
		user.Role = entity.ParseRole(*in.Role)
	}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		user.FullName = name
	}
	if in.BirthDate != nil {
		user.BirthDate = *in.BirthDate
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.SecurityQA != nil {
		user.SecurityQA = toSecurityAnswers(in.SecurityQA)
	}
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete elimina un usuario. domain.ErrUserNotFound si no existe.
// Los carritos que lo referencian quedan intactos.
func (uc *UserUseCase) Delete(id string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.repo.Delete(id)
}

func toSecurityAnswers(in []dto.SecurityAnswerDTO) []entity.SecurityAnswer {
	out := make([]entity.SecurityAnswer, 0, len(in))
	for _, qa := range in {
		out = append(out, entity.SecurityAnswer{
			Question: entity.SecurityQuestion{Code: qa.QuestionCode, Text: qa.Question},
			Answer:   qa.Answer,
		})
	}
	return out
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	qa := make([]dto.SecurityAnswerDTO, 0, len(u.SecurityQA))
	for _, a := range u.SecurityQA {
		qa = append(qa, dto.SecurityAnswerDTO{QuestionCode: a.Question.Code, Question: a.Question.Text})
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Role:       u.Role.String(),
		FullName:   u.FullName,
		BirthDate:  u.BirthDate,
		Phone:      u.Phone,
		Email:      u.Email,
		SecurityQA: qa,
	}
}
