package filestore

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-archivo/internal/domain"
	"github.com/jhoicas/tienda-archivo/internal/domain/entity"
	"github.com/jhoicas/tienda-archivo/internal/domain/repository"
)

var _ repository.UserRepository = (*UserStore)(nil)

const (
	usersDir      = "usuarios"
	usersBaseName = "all_users"
)

// Columnas de all_users.txt:
// [id:10][password:20][role:15][fullName:50][birthDate:10][phone:10][email:40][securityQA:200]
var userWidths = []int{10, 20, 15, 50, 10, 10, 40, 200}

// UserStore colección de usuarios en usuarios/all_users.{dat,txt}. La llave es User.ID.
type UserStore struct {
	coll *collectionStore[entity.User, string]
}

// NewUserStore construye el store y crea <base>/usuarios si no existe.
func NewUserStore(opts Options) (*UserStore, error) {
	coll, err := newCollectionStore[entity.User, string](opts, usersDir, usersBaseName, userFormat{})
	if err != nil {
		return nil, err
	}
	return &UserStore{coll: coll}, nil
}

// Create agrega el usuario. Devuelve domain.ErrDuplicate si la cédula ya existe.
func (s *UserStore) Create(user *entity.User) error {
	return s.coll.create(user)
}

// GetByID devuelve (nil, nil) si no existe.
func (s *UserStore) GetByID(id string) (*entity.User, error) {
	return s.coll.find(id), nil
}

// Update reemplaza el usuario con la misma cédula. Si no existe no hace nada.
func (s *UserStore) Update(user *entity.User) error {
	return s.coll.update(user)
}

// Delete elimina el usuario. Una cédula inexistente no es error.
func (s *UserStore) Delete(id string) error {
	return s.coll.delete(id)
}

// ListAll devuelve todos los usuarios.
func (s *UserStore) ListAll() ([]*entity.User, error) {
	return s.coll.listAll(), nil
}

type securityAnswerDoc struct {
	QuestionCode int    `bson:"question_code"`
	Question     string `bson:"question"`
	Answer       string `bson:"answer"`
}

type userDoc struct {
	ID         string              `bson:"id"`
	Password   string              `bson:"password"`
	Role       string              `bson:"role"`
	FullName   string              `bson:"full_name"`
	BirthDate  string              `bson:"birth_date"`
	Phone      string              `bson:"phone"`
	Email      string              `bson:"email"`
	SecurityQA []securityAnswerDoc `bson:"security_qa"`
}

type userSnapshot struct {
	Header snapshotHeader `bson:",inline"`
	Users  []userDoc      `bson:"users"`
}

type userFormat struct{}

func (userFormat) key(u *entity.User) string { return u.ID }

func (userFormat) validate(u *entity.User) error {
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("%w: cédula vacía", domain.ErrInvalidInput)
	}
	return nil
}

// assignKey: la cédula la pone quien llama.
func (userFormat) assignKey([]*entity.User, *entity.User) {}

func (userFormat) encodeBinary(users []*entity.User) ([]byte, error) {
	snap := userSnapshot{Header: newHeader(kindUsers), Users: make([]userDoc, 0, len(users))}
	for _, u := range users {
		doc := userDoc{
			ID:         u.ID,
			Password:   u.Password,
			Role:       u.Role.String(),
			FullName:   u.FullName,
			BirthDate:  u.BirthDate,
			Phone:      u.Phone,
			Email:      u.Email,
			SecurityQA: make([]securityAnswerDoc, 0, len(u.SecurityQA)),
		}
		for _, qa := range u.SecurityQA {
			doc.SecurityQA = append(doc.SecurityQA, securityAnswerDoc{
				QuestionCode: qa.Question.Code,
				Question:     qa.Question.Text,
				Answer:       qa.Answer,
			})
		}
		snap.Users = append(snap.Users, doc)
	}
	return encodeSnapshot(snap)
}

func (userFormat) decodeBinary(data []byte) ([]*entity.User, error) {
	var snap userSnapshot
	if err := decodeSnapshot(data, kindUsers, &snap); err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(snap.Users))
	for _, doc := range snap.Users {
		u := &entity.User{
			ID:         doc.ID,
			Password:   doc.Password,
			Role:       entity.ParseRole(doc.Role),
			FullName:   doc.FullName,
			BirthDate:  doc.BirthDate,
			Phone:      doc.Phone,
			Email:      doc.Email,
			SecurityQA: make([]entity.SecurityAnswer, 0, len(doc.SecurityQA)),
		}
		for _, qa := range doc.SecurityQA {
			u.SecurityQA = append(u.SecurityQA, entity.SecurityAnswer{
				Question: entity.SecurityQuestion{Code: qa.QuestionCode, Text: qa.Question},
				Answer:   qa.Answer,
			})
		}
		out = append(out, u)
	}
	return out, nil
}

func (userFormat) encodeText(users []*entity.User) string {
	var sb strings.Builder
	for _, u := range users {
		pairs := make([]Pair, 0, len(u.SecurityQA))
		for _, qa := range u.SecurityQA {
			pairs = append(pairs, Pair{First: qa.Question.Text, Second: qa.Answer})
		}
		values := []string{u.ID, u.Password, u.Role.String(), u.FullName, u.BirthDate, u.Phone, u.Email, EncodePairs(pairs)}
		for i, v := range values {
			sb.WriteString(PadField(v, userWidths[i]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// decodeText reconstruye un usuario por línea. Las preguntas quedan con UnknownQuestionCode.
func (userFormat) decodeText(text string, log zerolog.Logger) []*entity.User {
	var out []*entity.User
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		u, err := parseUserLine(line, log)
		if err != nil {
			log.Warn().Err(err).Int("line", i+1).Msg("línea de usuario inválida, se descarta")
			continue
		}
		out = append(out, u)
	}
	return out
}

func parseUserLine(line string, log zerolog.Logger) (*entity.User, error) {
	cols := SliceFields(line, userWidths...)
	if cols[0] == "" {
		return nil, fmt.Errorf("cédula vacía")
	}
	u := &entity.User{
		ID:         cols[0],
		Password:   cols[1],
		Role:       entity.ParseRole(cols[2]),
		FullName:   cols[3],
		BirthDate:  cols[4],
		Phone:      cols[5],
		Email:      cols[6],
		SecurityQA: []entity.SecurityAnswer{},
	}
	for _, p := range DecodePairs(cols[7], log) {
		u.SecurityQA = append(u.SecurityQA, entity.SecurityAnswer{
			Question: entity.SecurityQuestion{Code: entity.UnknownQuestionCode, Text: p.First},
			Answer:   p.Second,
		})
	}
	return u, nil
}
