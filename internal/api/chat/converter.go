package chat

import "github.com/samsontands/RAG/internal/entity"

// toSessionDTO converts Session entity to SessionDTO
func toSessionDTO(session *entity.Session) *entity.SessionDTO {
	return &entity.SessionDTO{
		ID:        session.ID,
		State:     session.State(),
		Working:   session.Working,
		Messages:  session.Messages,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}
