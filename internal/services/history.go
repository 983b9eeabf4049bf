package services

import "shoepao-backend/internal/models"

// AssembleHistory maps a persisted conversation history (ascending by
// creation time) into the role/content pairs a completion request wants.
// If the history does not open with a system message, the default Shoepao
// prompt is prepended. Pure function; never touches storage.
func AssembleHistory(history []*models.Message) []models.ChatMessage {
	assembled := make([]models.ChatMessage, 0, len(history)+1)

	if len(history) == 0 || history[0].Role != models.RoleSystem {
		assembled = append(assembled, models.ChatMessage{
			Role:    models.RoleSystem,
			Content: DefaultSystemPrompt,
		})
	}

	for _, m := range history {
		assembled = append(assembled, models.ChatMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	return assembled
}
