package utils

import "github.com/google/uuid"

// GenerateID создает уникальный ID для клиентов и сессий
func GenerateID() string {
	return uuid.New().String()
}
