package session

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Session carries the identity of the logged-in user: who the records
// belong to and the token the remote service expects.
type Session struct {
	UserID   string
	APIToken string
}

// Load reads the session from the environment. A .env file in the working
// directory is picked up when present, same as the DB credentials.
func Load() (*Session, error) {
	_ = godotenv.Load()

	userID := os.Getenv("BULKUP_USER_ID")
	if userID == "" {
		return nil, fmt.Errorf("BULKUP_USER_ID not set in the environment")
	}

	return &Session{
		UserID:   userID,
		APIToken: os.Getenv("BULKUP_API_TOKEN"),
	}, nil
}
