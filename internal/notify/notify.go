// Package notify is the fire-and-forget notification sink: notifications
// land in the DB for the clients' polling loop, plus a best-effort email
// per recipient. Failures are logged and never returned, so a broken mail
// provider cannot block a pipeline operation.
package notify

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"

	"robfu/internal/database"
	"robfu/internal/models"
)

type Service struct {
	mail   *resend.Client // nil when no API key is configured
	sender string
}

func NewService(apiKey, sender string) *Service {
	s := &Service{sender: sender}
	if apiKey != "" {
		s.mail = resend.NewClient(apiKey)
	}
	return s
}

// Notify records a notification for each user and emails them.
func (s *Service) Notify(userIDs []string, projectID, message string) {
	for _, uid := range userIDs {
		n := models.Notification{
			NotificationID: uuid.NewString(),
			UserID:         uid,
			ProjectID:      projectID,
			Message:        message,
		}
		if err := database.DB.Create(&n).Error; err != nil {
			log.Printf("failed to store notification for %s: %v", uid, err)
			continue
		}
		s.sendEmail(uid, message)
	}
}

// NotifyRole notifies every active user holding the given role.
func (s *Service) NotifyRole(role models.UserRole, projectID, message string) {
	var users []models.User
	if err := database.DB.Where("role = ? AND active = ?", role, true).Find(&users).Error; err != nil {
		log.Printf("failed to list %s users for notification: %v", role, err)
		return
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.UserID)
	}
	s.Notify(ids, projectID, message)
}

func (s *Service) sendEmail(userID, message string) {
	if s.mail == nil {
		return
	}

	var user models.User
	if err := database.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		log.Printf("failed to load user %s for email: %v", userID, err)
		return
	}

	_, err := s.mail.Emails.Send(&resend.SendEmailRequest{
		From:    s.sender,
		To:      []string{user.Email},
		Subject: "New notification - Robfu",
		Html:    fmt.Sprintf("<h2>New notification</h2><p>%s</p>", message),
	})
	if err != nil {
		log.Printf("failed to send email to %s: %v", user.Email, err)
		return
	}
	log.Printf("email sent to %s", user.Email)
}
