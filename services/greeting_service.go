// services/greeting_service.go
package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"glowloop-backend/models"
	"glowloop-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// GreetingService sends birthday greetings to clients on behalf of each
// professional and keeps an audit log of every attempt.
type GreetingService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewGreetingService(db *gorm.DB) *GreetingService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &GreetingService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// StartScheduler registers the daily 9 AM greeting run.
func (s *GreetingService) StartScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("0 9 * * *", s.SendDailyGreetings); err != nil {
		log.Error().Err(err).Msg("Failed to schedule greeting job")
		return
	}

	c.Start()
	log.Info().Msg("Greeting scheduler started")
}

func (s *GreetingService) SendDailyGreetings() {
	log.Info().Msg("Starting daily greeting processing")

	var users []models.User
	if err := s.db.Find(&users, "is_active = ?", true).Error; err != nil {
		log.Error().Err(err).Msg("Failed to fetch users")
		return
	}

	for _, user := range users {
		s.processUserGreetings(user)
	}

	log.Info().Msg("Daily greeting processing completed")
}

func (s *GreetingService) processUserGreetings(user models.User) {
	clients, err := s.birthdayClientsToday(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to get birthday clients")
		return
	}

	for _, client := range clients {
		if client.Phone == "" {
			continue
		}
		s.sendGreeting(user, client)
	}
}

// birthdayClientsToday returns the user's clients whose birthday month/day is
// today. Year is irrelevant, so matching happens in-process.
func (s *GreetingService) birthdayClientsToday(userID uuid.UUID) ([]models.Client, error) {
	var clients []models.Client
	err := s.db.Where("user_id = ? AND birthday IS NOT NULL", userID).Find(&clients).Error
	if err != nil {
		return nil, err
	}

	now := utils.BeginningOfDay(time.Now())
	matched := clients[:0]
	for _, client := range clients {
		if utils.IsBirthdayToday(*client.Birthday, now) {
			matched = append(matched, client)
		}
	}
	return matched, nil
}

func (s *GreetingService) sendGreeting(user models.User, client models.Client) {
	business := user.BusinessName
	if business == "" {
		business = user.Name
	}
	message := fmt.Sprintf("Oi %s, %s te deseja um feliz aniversário! 🎉", client.Name, business)

	// WhatsApp when the phone is in E.164 format, SMS otherwise
	channel := "sms"
	to := client.Phone
	if strings.HasPrefix(client.Phone, "+") {
		to = "whatsapp:" + client.Phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Error().Err(err).Str("phone", client.Phone).Msg("Failed to send greeting")
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Info().Str("phone", client.Phone).Str("sid", *resp.Sid).Msg("Greeting sent")
	} else {
		log.Info().Str("phone", client.Phone).Msg("Greeting sent, no SID returned")
	}

	greetingLog := models.GreetingLog{
		UserID:       user.ID,
		ClientID:     client.ID,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&greetingLog).Error; err != nil {
		log.Error().Err(err).Str("client_id", client.ID.String()).Msg("Failed to log greeting")
	}
}
