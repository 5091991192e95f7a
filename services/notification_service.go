package services

import (
	"errors"
	"fiber-tms/config"
	"fiber-tms/models"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// NotificationService delivers driver notifications over SMTP. Delivery is
// best effort: failures are logged and never bubble up into the operation
// that triggered them.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// SendToDriver notifies one driver. Call it with `go` after the triggering
// transaction committed; it must never run inside the transaction.
func (s *NotificationService) SendToDriver(driverID uint, title, body string, payload map[string]string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notification to driver %d panicked: %v", driverID, r)
		}
	}()

	if !config.NotifyEnable {
		log.Printf("notification skipped (disabled): driver %d, %s", driverID, title)
		return
	}

	var driver models.Driver
	if err := s.DB.First(&driver, driverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("notification dropped: driver %d not found", driverID)
			return
		}
		log.Printf("notification lookup failed for driver %d: %v", driverID, err)
		return
	}
	if driver.Email == "" {
		log.Printf("notification dropped: driver %s has no email", driver.DriverName)
		return
	}

	content := body
	for key, value := range payload {
		content += fmt.Sprintf("<br>%s: %s", key, value)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", driver.Email)
	msg.SetHeader("Subject", title)
	msg.SetBody("text/html", content)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Printf("notification to driver %s failed: %v", driver.DriverName, err)
		return
	}

	log.Printf("notification sent to driver %s: %s", driver.DriverName, title)
}
