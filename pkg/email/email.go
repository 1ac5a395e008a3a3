// pkg/email/email.go
package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"
)

type EmailService struct {
	apiKey    string
	from      string
	templates *template.Template
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// Template data structures
type WelcomeEmailData struct {
	Name      string
	TrialDays int
}

type TrialEndingData struct {
	Name     string
	DaysLeft int
}

type SubscriptionStartedData struct {
	Name      string
	StartedAt time.Time
}

type SubscriptionCancelledData struct {
	Name   string
	EndsAt *time.Time
}

func NewEmailService(apiKey, from string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      from,
		templates: templates,
	}, nil
}

func (s *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}

	emailData := EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	}

	jsonData, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("resend API error: %s", string(respBody))
	}

	log.Printf("Email sent to %s: %s", to, subject)
	return nil
}

// Email sending methods
func (s *EmailService) SendWelcomeEmail(email, name string, trialDays int) error {
	data := WelcomeEmailData{
		Name:      name,
		TrialDays: trialDays,
	}
	return s.sendTemplateEmail(email, "Welcome to Ghiblify! 🎉", "welcome.html", data)
}

func (s *EmailService) SendTrialEndingEmail(email, name string, daysLeft int) error {
	data := TrialEndingData{
		Name:     name,
		DaysLeft: daysLeft,
	}

	subject := fmt.Sprintf("Your Free Trial Ends in %d Days ⚠️", daysLeft)
	if daysLeft <= 0 {
		subject = "Your Free Trial Has Ended"
	}

	return s.sendTemplateEmail(email, subject, "trial_ending.html", data)
}

func (s *EmailService) SendSubscriptionStartedEmail(email, name string, startedAt time.Time) error {
	data := SubscriptionStartedData{
		Name:      name,
		StartedAt: startedAt,
	}
	return s.sendTemplateEmail(email, "Welcome to Ghiblify Premium! 🎉", "subscription_started.html", data)
}

func (s *EmailService) SendSubscriptionCancelledEmail(email, name string, endsAt *time.Time) error {
	data := SubscriptionCancelledData{
		Name:   name,
		EndsAt: endsAt,
	}
	return s.sendTemplateEmail(email, "Your Subscription Has Been Cancelled", "subscription_cancelled.html", data)
}
