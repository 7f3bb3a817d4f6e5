package campaign

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"whatsapp-campaign/internal/middleware"
	"whatsapp-campaign/internal/models"
	"whatsapp-campaign/internal/templates"
	"whatsapp-campaign/internal/whatsapp"

	"github.com/google/uuid"
)

const (
	SourceCampaign    = "campaign"
	SourceMemberEvent = "member_event"
)

type Sender interface {
	SendTemplate(ctx context.Context, contact string, content whatsapp.Content) (json.RawMessage, error)
}

type TemplateFinder interface {
	FindByID(id string) (*templates.Template, error)
	FindByName(name, language string) (*templates.Template, error)
}

type Recorder interface {
	Record(msg *models.Message) error
}

type Notifier interface {
	NotifyMessage(msg models.Message)
}

// Service sends a template to one or more recipients. Recorder and Notifier
// are optional.
type Service struct {
	Sender    Sender
	Templates TemplateFinder
	Recorder  Recorder
	Notifier  Notifier
}

func NewService(sender Sender, finder TemplateFinder, recorder Recorder, notifier Notifier) *Service {
	return &Service{
		Sender:    sender,
		Templates: finder,
		Recorder:  recorder,
		Notifier:  notifier,
	}
}

// Request is a campaign send from the campaign form.
type Request struct {
	TemplateID   string            `json:"template_id"`
	TemplateName string            `json:"template_name"`
	Language     string            `json:"language"`
	Variables    map[string]string `json:"variables"`
	Recipients   Recipients        `json:"recipients"`
}

type Result struct {
	CampaignID string            `json:"campaign_id"`
	Template   string            `json:"template"`
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Sent       int               `json:"sent"`
	Failed     int               `json:"failed"`
	Recipients []RecipientResult `json:"recipients"`
}

type RecipientResult struct {
	Contact  string          `json:"contact"`
	Success  bool            `json:"success"`
	Response json.RawMessage `json:"response,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Send validates req, formats the template once and sends it to every
// recipient in order. Provider failures are reported per recipient; only
// validation and template lookup fail the whole call.
func (s *Service) Send(ctx context.Context, req Request) (*Result, error) {
	if req.TemplateID == "" && req.TemplateName == "" {
		return nil, &ValidationError{Message: MsgNoTemplate}
	}

	recipients := []string(req.Recipients)
	if err := ValidateRecipients(recipients); err != nil {
		return nil, err
	}

	tmpl, err := s.findTemplate(req.TemplateID, req.TemplateName, req.Language)
	if err != nil {
		return nil, err
	}

	content, err := templates.BuildContent(tmpl, templates.Variables(req.Variables))
	if err != nil {
		return nil, err
	}

	return s.deliver(ctx, SourceCampaign, content, recipients), nil
}

// SendMemberEvent sends the event's template to the member's phone number.
func (s *Service) SendMemberEvent(ctx context.Context, evt templates.MemberEvent) (*Result, error) {
	if strings.TrimSpace(evt.TemplateName) == "" {
		return nil, &ValidationError{Message: MsgNoTemplate}
	}

	recipients := ParseRecipients(evt.Membership.PhoneNumber)
	if err := ValidateRecipients(recipients); err != nil {
		return nil, err
	}

	tmpl, err := s.Templates.FindByName(evt.TemplateName, evt.Language)
	if err != nil {
		return nil, err
	}

	content, err := templates.BuildContent(tmpl, evt)
	if err != nil {
		return nil, err
	}

	return s.deliver(ctx, SourceMemberEvent, content, recipients[:1]), nil
}

func (s *Service) findTemplate(id, name, language string) (*templates.Template, error) {
	if id != "" {
		return s.Templates.FindByID(id)
	}
	return s.Templates.FindByName(name, language)
}

func (s *Service) deliver(ctx context.Context, source string, content whatsapp.Content, recipients []string) *Result {
	result := &Result{
		CampaignID: uuid.NewString(),
		Template:   content.Name,
		Recipients: make([]RecipientResult, 0, len(recipients)),
	}

	for _, contact := range recipients {
		rr := RecipientResult{Contact: contact}

		resp, err := s.Sender.SendTemplate(ctx, contact, content)
		if err != nil {
			log.Printf("Failed to send %s to %s: %v", content.Name, contact, err)
			rr.Error = "failed to send"
			result.Failed++
		} else {
			rr.Success = true
			rr.Response = resp
			result.Sent++
		}
		middleware.RecordSend(source, rr.Success)

		s.record(result.CampaignID, source, contact, content, resp, err)
		result.Recipients = append(result.Recipients, rr)
	}

	result.Success = result.Failed == 0
	result.Message = summarize(result, recipients)
	return result
}

func (s *Service) record(campaignID, source, contact string, content whatsapp.Content, resp json.RawMessage, sendErr error) {
	msg := models.Message{
		CampaignID:   campaignID,
		Recipient:    contact,
		TemplateName: content.Name,
		Language:     content.Language.Code,
		Source:       source,
		Status:       models.StatusSent,
		Response:     string(resp),
	}
	if payload, err := json.Marshal(whatsapp.Message{
		Recipient: whatsapp.Recipient{Contact: contact, Channel: whatsapp.ChannelWhatsApp},
		Content:   content,
	}); err == nil {
		msg.Payload = string(payload)
	}
	if sendErr != nil {
		msg.Status = models.StatusFailed
		msg.ErrorMessage = sendErr.Error()
	}

	if s.Recorder != nil {
		if err := s.Recorder.Record(&msg); err != nil {
			log.Printf("Error recording message to %s: %v", contact, err)
		}
	}
	if s.Notifier != nil {
		s.Notifier.NotifyMessage(msg)
	}
}

func summarize(result *Result, recipients []string) string {
	switch {
	case result.Failed == 0 && len(recipients) == 1:
		return fmt.Sprintf("Successfully sent message to %s", recipients[0])
	case result.Failed == 0:
		return fmt.Sprintf("Successfully sent message to %d recipients", result.Sent)
	case result.Sent == 0:
		return "Failed to send message. Please try again."
	default:
		return fmt.Sprintf("Sent to %d of %d recipients", result.Sent, len(recipients))
	}
}
