// Package mailer renders and sends the deal notification emails.
//
// Rendering lives in Mailer; delivery is delegated to a Sender so the same
// messages go out through the Gmail API, SendGrid, or only the log.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/pkordes/smarttravel/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Message is a rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Mailer renders the top-deals and single-deal emails and hands them to a Sender.
type Mailer struct {
	sender      Sender
	frontendURL string
	html        *htmltemplate.Template
	text        *texttemplate.Template
}

var agentIcons = map[string]string{
	"TravelBot Pro": "👑",
	"VoyageAI":      "🏛️",
	"JourneyGenie":  "🏔️",
	"WanderBot":     "💰",
	"ExploreAI":     "✨",
}

func agentIcon(agent string) string {
	if icon, ok := agentIcons[agent]; ok {
		return icon
	}
	return "🤖"
}

func stars(rating int) string {
	rating = max(0, min(5, rating))
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

func money(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}

func savings(d domain.Deal) string {
	return fmt.Sprintf("%.0f", d.SavingsPercent())
}

var funcs = map[string]any{
	"icon":    agentIcon,
	"stars":   stars,
	"money":   money,
	"savings": savings,
	"join":    strings.Join,
	"inc":     func(i int) int { return i + 1 },
}

// New parses the embedded templates. frontendURL is linked from every email.
func New(sender Sender, frontendURL string) (*Mailer, error) {
	html, err := htmltemplate.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("mailer.New: html templates: %w", err)
	}
	text, err := texttemplate.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("mailer.New: text templates: %w", err)
	}
	return &Mailer{
		sender:      sender,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		html:        html,
		text:        text,
	}, nil
}

type topDealsData struct {
	Trip        domain.Trip
	Deals       []domain.Deal
	FrontendURL string
}

type dealData struct {
	Deal        domain.Deal
	FrontendURL string
}

// SendTopDeals emails the ranked deals of a planning run to trip.Email.
func (m *Mailer) SendTopDeals(ctx context.Context, trip domain.Trip, deals []domain.Deal) error {
	msg, err := m.RenderTopDeals(trip, deals)
	if err != nil {
		return fmt.Errorf("mailer.Mailer.SendTopDeals: %w", err)
	}
	if err := m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("mailer.Mailer.SendTopDeals: %w", err)
	}
	return nil
}

// SendDeal emails a single deal to the given address.
func (m *Mailer) SendDeal(ctx context.Context, to string, deal domain.Deal) error {
	msg, err := m.RenderDeal(to, deal)
	if err != nil {
		return fmt.Errorf("mailer.Mailer.SendDeal: %w", err)
	}
	if err := m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("mailer.Mailer.SendDeal: %w", err)
	}
	return nil
}

// RenderTopDeals builds the top-deals message without sending it.
func (m *Mailer) RenderTopDeals(trip domain.Trip, deals []domain.Deal) (Message, error) {
	dest := trip.Destination
	if dest == "" {
		dest = "Your Trip"
	}
	data := topDealsData{Trip: trip, Deals: deals, FrontendURL: m.frontendURL}
	return m.render(trip.Email, fmt.Sprintf("🌟 Your Top %d AI-Curated Travel Deals for %s", len(deals), dest),
		"top_deals", data)
}

// RenderDeal builds the single-deal message without sending it.
func (m *Mailer) RenderDeal(to string, deal domain.Deal) (Message, error) {
	data := dealData{Deal: deal, FrontendURL: m.frontendURL}
	return m.render(to, fmt.Sprintf("🎯 Exclusive Travel Deal: %s from %s", deal.Destination, deal.Agent),
		"deal", data)
}

func (m *Mailer) render(to, subject, name string, data any) (Message, error) {
	var html, text bytes.Buffer
	if err := m.html.ExecuteTemplate(&html, name+".html.tmpl", data); err != nil {
		return Message{}, fmt.Errorf("render %s html: %w", name, err)
	}
	if err := m.text.ExecuteTemplate(&text, name+".txt.tmpl", data); err != nil {
		return Message{}, fmt.Errorf("render %s text: %w", name, err)
	}
	return Message{To: to, Subject: subject, HTML: html.String(), Text: text.String()}, nil
}
