package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailSender delivers mail through the Gmail API as the authorised user.
type GmailSender struct {
	svc  *gmail.Service
	from mail.Address
}

// NewGmailSender builds a Gmail API client. Pass option.WithTokenSource with
// a googleauth token source in production; tests pass option.WithEndpoint and option.WithoutAuthentication.
func NewGmailSender(ctx context.Context, from mail.Address, opts ...option.ClientOption) (*GmailSender, error) {
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("mailer.NewGmailSender: %w", err)
	}
	return &GmailSender{svc: svc, from: from}, nil
}

func (s *GmailSender) Send(ctx context.Context, msg Message) error {
	raw, err := buildMIME(s.from, msg)
	if err != nil {
		return fmt.Errorf("mailer.GmailSender.Send: %w", err)
	}
	_, err = s.svc.Users.Messages.
		Send("me", &gmail.Message{Raw: base64.URLEncoding.EncodeToString(raw)}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("mailer.GmailSender.Send: %w", err)
	}
	return nil
}

// buildMIME encodes msg as an RFC 5322 multipart/alternative message.
func buildMIME(from mail.Address, msg Message) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	parts := []struct{ contentType, content string }{
		{"text/plain; charset=UTF-8", msg.Text},
		{"text/html; charset=UTF-8", msg.HTML},
	}
	for _, p := range parts {
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, err
		}
		qp := quotedprintable.NewWriter(w)
		if _, err := qp.Write([]byte(p.content)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "From: %s\r\n", from.String())
	fmt.Fprintf(&out, "To: %s\r\n", msg.To)
	fmt.Fprintf(&out, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&out, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&out, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mw.Boundary())
	out.Write(body.Bytes())
	return out.Bytes(), nil
}
