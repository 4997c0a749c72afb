package smtp

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Client is a mail client sending through a gomail dialer.
type Client struct {
	dial   func() (gomail.SendCloser, error)
	from   string
	domain string
}

// NewClient creates a Client. from is the sender address, domain is used in
// the Message-ID header.
func NewClient(dialer *gomail.Dialer, from, domain string) *Client {
	return &Client{
		dial:   dialer.Dial,
		from:   from,
		domain: domain,
	}
}

// Attachment is a file attached to a mail.
type Attachment struct {
	Filename string
	Data     *bytes.Buffer
}

// Message builds the mail without sending it.
func (c *Client) Message(to, subject, body string, attachment *Attachment) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", generateMessageID(c.domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	if attachment != nil && attachment.Data != nil {
		data := attachment.Data.Bytes()
		msg.Attach(attachment.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}
	return msg
}

// SendReport mails a report with an optional attachment.
func (c *Client) SendReport(to, subject, body string, attachment *Attachment) error {
	sender, err := c.dial()
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer sender.Close()

	if err = gomail.Send(sender, c.Message(to, subject, body, attachment)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func generateMessageID(domain string) string {
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}
