package lib

import (
	"context"
	"log"

	"decor/src/config"

	"github.com/wneessen/go-mail"
)

func GetSMTPClient(cfg *config.Config) (*mail.Client, error) {
	c, err := mail.NewClient(
		cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
	)
	if err != nil {
		log.Printf("Could not initialize smtp client: %s\n", err.Error())
		return nil, err
	}
	return c, nil
}

type SendMailInput struct {
	From        string
	FromName    string
	To          []string
	Subject     string
	Body        string
	Html        bool
	Attachments []string
}

func SendMail(ctx context.Context, cfg *config.Config, inputParams *SendMailInput) error {
	c, err := GetSMTPClient(cfg)
	if err != nil {
		return err
	}
	msg := mail.NewMsg()
	if err := msg.FromFormat(inputParams.FromName, inputParams.From); err != nil {
		log.Printf("Failed to set From address: %s\n", err.Error())
	}
	if err := msg.To(inputParams.To...); err != nil {
		log.Printf("Failed to set To address: %s\n", err.Error())
	}
	msg.Subject(inputParams.Subject)
	if inputParams.Html {
		msg.SetBodyString(mail.TypeTextHTML, inputParams.Body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, inputParams.Body)
	}
	for _, file := range inputParams.Attachments {
		msg.AttachFile(file)
	}
	if err := c.DialAndSendWithContext(ctx, msg); err != nil {
		return err
	}
	return nil
}
