package email

import (
	"context"
	"fmt"
	"net/url"

	"userauth/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

// PasswordResetSender delivers reset links through Amazon SES. An instance
// built from incomplete configuration stays inert: SendToken reports
// user.ErrEmailDeliveryNotConfigured instead of attempting a send.
type PasswordResetSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender   string
	siteName string
	baseURL  *url.URL
}

func NewPasswordResetSender(
	awsConfig aws.Config,
	sender string,
	siteName string,
	baseURL *url.URL,
) *PasswordResetSender {
	return &PasswordResetSender{
		ses:      ses.NewFromConfig(awsConfig),
		sender:   sender,
		siteName: siteName,
		baseURL:  baseURL,
	}
}

func (s *PasswordResetSender) SendToken(
	ctx context.Context,
	u user.User,
	token user.PasswordResetToken,
	subject string,
) error {
	if s.sender == "" || s.siteName == "" || s.baseURL == nil {
		return user.ErrEmailDeliveryNotConfigured
	}

	resetURL := s.baseURL.JoinPath(
		"api", "auth", "reset_password_confirmation",
		user.EncodeUserID(u.ID), string(token),
	).String() + "/"
	html := fmt.Sprintf(
		`<h2>Hi, %s</h2>
<p style="font-size: 12px; color:#333; line-height:1.6;">
You requested a password reset for your %s account.<br>
Please follow the link below to set your new password.<br><br>

<a href="%s" style="background-color:teal;color:#fff;padding:0.5rem 1rem;border-radius:8px;">Reset My Password</a>
</p>`,
		u.Username, s.siteName, resetURL,
	)

	source := fmt.Sprintf("%s <%s>", s.siteName, s.sender)
	email := string(u.Email)
	_, err := s.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: &source,
			Destination: &types.Destination{
				ToAddresses: []string{email},
			},
			Message: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String(charset),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(html),
						Charset: aws.String(charset),
					},
				},
			},
		},
	)
	return err
}
