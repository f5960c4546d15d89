package http

import (
	"github.com/waza/waitlist-api/internal/infrastructure/dynamo"
	"github.com/waza/waitlist-api/internal/infrastructure/smtp"
	"github.com/waza/waitlist-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	CodeRepo       *dynamo.CodeRepo
	TokenRepo      *dynamo.TokenRepo
	SubmissionRepo *dynamo.SubmissionRepo
	AdminTokenRepo *dynamo.AdminTokenRepo
	Mailer         smtp.Mailer
	Notifier       sns.Notifier // nil disables ops notifications
}
