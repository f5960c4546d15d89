package waitlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/waza/waitlist-api/internal/domain"
	"github.com/waza/waitlist-api/internal/infrastructure/smtp"
	"github.com/waza/waitlist-api/internal/infrastructure/sns"
	"github.com/waza/waitlist-api/internal/pkg/id"
	"github.com/waza/waitlist-api/internal/pkg/validate"
)

const recentWindow = 7 * 24 * time.Hour

// SubmissionStore persists waitlist submissions.
type SubmissionStore interface {
	Insert(ctx context.Context, s *domain.Submission) error
	Scan(ctx context.Context) ([]domain.Submission, error)
	Delete(ctx context.Context, id string) error
}

// TokenStore resolves verification tokens. Submissions only read tokens.
type TokenStore interface {
	Lookup(ctx context.Context, token string) (*domain.VerificationToken, error)
}

// ListFilters narrows the admin listing. Empty or "all" disables a filter.
type ListFilters struct {
	Industry   string
	Experience string
	Search     string
	Page       int
	Limit      int
}

// FilterOptions are the distinct values present in the table, offered to the
// admin UI for its dropdowns.
type FilterOptions struct {
	Industries  []string `json:"industries"`
	Experiences []string `json:"experiences"`
}

// AdminListing is the full admin query result.
type AdminListing struct {
	Submissions []domain.Submission `json:"submissions"`
	Stats       domain.Stats        `json:"stats"`
	Filters     FilterOptions       `json:"filters"`
	Page        int                 `json:"page"`
	Limit       int                 `json:"limit"`
	Total       int                 `json:"total"`
}

type Service interface {
	// Submit validates the profile, checks the verification token and
	// persists the submission, returning its id.
	Submit(ctx context.Context, req domain.SubmissionRequest) (string, error)
	// List returns filtered, paginated submissions plus stats and the
	// available filter options.
	List(ctx context.Context, f ListFilters) (*AdminListing, error)
	// Delete removes a submission by id; domain.ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}

type service struct {
	submissions SubmissionStore
	tokens      TokenStore
	mailer      smtp.Mailer
	notifier    sns.Notifier // nil disables ops pings
	now         func() time.Time
}

type ServiceDeps struct {
	Submissions SubmissionStore
	Tokens      TokenStore
	Mailer      smtp.Mailer
	Notifier    sns.Notifier
	Now         func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		submissions: deps.Submissions,
		tokens:      deps.Tokens,
		mailer:      deps.Mailer,
		notifier:    deps.Notifier,
		now:         now,
	}
}

func (s *service) Submit(ctx context.Context, req domain.SubmissionRequest) (string, error) {
	if err := validate.Struct(&req); err != nil {
		return "", fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}

	t, err := s.tokens.Lookup(ctx, req.VerificationToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("invalid or expired verification token: %w", domain.ErrUnauthorized)
		}
		return "", fmt.Errorf("lookup verification token: %w", err)
	}
	if t.Expired(s.now()) {
		return "", fmt.Errorf("invalid or expired verification token: %w", domain.ErrUnauthorized)
	}
	// Exact, case-sensitive match: the token authorizes only the address
	// the code was mailed to.
	if t.Email != req.Email {
		return "", fmt.Errorf("email verification mismatch: %w", domain.ErrEmailMismatch)
	}

	sub := &domain.Submission{
		ID:                 id.New(),
		FullName:           req.FullName,
		Email:              req.Email,
		Company:            req.Company,
		JobTitle:           req.JobTitle,
		Industry:           req.Industry,
		CompanySizeRange:   req.CompanySizeRange,
		DesignExperience:   req.DesignExperience,
		InterestedFeatures: req.InterestedFeatures,
		WhyTryWaza:         req.WhyTryWaza,
		Newsletter:         req.Newsletter,
		EarlyAccess:        req.EarlyAccess,
		SubmittedAt:        s.now().UTC(),
	}
	if err := s.submissions.Insert(ctx, sub); err != nil {
		return "", err
	}

	// Welcome mail and ops ping are fire-and-forget: the submission is
	// durable and their failure must never surface to the caller.
	go s.afterSubmit(sub)

	return sub.ID, nil
}

func (s *service) afterSubmit(sub *domain.Submission) {
	if err := s.mailer.SendEmail(sub.Email, smtp.WelcomeSubject, smtp.WelcomeBody(sub.FullName)); err != nil {
		slog.Warn("failed to send welcome email", "email", sub.Email, "err", err)
	}
	if s.notifier != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		msg := fmt.Sprintf("%s (%s, %s) joined the waitlist", sub.FullName, sub.Company, sub.Email)
		if err := s.notifier.Notify(ctx, "New waitlist submission", msg); err != nil {
			slog.Warn("failed to publish submission notification", "err", err)
		}
	}
}

func (s *service) List(ctx context.Context, f ListFilters) (*AdminListing, error) {
	all, err := s.submissions.Scan(ctx)
	if err != nil {
		return nil, err
	}

	stats := computeStats(all, s.now())
	options := FilterOptions{
		Industries:  distinct(all, func(s domain.Submission) string { return s.Industry }),
		Experiences: distinct(all, func(s domain.Submission) string { return s.DesignExperience }),
	}

	matched := filter(all, f)
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].SubmittedAt.After(matched[j].SubmittedAt)
	})

	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	paged := paginate(matched, (page-1)*limit, limit)

	return &AdminListing{
		Submissions: paged,
		Stats:       stats,
		Filters:     options,
		Page:        page,
		Limit:       limit,
		Total:       stats.TotalSubmissions,
	}, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.submissions.Delete(ctx, id)
}

func filter(all []domain.Submission, f ListFilters) []domain.Submission {
	search := strings.ToLower(f.Search)
	var out []domain.Submission
	for _, sub := range all {
		if f.Industry != "" && f.Industry != "all" && sub.Industry != f.Industry {
			continue
		}
		if f.Experience != "" && f.Experience != "all" && sub.DesignExperience != f.Experience {
			continue
		}
		if search != "" && !matchesSearch(sub, search) {
			continue
		}
		out = append(out, sub)
	}
	return out
}

// matchesSearch reports whether the lowercased needle occurs in the
// submission's name, email or company.
func matchesSearch(s domain.Submission, needle string) bool {
	return strings.Contains(strings.ToLower(s.FullName), needle) ||
		strings.Contains(strings.ToLower(s.Email), needle) ||
		strings.Contains(strings.ToLower(s.Company), needle)
}

func paginate(subs []domain.Submission, offset, limit int) []domain.Submission {
	if offset >= len(subs) {
		return []domain.Submission{}
	}
	end := offset + limit
	if end > len(subs) {
		end = len(subs)
	}
	return subs[offset:end]
}

func computeStats(all []domain.Submission, now time.Time) domain.Stats {
	stats := domain.Stats{TotalSubmissions: len(all)}
	industries := make(map[string]struct{})
	companies := make(map[string]struct{})
	cutoff := now.Add(-recentWindow)
	for _, s := range all {
		industries[s.Industry] = struct{}{}
		companies[s.Company] = struct{}{}
		if s.SubmittedAt.After(cutoff) {
			stats.RecentSubmissions++
		}
		if s.Newsletter {
			stats.NewsletterSubscribers++
		}
		if s.EarlyAccess {
			stats.EarlyAccessInterested++
		}
	}
	stats.UniqueIndustries = len(industries)
	stats.UniqueCompanies = len(companies)
	return stats
}

func distinct(all []domain.Submission, field func(domain.Submission) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range all {
		if v := field(s); v != "" {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
	}
	sort.Strings(out)
	return out
}
