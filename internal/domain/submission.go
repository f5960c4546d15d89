package domain

import "time"

// Submission is a persisted waitlist entry.
// PK: email — the storage key is the uniqueness constraint; ID is carried as
// an attribute with a GSI for admin lookups and deletes.
type Submission struct {
	ID                 string    `json:"id" dynamodbav:"id"`
	FullName           string    `json:"fullName" dynamodbav:"full_name"`
	Email              string    `json:"email" dynamodbav:"email"`
	Company            string    `json:"company" dynamodbav:"company"`
	JobTitle           string    `json:"jobTitle" dynamodbav:"job_title"`
	Industry           string    `json:"industry" dynamodbav:"industry"`
	CompanySizeRange   string    `json:"companySizeRange" dynamodbav:"company_size_range"`
	DesignExperience   string    `json:"designExperience" dynamodbav:"design_experience"`
	InterestedFeatures []string  `json:"interestedFeatures" dynamodbav:"interested_features"`
	WhyTryWaza         string    `json:"whyTryWaza,omitempty" dynamodbav:"why_try_waza"`
	Newsletter         bool      `json:"newsletter" dynamodbav:"newsletter"`
	EarlyAccess        bool      `json:"earlyAccess" dynamodbav:"early_access"`
	SubmittedAt        time.Time `json:"submittedAt" dynamodbav:"submitted_at"`
}

// SubmissionRequest is the client payload for joining the waitlist.
type SubmissionRequest struct {
	FullName           string   `json:"fullName" validate:"required,min=2"`
	Email              string   `json:"email" validate:"required,email"`
	Company            string   `json:"company" validate:"required,min=2"`
	JobTitle           string   `json:"jobTitle" validate:"required"`
	Industry           string   `json:"industry" validate:"required"`
	CompanySizeRange   string   `json:"companySizeRange" validate:"required"`
	DesignExperience   string   `json:"designExperience" validate:"required"`
	InterestedFeatures []string `json:"interestedFeatures" validate:"required,min=1"`
	WhyTryWaza         string   `json:"whyTryWaza"`
	Newsletter         bool     `json:"newsletter"`
	EarlyAccess        bool     `json:"earlyAccess"`
	VerificationToken  string   `json:"verificationToken" validate:"required"`
}

// Stats summarizes the submissions table for the admin dashboard.
type Stats struct {
	TotalSubmissions      int `json:"totalSubmissions"`
	UniqueIndustries      int `json:"uniqueIndustries"`
	UniqueCompanies       int `json:"uniqueCompanies"`
	RecentSubmissions     int `json:"recentSubmissions"` // last 7 days
	NewsletterSubscribers int `json:"newsletterSubscribers"`
	EarlyAccessInterested int `json:"earlyAccessInterested"`
}
