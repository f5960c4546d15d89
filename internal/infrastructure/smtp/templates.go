package smtp

import "fmt"

// VerificationSubject is the subject line for code-delivery emails.
const VerificationSubject = "Waza Waitlist - Email Verification Code"

// WelcomeSubject is the subject line for post-submission welcome emails.
const WelcomeSubject = "Welcome to the Waza Waitlist!"

// VerificationBody renders the HTML body carrying a one-time code.
func VerificationBody(code string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #3b82f6; margin: 0; font-size: 28px;">Waza</h1>
    <p style="color: #6b7280; margin: 10px 0 0 0;">AI Design Partner for Hardware Engineers</p>
  </div>
  <div style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 30px; border-radius: 12px; text-align: center; margin-bottom: 30px;">
    <h2 style="color: white; margin: 0 0 15px 0; font-size: 24px;">Email Verification</h2>
    <p style="color: #e5e7eb; margin: 0 0 20px 0; font-size: 16px;">
      Please use the verification code below to complete your waitlist registration:
    </p>
    <div style="background: white; padding: 20px; border-radius: 8px; display: inline-block;">
      <span style="font-size: 32px; font-weight: bold; color: #1f2937; letter-spacing: 8px;">%s</span>
    </div>
  </div>
  <p style="color: #6b7280; font-size: 14px; text-align: center;">
    This code expires in 10 minutes. If you didn't request it, you can ignore this email.
  </p>
</div>`, code)
}

// WelcomeBody renders the HTML body sent after a submission is accepted.
func WelcomeBody(fullName string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #3b82f6; margin: 0; font-size: 28px;">Waza</h1>
    <p style="color: #6b7280; margin: 10px 0 0 0;">AI Design Partner for Hardware Engineers</p>
  </div>
  <h2 style="color: #1f2937;">Hi %s,</h2>
  <p style="color: #374151; font-size: 16px; line-height: 1.6;">
    You're on the list! Thanks for joining the Waza waitlist — we'll reach out
    as soon as early access opens up for your spot.
  </p>
  <p style="color: #6b7280; font-size: 14px;">— The Waza Team</p>
</div>`, fullName)
}
