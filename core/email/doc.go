// Package email defines the EmailSender abstraction and a development sender
// that writes messages to disk. The Postmark implementation lives in
// integration/email/postmark.
//
//	sender := email.NewDevSender("./tmp/mail")
//	err := sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "support@travelcraft.app",
//		Subject:  "New contact message",
//		BodyText: "...",
//		Tag:      "contact",
//	})
package email
