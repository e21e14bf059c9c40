// Package postmark implements email.EmailSender on the Postmark API. It is
// used for contact-message notifications when POSTMARK_SERVER_TOKEN is set.
package postmark
