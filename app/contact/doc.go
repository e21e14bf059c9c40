// Package contact accepts contact form submissions, stores them and forwards
// a copy to the support mailbox.
package contact
