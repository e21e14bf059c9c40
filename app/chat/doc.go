// Package chat serves the travel assistant endpoint on top of pkg/chat.
package chat
