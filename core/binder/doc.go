// Package binder decodes JSON request bodies into request structs.
package binder
