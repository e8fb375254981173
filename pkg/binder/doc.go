// Package binder decodes HTTP requests into typed structs.
//
// Each binder reads one source: JSON() the body, Query() the URL query and
// Path() chi route parameters. Fields opt in through `query:"..."` and
// `path:"..."` tags, so one request struct may combine several binders.
// All failures wrap one of the package errors; IsBindError lets error
// handlers answer 400.
package binder
