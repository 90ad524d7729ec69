// Package context holds the state shared by migres commands, such as the
// loaded configuration and the filesystem migration scripts live on.
//
// It's separate from the app package so that cli commands can receive it
// without importing app.
package context
