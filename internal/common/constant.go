// Package common contains shared constants and sentinel errors used across
// the bookshelf server and its terminal client.
package common

// BearerPrefix precedes the session token in the Authorization header.
const BearerPrefix = "Bearer "

// AuthCookieName is the cookie consulted when no Authorization header is sent.
const AuthCookieName = "auth_token"
